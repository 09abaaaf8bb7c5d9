package services

import (
	"context"
	"sync"
	"time"
)

// FetchPage loads one page of a listing. The query is captured in the
// closure; the controller only drives page numbers.
type FetchPage[T any] func(ctx context.Context, page int) ([]T, error)

// DefaultDebounce is how long a query change sits before it fires.
const DefaultDebounce = 500 * time.Millisecond

// Controller drives an infinite-scroll listing: one in-flight fetch at
// a time, newest query wins, items deduplicated by key, and a shared
// cache painting the first page instantly while fresh data revalidates
// behind it.
type Controller[T any] struct {
	key      func(T) string
	pageSize int
	cache    PageCache[T]
	debounce time.Duration

	mu           sync.Mutex
	fetch        FetchPage[T]
	cacheKey     string
	items        []T
	seen         map[string]bool
	page         int
	hasMore      bool
	loading      bool
	loadingMore  bool
	revalidating bool
	err          error

	seq           int
	cancel        context.CancelFunc
	debounceTimer *time.Timer
	onChange      func()
}

func NewController[T any](key func(T) string, pageSize int, cache PageCache[T]) *Controller[T] {
	return &Controller[T]{
		key:      key,
		pageSize: pageSize,
		cache:    cache,
		debounce: DefaultDebounce,
		hasMore:  true,
	}
}

// SetDebounce overrides the query debounce interval.
func (c *Controller[T]) SetDebounce(d time.Duration) {
	c.mu.Lock()
	c.debounce = d
	c.mu.Unlock()
}

// SetOnChange registers the redraw hook, invoked after every state
// transition (outside the lock).
func (c *Controller[T]) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Load starts the listing over with a new query. Any in-flight fetch is
// abandoned. When the cache holds a first page for cacheKey the items
// paint immediately and the fetch revalidates them in place.
func (c *Controller[T]) Load(fetch FetchPage[T], cacheKey string) {
	c.mu.Lock()
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
	c.startLocked(fetch, cacheKey)
	c.mu.Unlock()
	c.notify()
}

// LoadDebounced schedules Load after the debounce interval, replacing
// any pending schedule. Keystroke bursts collapse into one fetch.
func (c *Controller[T]) LoadDebounced(fetch FetchPage[T], cacheKey string) {
	c.mu.Lock()
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.debounceTimer = time.AfterFunc(c.debounce, func() {
		c.Load(fetch, cacheKey)
	})
	c.mu.Unlock()
}

// startLocked resets paging state and launches the page-1 fetch.
// Callers hold c.mu.
func (c *Controller[T]) startLocked(fetch FetchPage[T], cacheKey string) {
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	c.fetch = fetch
	c.cacheKey = cacheKey
	c.page = 1
	c.hasMore = true
	c.err = nil
	c.loadingMore = false

	if cached, ok := c.cacheLoad(cacheKey); ok {
		c.setItemsLocked(cached)
		c.loading = false
		c.revalidating = true
	} else {
		c.items = nil
		c.seen = nil
		c.loading = true
		c.revalidating = false
	}

	c.launchLocked(1)
}

// SentinelVisible reports that the end-of-list sentinel scrolled into
// view. It requests the next page unless one is already in flight, the
// listing is exhausted, or cached items are still being revalidated.
func (c *Controller[T]) SentinelVisible() {
	c.mu.Lock()
	if !c.hasMore || c.loading || c.loadingMore || c.revalidating || c.fetch == nil || c.err != nil {
		c.mu.Unlock()
		return
	}
	c.page++
	c.loadingMore = true
	c.launchLocked(c.page)
	c.mu.Unlock()
	c.notify()
}

// Retry refetches the page that failed.
func (c *Controller[T]) Retry() {
	c.mu.Lock()
	if c.fetch == nil || c.err == nil {
		c.mu.Unlock()
		return
	}
	c.err = nil
	if c.page == 1 {
		c.loading = true
	} else {
		c.loadingMore = true
	}
	c.launchLocked(c.page)
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T]) launchLocked(page int) {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	seq := c.seq
	fetch := c.fetch

	go func() {
		items, err := fetch(ctx, page)
		c.complete(seq, page, items, err, ctx)
	}()
}

// complete folds a fetch result back in. A result from a superseded
// fetch mutates nothing.
func (c *Controller[T]) complete(seq, page int, fetched []T, err error, ctx context.Context) {
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		return
	}
	if err != nil {
		if ctx.Err() == context.Canceled {
			c.mu.Unlock()
			return
		}
		c.err = err
		c.loading = false
		c.loadingMore = false
		c.revalidating = false
		c.mu.Unlock()
		c.notify()
		return
	}

	if page == 1 {
		c.setItemsLocked(fetched)
		c.cacheStore(c.cacheKey, fetched)
	} else {
		c.appendLocked(fetched)
	}
	c.hasMore = len(fetched) >= c.pageSize
	c.loading = false
	c.loadingMore = false
	c.revalidating = false
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T]) setItemsLocked(items []T) {
	c.items = nil
	c.seen = map[string]bool{}
	for _, it := range items {
		k := c.key(it)
		if c.seen[k] {
			continue
		}
		c.seen[k] = true
		c.items = append(c.items, it)
	}
}

func (c *Controller[T]) appendLocked(items []T) {
	for _, it := range items {
		k := c.key(it)
		if c.seen[k] {
			continue
		}
		c.seen[k] = true
		c.items = append(c.items, it)
	}
}

func (c *Controller[T]) cacheLoad(key string) ([]T, bool) {
	if c.cache == nil || key == "" {
		return nil, false
	}
	return c.cache.Load(key)
}

func (c *Controller[T]) cacheStore(key string, items []T) {
	if c.cache == nil || key == "" {
		return
	}
	c.cache.Store(key, items)
}

func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Controller[T]) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Loading reports the initial load of the current query, with nothing
// to paint yet.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller[T]) LoadingMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadingMore
}

// Revalidating reports that cached items are on screen while a fresh
// first page loads.
func (c *Controller[T]) Revalidating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revalidating
}

func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Controller[T]) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
