package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"

	"github.com/tenrai/leitor/pkg/data"
	"github.com/tenrai/leitor/pkg/sources"
)

type ReaderState int

const (
	StateLoading ReaderState = iota
	StateReady
	StateError
)

// Reader drives the chapter view: loads a chapter with its pages and
// neighbor links, records the read, and navigates between chapters of
// the same work. Rapid navigation is safe: only the newest load lands.
type Reader struct {
	source  sources.Source
	history *History

	mu       sync.Mutex
	state    ReaderState
	chapter  *data.Chapter
	err      error
	page     int
	read     map[int]bool
	seq      int
	cancel   context.CancelFunc
	onChange func()
}

func NewReader(source sources.Source, history *History) *Reader {
	return &Reader{source: source, history: history, state: StateLoading, read: map[int]bool{}}
}

func (r *Reader) SetOnChange(fn func()) {
	r.mu.Lock()
	r.onChange = fn
	r.mu.Unlock()
}

// Load fetches a chapter by id, abandoning any load still in flight.
func (r *Reader) Load(chapterID int) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.seq++
	seq := r.seq
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.state = StateLoading
	r.err = nil
	r.page = 0
	r.mu.Unlock()
	r.notify()

	go func() {
		chapter, err := r.source.Chapter(ctx, chapterID)
		r.complete(seq, chapter, err, ctx)
	}()
}

func (r *Reader) complete(seq int, chapter *data.Chapter, err error, ctx context.Context) {
	r.mu.Lock()
	if seq != r.seq {
		r.mu.Unlock()
		return
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			r.mu.Unlock()
			return
		}
		r.state = StateError
		r.err = err
		r.mu.Unlock()
		r.notify()
		return
	}
	r.state = StateReady
	r.chapter = chapter
	r.read[chapter.ID] = true
	r.mu.Unlock()
	r.notify()

	// The read mark is best effort: a failure never blocks reading.
	go func() {
		summary := data.ChapterSummary{ID: chapter.ID, Number: chapter.Number, Name: chapter.Name}
		if err := r.history.Record(context.Background(), chapter.Work, summary); err != nil {
			log.Printf("history: %v", err)
		}
	}()
}

func (r *Reader) State() ReaderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Reader) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Reader) Chapter() *data.Chapter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chapter
}

// Page is the current page index within the chapter.
func (r *Reader) Page() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page
}

func (r *Reader) SetPage(i int) {
	r.mu.Lock()
	if r.chapter != nil && i >= 0 && i < len(r.chapter.Pages) {
		r.page = i
	}
	r.mu.Unlock()
	r.notify()
}

// Prev moves to the previous chapter when the work has one.
func (r *Reader) Prev() bool {
	r.mu.Lock()
	ready := r.state == StateReady && r.chapter != nil && r.chapter.Prev != nil
	var id int
	if ready {
		id = r.chapter.Prev.ID
	}
	r.mu.Unlock()
	if !ready {
		return false
	}
	r.Load(id)
	return true
}

// Next moves to the next chapter when the work has one.
func (r *Reader) Next() bool {
	r.mu.Lock()
	ready := r.state == StateReady && r.chapter != nil && r.chapter.Next != nil
	var id int
	if ready {
		id = r.chapter.Next.ID
	}
	r.mu.Unlock()
	if !ready {
		return false
	}
	r.Load(id)
	return true
}

// JumpList returns the work's chapters in descending number order for
// the chapter picker.
func (r *Reader) JumpList() []data.ChapterSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.chapter == nil {
		return nil
	}
	out := make([]data.ChapterSummary, len(r.chapter.Work.Chapters))
	copy(out, r.chapter.Work.Chapters)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number > out[j].Number
	})
	return out
}

// Jump loads a chapter picked from the jump list. A chapter id that is
// not part of the current work is rejected.
func (r *Reader) Jump(chapterID int) bool {
	r.mu.Lock()
	ok := false
	if r.chapter != nil {
		for _, ch := range r.chapter.Work.Chapters {
			if ch.ID == chapterID {
				ok = true
				break
			}
		}
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	r.Load(chapterID)
	return true
}

// WasRead reports whether the chapter was opened this session or found
// in the remote read set. It only drives styling, never navigation.
func (r *Reader) WasRead(chapterID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read[chapterID]
}

// SeedReadSet merges the remote read set for the current work.
func (r *Reader) SeedReadSet(ids map[int]bool) {
	r.mu.Lock()
	for id, read := range ids {
		if read {
			r.read[id] = true
		}
	}
	r.mu.Unlock()
	r.notify()
}

func (r *Reader) notify() {
	r.mu.Lock()
	fn := r.onChange
	r.mu.Unlock()
	if fn != nil {
		fn()
	}
}
