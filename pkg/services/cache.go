package services

import (
	"encoding/json"
	"log"
	"sync"
)

// PageCache remembers the first page of a listing so revisiting a view
// paints instantly while fresh data loads behind it.
type PageCache[T any] interface {
	Load(key string) ([]T, bool)
	Store(key string, items []T)
}

// MemoryCache is the in-process cache shared by every view of the same
// listing for the lifetime of the program.
type MemoryCache[T any] struct {
	mu    sync.RWMutex
	pages map[string][]T
}

func NewMemoryCache[T any]() *MemoryCache[T] {
	return &MemoryCache[T]{pages: map[string][]T{}}
}

func (c *MemoryCache[T]) Load(key string) ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items, ok := c.pages[key]
	return items, ok
}

func (c *MemoryCache[T]) Store(key string, items []T) {
	c.mu.Lock()
	c.pages[key] = items
	c.mu.Unlock()
}

// SnapshotStore is the persistence hook behind PersistentCache,
// satisfied by the local data store.
type SnapshotStore interface {
	SaveSnapshot(viewKey string, payload []byte) error
	LoadSnapshot(viewKey string) ([]byte, bool, error)
}

// PersistentCache layers a snapshot store under a MemoryCache so the
// first paint after a restart still comes from the last session.
type PersistentCache[T any] struct {
	mem   *MemoryCache[T]
	store SnapshotStore
}

func NewPersistentCache[T any](store SnapshotStore) *PersistentCache[T] {
	return &PersistentCache[T]{mem: NewMemoryCache[T](), store: store}
}

func (c *PersistentCache[T]) Load(key string) ([]T, bool) {
	if items, ok := c.mem.Load(key); ok {
		return items, true
	}
	payload, ok, err := c.store.LoadSnapshot(key)
	if err != nil || !ok {
		return nil, false
	}
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, false
	}
	c.mem.Store(key, items)
	return items, true
}

// Store updates the in-memory copy first; a failed snapshot write only
// costs the instant paint after the next restart.
func (c *PersistentCache[T]) Store(key string, items []T) {
	c.mem.Store(key, items)
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.store.SaveSnapshot(key, payload); err != nil {
		log.Printf("snapshot %s: %v", key, err)
	}
}
