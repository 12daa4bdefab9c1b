package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps entries in process memory. It backs tests and the
// database-less "memory" driver; contents are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[Key]Entry
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Pruner = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[Key]Entry)}
}

func (m *MemoryStore) Find(_ context.Context, key Key, now time.Time) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.items[key]
	if !ok || !e.ExpiresAt.After(now) {
		return nil, nil
	}
	return &e, nil
}

func (m *MemoryStore) Replace(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[e.Key()] = e
	return nil
}

func (m *MemoryStore) PruneExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for k, e := range m.items {
		if e.ExpiresAt.Before(before) {
			delete(m.items, k)
			n++
		}
	}
	return n, nil
}

// Len reports the number of stored entries, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
