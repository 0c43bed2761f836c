package journal

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory journal store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]*Entry // dispatcher -> entries in append order
	closed  bool
}

// NewMemoryStore creates a new in-memory journal store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]*Entry),
	}
}

// Append implements Store.
func (m *MemoryStore) Append(ctx context.Context, e *Entry) error {
	if e == nil {
		return ErrNilEntry
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy to avoid retaining the caller's entry
	cp := *e
	m.entries[e.Dispatcher] = append(m.entries[e.Dispatcher], &cp)
	return nil
}

// List implements Store.
func (m *MemoryStore) List(ctx context.Context, dispatcher string, limit int) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	stored := m.entries[dispatcher]
	n := len(stored)
	if limit > 0 && limit < n {
		n = limit
	}

	// Return copies, newest first
	out := make([]*Entry, 0, n)
	for i := len(stored) - 1; i >= 0 && len(out) < n; i-- {
		cp := *stored[i]
		out = append(out, &cp)
	}
	return out, nil
}

// CountByToken implements Store.
func (m *MemoryStore) CountByToken(ctx context.Context, dispatcher string) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	counts := make(map[string]int)
	for _, e := range m.entries[dispatcher] {
		counts[e.Token]++
	}
	return counts, nil
}

// Purge implements Store.
func (m *MemoryStore) Purge(ctx context.Context, dispatcher string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.entries, dispatcher)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.entries = nil
	return nil
}

// Len returns the total number of entries across all dispatchers.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, entries := range m.entries {
		count += len(entries)
	}
	return count
}
