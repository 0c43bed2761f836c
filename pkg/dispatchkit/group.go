package dispatchkit

import "sync"

// Group is a named collection of dispatchers sharing argument and
// result types.
//
// Useful when dispatchers are created lazily by name, such as one
// dispatcher per topic or per tenant. Safe for concurrent use.
type Group[A, R any] struct {
	mu          sync.RWMutex
	dispatchers map[string]*Dispatcher[A, R]
}

// NewGroup creates an empty group.
func NewGroup[A, R any]() *Group[A, R] {
	return &Group[A, R]{
		dispatchers: make(map[string]*Dispatcher[A, R]),
	}
}

// Get returns the dispatcher stored under name.
func (g *Group[A, R]) Get(name string) (*Dispatcher[A, R], bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	d, ok := g.dispatchers[name]
	return d, ok
}

// GetOrCreate returns the dispatcher stored under name, creating it
// with factory on first use. The factory runs at most once per name.
func (g *Group[A, R]) GetOrCreate(name string, factory func() *Dispatcher[A, R]) *Dispatcher[A, R] {
	g.mu.RLock()
	d, ok := g.dispatchers[name]
	g.mu.RUnlock()
	if ok {
		return d
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// Re-check: another goroutine may have created it between locks.
	if d, ok := g.dispatchers[name]; ok {
		return d
	}

	d = factory()
	g.dispatchers[name] = d
	return d
}

// Len returns the number of dispatchers in the group.
func (g *Group[A, R]) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.dispatchers)
}
