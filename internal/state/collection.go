package state

import (
	"sync"
	"time"
)

// Collection holds one remote collection's client-side state: the items
// from the last applied load, the last load error, and the bookkeeping
// that keeps reloads ordered.
//
// Loads are tagged with a generation. Begin bumps the generation and
// returns it; Apply discards any result whose generation is no longer
// current, so when a reload is triggered while an older load is still in
// flight, the latest trigger's result is the one reflected in state
// regardless of completion order.
type Collection[T any] struct {
	mu       sync.RWMutex
	gen      uint64
	applied  uint64
	items    []T
	err      error
	loaded   bool
	failures int
	updated  time.Time
}

// CollectionSnapshot is a point-in-time copy of a Collection's state.
// Items is never nil so screens can always range over it.
type CollectionSnapshot[T any] struct {
	Items       []T
	Err         error
	Loading     bool
	Loaded      bool
	Failures    int
	LastUpdated time.Time
}

// Begin registers a new load and returns its generation tag. Any load
// started earlier becomes stale immediately.
func (c *Collection[T]) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return c.gen
}

// Invalidate marks every in-flight load stale without starting a new one.
// Used when leaving a screen so late-arriving results cannot land.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.applied = c.gen
}

// Apply records a load result. It reports whether the result was current;
// stale results leave the collection untouched. On failure the previous
// items are kept and the error recorded.
func (c *Collection[T]) Apply(gen uint64, items []T, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.applied = gen
	c.updated = time.Now()
	if err != nil {
		c.err = err
		c.failures++
		return true
	}
	c.items = items
	c.err = nil
	c.loaded = true
	c.failures = 0
	return true
}

// RemoveIf deletes the items matching the predicate, preserving order.
// Local reconciliation for deletes; no reload required.
func (c *Collection[T]) RemoveIf(match func(T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, item := range c.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// Patch replaces matching items in place. Local reconciliation for
// single-item updates.
func (c *Collection[T]) Patch(match func(T) bool, apply func(T) T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if match(item) {
			c.items[i] = apply(item)
		}
	}
}

// Snapshot returns an independent copy of the current state.
func (c *Collection[T]) Snapshot() CollectionSnapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return CollectionSnapshot[T]{
		Items:       items,
		Err:         c.err,
		Loading:     c.gen > c.applied,
		Loaded:      c.loaded,
		Failures:    c.failures,
		LastUpdated: c.updated,
	}
}
