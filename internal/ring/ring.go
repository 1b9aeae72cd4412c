// Package ring provides in-memory input-history stores. Each editing
// context that records user input owns a Ring; a Registry maps store
// names to rings so configuration can refer to them.
package ring

import "sync"

// DefaultCapacity is used when a ring is created with no explicit size.
const DefaultCapacity = 100

// Ring is a bounded input-history store. Entries are kept in
// most-recent-first order. Duplicate entries are preserved; a command
// typed twice appears twice.
type Ring struct {
	mu    sync.Mutex
	items []string
	cap   int
}

// NewRing creates a ring with the given capacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{
		items: make([]string, 0, capacity),
		cap:   capacity,
	}
}

// Append records an input as the most recent entry. Empty input is
// not recorded. When the ring is full the oldest entry is dropped.
func (r *Ring) Append(item string) {
	if item == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append([]string{item}, r.items...)
	if len(r.items) > r.cap {
		r.items = r.items[:r.cap]
	}
}

// Items returns a most-recent-first copy of the ring contents.
func (r *Ring) Items() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]string, len(r.items))
	copy(result, r.items)
	return result
}

// Recent returns up to limit entries, most recent first.
func (r *Ring) Recent(limit int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.items) {
		limit = len(r.items)
	}

	result := make([]string, limit)
	copy(result, r.items[:limit])
	return result
}

// Len returns the number of entries in the ring.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return r.cap
}

// Clear removes all entries.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = r.items[:0]
}
