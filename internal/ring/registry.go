package ring

import (
	"sort"
	"sync"
)

// Registry maps store names to history rings. Configuration entries
// refer to stores by name; a name with no bound ring is simply absent,
// not an error.
type Registry struct {
	mu    sync.RWMutex
	rings map[string]*Ring
}

// NewRegistry creates an empty store registry.
func NewRegistry() *Registry {
	return &Registry{
		rings: make(map[string]*Ring),
	}
}

// Bind associates a ring with a store name, replacing any previous
// binding. A nil ring is ignored.
func (reg *Registry) Bind(name string, r *Ring) {
	if name == "" || r == nil {
		return
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.rings[name] = r
}

// Unbind removes the ring bound to name, if any.
func (reg *Registry) Unbind(name string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rings, name)
}

// Bound reports whether a ring is bound to the given store name.
func (reg *Registry) Bound(name string) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	_, ok := reg.rings[name]
	return ok
}

// Ring returns the ring bound to name.
func (reg *Registry) Ring(name string) (*Ring, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rings[name]
	return r, ok
}

// Items returns the most-recent-first contents of the named store, or
// nil when no ring is bound to the name.
func (reg *Registry) Items(name string) []string {
	reg.mu.RLock()
	r, ok := reg.rings[name]
	reg.mu.RUnlock()

	if !ok {
		return nil
	}
	return r.Items()
}

// Names returns the bound store names in sorted order.
func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	names := make([]string, 0, len(reg.rings))
	for name := range reg.rings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
