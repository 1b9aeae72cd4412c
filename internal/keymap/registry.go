package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownKeymap is returned when a lookup names a keymap that was
// never defined.
var ErrUnknownKeymap = errors.New("unknown keymap")

// Registry manages keymaps by name.
type Registry struct {
	mu      sync.RWMutex
	keymaps map[string]*Keymap
}

// NewRegistry creates an empty keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*Keymap),
	}
}

// Define creates a keymap under the given name. parentName may be
// empty for a root keymap; otherwise the parent must already be
// defined. Redefining a name returns the existing keymap unchanged.
func (r *Registry) Define(name, parentName string) (*Keymap, error) {
	if name == "" {
		return nil, fmt.Errorf("keymap name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if km, ok := r.keymaps[name]; ok {
		return km, nil
	}

	var parent *Keymap
	if parentName != "" {
		p, ok := r.keymaps[parentName]
		if !ok {
			return nil, fmt.Errorf("%w: parent %q of %q", ErrUnknownKeymap, parentName, name)
		}
		parent = p
	}

	km := New(name, parent)
	r.keymaps[name] = km
	return km, nil
}

// Get returns the keymap registered under name.
func (r *Registry) Get(name string) (*Keymap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	km, ok := r.keymaps[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeymap, name)
	}
	return km, nil
}

// Bound reports whether a keymap is registered under name.
func (r *Registry) Bound(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.keymaps[name]
	return ok
}

// Names returns the registered keymap names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.keymaps))
	for name := range r.keymaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
