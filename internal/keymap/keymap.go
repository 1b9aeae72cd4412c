// Package keymap maps key chords to action names. Keymaps form parent
// chains: a lookup that misses in a child falls through to its parent
// unless the child carries an explicit disabled entry for the chord.
package keymap

import (
	"sync"

	"github.com/histkit/recall/internal/key"
)

// Binding is a single keymap entry. A disabled binding records "no
// action" explicitly: lookup stops at it instead of consulting the
// parent keymap.
type Binding struct {
	Action   string
	Disabled bool
}

// Keymap holds the bindings for one editing context or feature.
type Keymap struct {
	mu      sync.RWMutex
	name    string
	parent  *Keymap
	entries map[key.Chord]Binding
}

// New creates a keymap with an optional parent.
func New(name string, parent *Keymap) *Keymap {
	return &Keymap{
		name:    name,
		parent:  parent,
		entries: make(map[key.Chord]Binding),
	}
}

// Name returns the keymap name.
func (km *Keymap) Name() string {
	return km.name
}

// Parent returns the parent keymap, or nil.
func (km *Keymap) Parent() *Keymap {
	return km.parent
}

// Bind maps a chord to an action name, replacing any previous entry
// for the chord.
func (km *Keymap) Bind(c key.Chord, action string) {
	km.mu.Lock()
	defer km.mu.Unlock()
	km.entries[c] = Binding{Action: action}
}

// Disable installs an explicit no-action entry for the chord. The
// chord stops resolving in this keymap and, unlike an absent entry,
// masks any binding a parent keymap has for it.
func (km *Keymap) Disable(c key.Chord) {
	km.mu.Lock()
	defer km.mu.Unlock()
	km.entries[c] = Binding{Disabled: true}
}

// Unbind removes the entry for the chord entirely, re-exposing any
// parent binding.
func (km *Keymap) Unbind(c key.Chord) {
	km.mu.Lock()
	defer km.mu.Unlock()
	delete(km.entries, c)
}

// Entry returns the local binding for a chord, without consulting the
// parent chain.
func (km *Keymap) Entry(c key.Chord) (Binding, bool) {
	km.mu.RLock()
	defer km.mu.RUnlock()
	b, ok := km.entries[c]
	return b, ok
}

// Lookup resolves a chord to an action name, walking the parent chain.
// A disabled entry terminates the walk with no action.
func (km *Keymap) Lookup(c key.Chord) (string, bool) {
	for m := km; m != nil; m = m.parent {
		m.mu.RLock()
		b, ok := m.entries[c]
		m.mu.RUnlock()

		if !ok {
			continue
		}
		if b.Disabled {
			return "", false
		}
		return b.Action, true
	}
	return "", false
}

// Len returns the number of local entries, disabled entries included.
func (km *Keymap) Len() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.entries)
}
