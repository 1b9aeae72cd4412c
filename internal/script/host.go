// Package script runs user configuration scripts in a sandboxed Lua
// state. A script sees a single `recall` table whose functions mutate
// the loaded configuration and seed history stores; everything it
// sets is validated after the run, before any of it takes effect.
package script

import (
	"fmt"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/histkit/recall/internal/config"
	"github.com/histkit/recall/internal/ring"
)

// Host owns the Lua state a configuration script runs in.
//
// gopher-lua states are not goroutine-safe; the mutex serializes all
// access from Go code.
type Host struct {
	mu     sync.Mutex
	L      *lua.LState
	cfg    *config.Config
	seeds  map[string][]string
	closed bool
}

// New creates a sandboxed host whose script functions mutate cfg.
func New(cfg *config.Config) *Host {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)

	h := &Host{
		L:     L,
		cfg:   cfg,
		seeds: make(map[string][]string),
	}
	h.removeUnsafeGlobals()
	h.registerModule()
	return h
}

// openSafeLibraries opens only the Lua standard libraries a
// configuration script has any business using. io, os, debug and
// package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// removeUnsafeGlobals drops the loaders the base library brings in.
func (h *Host) removeUnsafeGlobals() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		h.L.SetGlobal(name, lua.LNil)
	}
}

// RunFile executes a script file against the configuration.
func (h *Host) RunFile(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	return h.doWithRecovery(func() error {
		return h.L.DoFile(path)
	})
}

// RunString executes script source against the configuration.
func (h *Host) RunString(code string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	return h.doWithRecovery(func() error {
		return h.L.DoString(code)
	})
}

func (h *Host) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrScriptPanic, r)
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("%w: %v", ErrScriptFailed, err)
	}
	return nil
}

// ApplySeeds replays recorded seed entries into the store registry.
// Stores named only by a seed call are created with the given
// capacity and bound. Entries were listed oldest first, so appending
// in order leaves the last entry most recent.
func (h *Host) ApplySeeds(stores *ring.Registry, capacity int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	names := make([]string, 0, len(h.seeds))
	for name := range h.seeds {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r, ok := stores.Ring(name)
		if !ok {
			r = ring.NewRing(capacity)
			stores.Bind(name, r)
		}
		for _, entry := range h.seeds[name] {
			r.Append(entry)
		}
	}
}

// Close releases the Lua state. Further runs return ErrHostClosed.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.L.Close()
	h.closed = true
}
