package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/histkit/recall/internal/config"
	"github.com/histkit/recall/internal/editor"
	"github.com/histkit/recall/internal/key"
)

// registerModule installs the `recall` table a configuration script
// talks to.
func (h *Host) registerModule() {
	mod := h.L.SetFuncs(h.L.NewTable(), map[string]lua.LGFunction{
		"set_binding":      h.luaSetBinding,
		"unbind_companion": h.luaUnbindCompanion,
		"bind_ring":        h.luaBindRing,
		"keymap":           h.luaKeymap,
		"history_size":     h.luaHistorySize,
		"seed":             h.luaSeed,
	})
	h.L.SetGlobal("recall", mod)
}

// set_binding(spec) -> nil
// Replaces the insertion key binding. The spec is parsed eagerly so a
// typo fails at the script line that wrote it.
func (h *Host) luaSetBinding(L *lua.LState) int {
	spec := L.CheckString(1)
	if _, err := key.Parse(spec); err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	h.cfg.Binding = spec
	return 0
}

// unbind_companion(on?) -> nil
// Controls whether the companion chord is disabled at install time.
// Defaults to true when called without an argument.
func (h *Host) luaUnbindCompanion(L *lua.LState) int {
	h.cfg.UnbindCompanion = L.OptBool(1, true)
	return 0
}

// bind_ring(kind, store) -> nil
// Appends a (kind, store) pair to the resolver's ring list. Pairs are
// consulted in the order bound.
func (h *Host) luaBindRing(L *lua.LState) int {
	kind := L.CheckString(1)
	store := L.CheckString(2)

	if _, ok := editor.KindFromName(kind); !ok {
		L.ArgError(1, "unknown context kind "+kind)
		return 0
	}
	if store == "" {
		L.ArgError(2, "store name cannot be empty")
		return 0
	}

	h.cfg.Rings = append(h.cfg.Rings, config.RingBinding{Kind: kind, Store: store})
	return 0
}

// keymap(feature, keymap) -> nil
// Appends a (feature, keymap) pair to the binding installer's list.
func (h *Host) luaKeymap(L *lua.LState) int {
	feat := L.CheckString(1)
	km := L.CheckString(2)

	if feat == "" {
		L.ArgError(1, "feature name cannot be empty")
		return 0
	}
	if km == "" {
		L.ArgError(2, "keymap name cannot be empty")
		return 0
	}

	h.cfg.Keymaps = append(h.cfg.Keymaps, config.KeymapSpec{Feature: feat, Keymap: km})
	return 0
}

// history_size(n) -> nil
// Sets the capacity of newly created history stores.
func (h *Host) luaHistorySize(L *lua.LState) int {
	n := L.CheckInt(1)
	if n <= 0 {
		L.ArgError(1, "history size must be positive")
		return 0
	}
	h.cfg.HistorySize = n
	return 0
}

// seed(store, {entries...}) -> nil
// Records entries to preload into a store, listed oldest first. The
// entries are applied once the stores exist; see Host.ApplySeeds.
func (h *Host) luaSeed(L *lua.LState) int {
	store := L.CheckString(1)
	tbl := L.CheckTable(2)

	if store == "" {
		L.ArgError(1, "store name cannot be empty")
		return 0
	}

	n := tbl.Len()
	entries := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		v := tbl.RawGetInt(i)
		s, ok := v.(lua.LString)
		if !ok {
			L.ArgError(2, "entries must be strings")
			return 0
		}
		entries = append(entries, string(s))
	}

	h.seeds[store] = append(h.seeds[store], entries...)
	return 0
}
