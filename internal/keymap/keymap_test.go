package keymap

import (
	"errors"
	"testing"

	"github.com/histkit/recall/internal/key"
)

func TestKeymapBindAndLookup(t *testing.T) {
	km := New("shell-mode", nil)
	chord := key.MustParse("Meta+r")

	km.Bind(chord, "recall.insertItem")

	action, ok := km.Lookup(chord)
	if !ok {
		t.Fatal("expected binding to resolve")
	}
	if action != "recall.insertItem" {
		t.Errorf("Lookup() = %q, want %q", action, "recall.insertItem")
	}
}

func TestKeymapLookupMiss(t *testing.T) {
	km := New("shell-mode", nil)

	if _, ok := km.Lookup(key.MustParse("Meta+r")); ok {
		t.Error("lookup in empty keymap should miss")
	}
}

func TestKeymapParentFallthrough(t *testing.T) {
	parent := New("global", nil)
	child := New("shell-mode", parent)
	chord := key.MustParse("Meta+s")

	parent.Bind(chord, "search.forward")

	action, ok := child.Lookup(chord)
	if !ok || action != "search.forward" {
		t.Errorf("child lookup = (%q, %v), want parent binding to apply", action, ok)
	}
}

func TestKeymapChildOverridesParent(t *testing.T) {
	parent := New("global", nil)
	child := New("shell-mode", parent)
	chord := key.MustParse("Meta+r")

	parent.Bind(chord, "search.backward")
	child.Bind(chord, "recall.insertItem")

	action, _ := child.Lookup(chord)
	if action != "recall.insertItem" {
		t.Errorf("Lookup() = %q, want child binding to win", action)
	}
}

func TestKeymapDisableMasksParent(t *testing.T) {
	parent := New("global", nil)
	child := New("shell-mode", parent)
	chord := key.MustParse("Meta+s")

	parent.Bind(chord, "search.forward")
	child.Disable(chord)

	if action, ok := child.Lookup(chord); ok {
		t.Errorf("disabled chord resolved to %q, want no action", action)
	}

	// The disabled entry is recorded explicitly, not merely absent.
	b, ok := child.Entry(chord)
	if !ok {
		t.Fatal("disabled chord should have a local entry")
	}
	if !b.Disabled {
		t.Error("local entry should be marked disabled")
	}

	// The parent still resolves on its own.
	if _, ok := parent.Lookup(chord); !ok {
		t.Error("parent binding should be untouched")
	}
}

func TestKeymapUnbindReexposesParent(t *testing.T) {
	parent := New("global", nil)
	child := New("shell-mode", parent)
	chord := key.MustParse("Meta+s")

	parent.Bind(chord, "search.forward")
	child.Disable(chord)
	child.Unbind(chord)

	action, ok := child.Lookup(chord)
	if !ok || action != "search.forward" {
		t.Errorf("after Unbind, lookup = (%q, %v), want parent binding", action, ok)
	}
}

func TestRegistryDefineAndGet(t *testing.T) {
	r := NewRegistry()

	global, err := r.Define("global", "")
	if err != nil {
		t.Fatalf("Define(global) error = %v", err)
	}

	shell, err := r.Define("shell-mode", "global")
	if err != nil {
		t.Fatalf("Define(shell-mode) error = %v", err)
	}
	if shell.Parent() != global {
		t.Error("shell-mode should have global as parent")
	}

	got, err := r.Get("shell-mode")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != shell {
		t.Error("Get() returned a different keymap")
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("no-such-map")
	if !errors.Is(err, ErrUnknownKeymap) {
		t.Errorf("Get() error = %v, want ErrUnknownKeymap", err)
	}
}

func TestRegistryDefineUnknownParent(t *testing.T) {
	r := NewRegistry()

	_, err := r.Define("child", "missing-parent")
	if !errors.Is(err, ErrUnknownKeymap) {
		t.Errorf("Define() error = %v, want ErrUnknownKeymap", err)
	}
}

func TestRegistryDefineIdempotent(t *testing.T) {
	r := NewRegistry()

	a, _ := r.Define("global", "")
	a.Bind(key.MustParse("Ctrl+q"), "app.quit")

	b, err := r.Define("global", "")
	if err != nil {
		t.Fatalf("redefine error = %v", err)
	}
	if a != b {
		t.Error("redefining a keymap should return the existing one")
	}
	if b.Len() != 1 {
		t.Error("existing bindings should survive redefinition")
	}
}
