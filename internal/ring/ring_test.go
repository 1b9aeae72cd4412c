package ring

import (
	"reflect"
	"testing"
)

func TestRingAppendOrder(t *testing.T) {
	r := NewRing(10)
	r.Append("first")
	r.Append("second")
	r.Append("third")

	want := []string{"third", "second", "first"}
	if got := r.Items(); !reflect.DeepEqual(got, want) {
		t.Errorf("Items() = %v, want %v", got, want)
	}
}

func TestRingKeepsDuplicates(t *testing.T) {
	r := NewRing(10)
	r.Append("foo")
	r.Append("bar")
	r.Append("foo")

	want := []string{"foo", "bar", "foo"}
	if got := r.Items(); !reflect.DeepEqual(got, want) {
		t.Errorf("Items() = %v, want %v", got, want)
	}
}

func TestRingIgnoresEmptyInput(t *testing.T) {
	r := NewRing(10)
	r.Append("")
	r.Append("ls")
	r.Append("")

	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRingCapacityDropsOldest(t *testing.T) {
	r := NewRing(3)
	for _, s := range []string{"a", "b", "c", "d"} {
		r.Append(s)
	}

	want := []string{"d", "c", "b"}
	if got := r.Items(); !reflect.DeepEqual(got, want) {
		t.Errorf("Items() = %v, want %v", got, want)
	}
}

func TestRingRecent(t *testing.T) {
	r := NewRing(10)
	r.Append("a")
	r.Append("b")
	r.Append("c")

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"limit 2", 2, []string{"c", "b"}},
		{"limit over len", 9, []string{"c", "b", "a"}},
		{"limit zero means all", 0, []string{"c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Recent(tt.limit); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recent(%d) = %v, want %v", tt.limit, got, tt.want)
			}
		})
	}
}

func TestRingItemsIsACopy(t *testing.T) {
	r := NewRing(10)
	r.Append("original")

	items := r.Items()
	items[0] = "mutated"

	if got := r.Items()[0]; got != "original" {
		t.Errorf("ring contents changed through returned slice: %q", got)
	}
}

func TestRegistryBoundAndItems(t *testing.T) {
	reg := NewRegistry()

	if reg.Bound("shell-history") {
		t.Error("empty registry should have no bound stores")
	}
	if items := reg.Items("shell-history"); items != nil {
		t.Errorf("Items() on unbound store = %v, want nil", items)
	}

	r := NewRing(10)
	r.Append("make")
	reg.Bind("shell-history", r)

	if !reg.Bound("shell-history") {
		t.Error("store should be bound after Bind")
	}
	if got := reg.Items("shell-history"); !reflect.DeepEqual(got, []string{"make"}) {
		t.Errorf("Items() = %v, want [make]", got)
	}

	reg.Unbind("shell-history")
	if reg.Bound("shell-history") {
		t.Error("store should be gone after Unbind")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Bind("zeta", NewRing(1))
	reg.Bind("alpha", NewRing(1))

	want := []string{"alpha", "zeta"}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
