package match

import (
	"testing"
)

func texts(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterEmptyQueryKeepsAll(t *testing.T) {
	items := []string{"zebra", "apple"}

	got := texts(Filter("", items, Options{PreserveOrder: true}))
	if !equal(got, items) {
		t.Errorf("Filter(\"\") = %v, want %v", got, items)
	}
}

func TestFilterSubsequence(t *testing.T) {
	items := []string{"git status", "git stash", "make test"}

	tests := []struct {
		query string
		want  []string
	}{
		{"gst", []string{"git status", "git stash"}},
		{"mt", []string{"make test"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := texts(Filter(tt.query, items, Options{PreserveOrder: true}))
			if !equal(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilterPreserveOrderNeverSorts(t *testing.T) {
	// "apple" scores higher for query "a" (prefix hit) but "zebra"
	// was supplied first and must stay first.
	items := []string{"zebra", "apple"}

	got := texts(Filter("a", items, Options{PreserveOrder: true}))
	want := []string{"zebra", "apple"}
	if !equal(got, want) {
		t.Errorf("Filter with PreserveOrder = %v, want %v", got, want)
	}
}

func TestFilterScoreOrderRanks(t *testing.T) {
	items := []string{"xxaxx", "axxxx"}

	got := texts(Filter("a", items, Options{}))
	if len(got) != 2 || got[0] != "axxxx" {
		t.Errorf("score ordering = %v, want prefix match first", got)
	}
}

func TestFilterCaseInsensitiveByDefault(t *testing.T) {
	items := []string{"Makefile"}

	if got := Filter("make", items, Options{}); len(got) != 1 {
		t.Errorf("case-insensitive filter missed: %v", got)
	}
	if got := Filter("make", items, Options{CaseSensitive: true}); len(got) != 0 {
		t.Errorf("case-sensitive filter matched: %v", got)
	}
}

func TestFilterIndexTracksInput(t *testing.T) {
	items := []string{"alpha", "beta", "gamma"}

	results := Filter("a", items, Options{PreserveOrder: true})
	for _, r := range results {
		if items[r.Index] != r.Text {
			t.Errorf("Index %d does not point at %q", r.Index, r.Text)
		}
	}
}

func TestFilterDuplicatesSurviveIndependently(t *testing.T) {
	items := []string{"foo", "bar", "foo"}

	results := Filter("foo", items, Options{PreserveOrder: true})
	if len(results) != 2 {
		t.Fatalf("expected both duplicates to survive, got %v", texts(results))
	}
	if results[0].Index != 0 || results[1].Index != 2 {
		t.Errorf("duplicate indices = %d, %d, want 0, 2", results[0].Index, results[1].Index)
	}
}

func TestFilterLimit(t *testing.T) {
	items := []string{"a1", "a2", "a3"}

	got := Filter("a", items, Options{PreserveOrder: true, Limit: 2})
	if len(got) != 2 {
		t.Errorf("Limit ignored: got %d results", len(got))
	}
}
