// Package match filters candidate lists for interactive selectors
// using greedy subsequence matching.
package match

import (
	"sort"
	"strings"
	"unicode"
)

// Result is one surviving candidate.
type Result struct {
	// Index is the candidate's position in the input list.
	Index int

	// Text is the candidate string.
	Text string

	// Score ranks match quality (higher is better). Zero for an
	// empty query.
	Score int

	// Positions holds the matched rune indices, relative to the
	// case-folded text when matching is case-insensitive.
	Positions []int
}

// Options configures filtering behavior.
type Options struct {
	// PreserveOrder keeps results in input order instead of sorting
	// by score. Selectors serving a pinned candidate source must set
	// this.
	PreserveOrder bool

	// CaseSensitive enables case-sensitive matching.
	CaseSensitive bool

	// Limit caps the number of results. Zero means no cap.
	Limit int
}

// Filter returns the candidates whose text contains every query rune
// in order. An empty query keeps all candidates. Unless
// opts.PreserveOrder is set, results are sorted by descending score
// with input order breaking ties.
func Filter(query string, items []string, opts Options) []Result {
	query = strings.TrimSpace(query)
	if !opts.CaseSensitive {
		query = strings.ToLower(query)
	}

	if query == "" {
		return allItems(items, opts.Limit)
	}

	queryRunes := []rune(query)
	results := make([]Result, 0, len(items))

	for i, item := range items {
		scan := []rune(item)
		if !opts.CaseSensitive {
			scan = []rune(strings.ToLower(item))
		}
		positions, ok := subsequence(queryRunes, scan)
		if !ok {
			continue
		}
		results = append(results, Result{
			Index:     i,
			Text:      item,
			Score:     score(scan, positions),
			Positions: positions,
		})
	}

	if !opts.PreserveOrder {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	}

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

func allItems(items []string, limit int) []Result {
	count := len(items)
	if limit > 0 && limit < count {
		count = limit
	}

	results := make([]Result, count)
	for i := 0; i < count; i++ {
		results[i] = Result{Index: i, Text: items[i]}
	}
	return results
}

// subsequence finds query runes in the candidate runes with a greedy
// left-to-right scan. Returns the matched positions and whether every
// query rune was found. Positions index the scanned runes, which may
// be case-folded.
func subsequence(queryRunes, textRunes []rune) ([]int, bool) {
	if len(textRunes) == 0 {
		return nil, false
	}

	positions := make([]int, 0, len(queryRunes))
	qi := 0
	for i := 0; i < len(textRunes) && qi < len(queryRunes); i++ {
		if textRunes[i] == queryRunes[qi] {
			positions = append(positions, i)
			qi++
		}
	}

	if qi != len(queryRunes) {
		return nil, false
	}
	return positions, true
}

// score ranks a match: consecutive runs and word-boundary hits score
// up, gaps and late starts score down.
func score(textRunes []rune, positions []int) int {
	if len(positions) == 0 {
		return 0
	}

	s := 100

	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			s += 20
		}
	}

	for _, idx := range positions {
		if idx == 0 || isBoundary(textRunes[idx-1]) {
			s += 15
		}
	}

	if positions[0] == 0 {
		s += 25
	} else {
		s -= positions[0]
	}

	if gap := positions[len(positions)-1] - positions[0] - len(positions) + 1; gap > 0 {
		s -= gap * 2
	}

	if s < 1 {
		s = 1
	}
	return s
}

func isBoundary(prev rune) bool {
	return unicode.IsSpace(prev) || prev == '-' || prev == '_' || prev == '/' || prev == '.'
}
