package recall

import "github.com/histkit/recall/internal/prompt"

// NewCandidateSource wraps a resolved history sequence for the
// selection facility. The sequence arrives most recent first; the
// source pins that order and turns off recency cycling so the
// facility presents the entries exactly as given.
func NewCandidateSource(items []string) prompt.Candidates {
	snapshot := make([]string, len(items))
	copy(snapshot, items)
	return prompt.Candidates{
		Items:       snapshot,
		Order:       prompt.OrderGiven,
		CycleRecent: false,
	}
}
