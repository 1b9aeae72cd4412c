package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/histkit/recall/internal/key"
	"github.com/histkit/recall/internal/match"
	"github.com/histkit/recall/internal/prompt"
)

// maxRecent caps how many past choices a selector tracks for sources
// that opt into recency cycling.
const maxRecent = 32

// ListSelector is an interactive completion facility drawn on a
// Surface. The top row shows the label and query, the rows below show
// the filtered candidates with the current selection marked.
type ListSelector struct {
	surface Surface
	maxRows int
	recent  []string
}

var _ prompt.Selector = (*ListSelector)(nil)

// NewListSelector creates a selector rendering on surface. maxRows
// caps the candidate rows below the input line; zero uses every
// available row.
func NewListSelector(surface Surface, maxRows int) *ListSelector {
	return &ListSelector{surface: surface, maxRows: maxRows}
}

// Select runs the interactive loop until the user accepts a candidate,
// cancels, or the surface is lost.
func (s *ListSelector) Select(req prompt.Request) (string, error) {
	items := req.Candidates.Items
	if req.Candidates.CycleRecent {
		items = s.cycleToFront(items)
	}

	opts := match.Options{PreserveOrder: req.Candidates.Order == prompt.OrderGiven}

	query := ""
	sel := 0

	for {
		visible := match.Filter(query, items, opts)
		if sel >= len(visible) {
			sel = len(visible) - 1
		}
		if sel < 0 {
			sel = 0
		}
		s.render(req.Label, query, visible, sel)

		ev := s.surface.PollEvent()
		if ev == nil {
			return "", ErrSurfaceLost
		}

		kev, ok := ev.(*tcell.EventKey)
		if !ok {
			// Resize and similar events only need a redraw.
			continue
		}

		// Plain runes extend the query; everything else is a command
		// chord.
		if kev.Key() == tcell.KeyRune && kev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
			query += string(kev.Rune())
			sel = 0
			continue
		}

		chord, ok := ChordFromEvent(kev)
		if !ok {
			continue
		}

		switch chord {
		case key.NewSpecialChord(key.KeyEscape, key.ModNone),
			key.NewRuneChord('g', key.ModCtrl),
			key.NewRuneChord('c', key.ModCtrl):
			return "", nil

		case key.NewSpecialChord(key.KeyEnter, key.ModNone):
			switch {
			case len(visible) > 0:
				choice := visible[sel].Text
				if req.Candidates.CycleRecent {
					s.remember(choice)
				}
				return choice, nil
			case query == "" && req.Default != "":
				return req.Default, nil
			case !req.RequireMatch:
				return query, nil
			default:
				s.surface.Beep()
			}

		case key.NewSpecialChord(key.KeyUp, key.ModNone),
			key.NewRuneChord('p', key.ModCtrl):
			if sel > 0 {
				sel--
			}

		case key.NewSpecialChord(key.KeyDown, key.ModNone),
			key.NewRuneChord('n', key.ModCtrl):
			if sel < len(visible)-1 {
				sel++
			}

		case key.NewSpecialChord(key.KeyBackspace, key.ModNone):
			if query != "" {
				runes := []rune(query)
				query = string(runes[:len(runes)-1])
				sel = 0
			}

		case key.NewRuneChord('u', key.ModCtrl):
			query = ""
			sel = 0
		}
	}
}

// render draws the input line and a window of the candidate list that
// keeps the selection visible.
func (s *ListSelector) render(label, query string, visible []match.Result, sel int) {
	width, height := s.surface.Size()
	s.surface.Clear()

	s.surface.SetLine(0, label+query, tcell.StyleDefault)

	rows := height - 1
	if s.maxRows > 0 && s.maxRows < rows {
		rows = s.maxRows
	}

	first := 0
	if rows > 0 && sel >= rows {
		first = sel - rows + 1
	}

	for i := 0; i < rows && first+i < len(visible); i++ {
		marker, style := "  ", tcell.StyleDefault
		if first+i == sel {
			marker, style = "> ", tcell.StyleDefault.Reverse(true)
		}
		s.surface.SetLine(1+i, marker+visible[first+i].Text, style)
	}

	x := uniseg.StringWidth(label + query)
	if width > 0 && x >= width {
		x = width - 1
	}
	s.surface.ShowCursor(x, 0)
	s.surface.Show()
}

// cycleToFront moves previously chosen entries ahead of the rest, most
// recent first, keeping relative order intact otherwise.
func (s *ListSelector) cycleToFront(items []string) []string {
	if len(s.recent) == 0 {
		return items
	}

	out := make([]string, 0, len(items))
	used := make([]bool, len(items))
	for _, r := range s.recent {
		for i, item := range items {
			if !used[i] && item == r {
				out = append(out, item)
				used[i] = true
			}
		}
	}
	for i, item := range items {
		if !used[i] {
			out = append(out, item)
		}
	}
	return out
}

func (s *ListSelector) remember(choice string) {
	recent := make([]string, 0, len(s.recent)+1)
	recent = append(recent, choice)
	for _, r := range s.recent {
		if r != choice {
			recent = append(recent, r)
		}
	}
	if len(recent) > maxRecent {
		recent = recent[:maxRecent]
	}
	s.recent = recent
}
