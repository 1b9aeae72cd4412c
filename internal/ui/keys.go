package ui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/histkit/recall/internal/key"
)

// specialKeys maps tcell named keys to chord keys. tcell aliases the
// terminal's control-letter codes (Enter is Ctrl+M, Tab is Ctrl+I,
// Backspace is Ctrl+H), so those arrive here as the named key.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// ChordFromEvent translates a terminal key event into a chord.
// Reports false for events with no chord representation.
func ChordFromEvent(ev *tcell.EventKey) (key.Chord, bool) {
	mods := modsFrom(ev.Modifiers())

	if k, ok := specialKeys[ev.Key()]; ok {
		return key.NewSpecialChord(k, mods), true
	}

	switch {
	case ev.Key() == tcell.KeyRune:
		r := ev.Rune()
		if r == 0 {
			return key.Chord{}, false
		}
		// Mirror the chord spelling grammar: modified chords match
		// case-insensitively, a bare uppercase rune implies Shift.
		if mods.Has(key.ModCtrl) || mods.Has(key.ModMeta) {
			r = unicode.ToLower(r)
		} else if unicode.IsUpper(r) {
			mods = mods.With(key.ModShift)
		}
		return key.NewRuneChord(r, mods), true

	case ev.Key() == tcell.KeyBacktab:
		return key.NewSpecialChord(key.KeyTab, mods.With(key.ModShift)), true

	case ev.Key() == tcell.KeyCtrlSpace:
		return key.NewRuneChord(' ', mods.With(key.ModCtrl)), true

	// Remaining control-letter codes; the aliased ones were already
	// taken by the named-key table.
	case ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ:
		r := 'a' + rune(ev.Key()-tcell.KeyCtrlA)
		return key.NewRuneChord(r, mods.With(key.ModCtrl)), true
	}

	return key.Chord{}, false
}

// modsFrom converts tcell's modifier mask. Terminals that report the
// meta key as Alt and those that report it as Meta both map to the
// chord grammar's Meta.
func modsFrom(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
