// Package key defines key chords and the spelling grammar used to
// configure bindings.
package key

import "fmt"

// Key identifies a non-character key. Character keys use KeyRune with
// the character stored in Chord.Rune.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyRune is used for character keys.
	KeyRune
)

var keyNames = map[Key]string{
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k == KeyRune {
		return "Rune"
	}
	return "None"
}

// keyFromName maps a lowercase key name to its Key. Returns KeyNone
// for unrecognized names.
func keyFromName(name string) Key {
	switch name {
	case "escape", "esc":
		return KeyEscape
	case "enter", "return", "cr":
		return KeyEnter
	case "tab":
		return KeyTab
	case "backspace", "bs":
		return KeyBackspace
	case "delete", "del":
		return KeyDelete
	case "up":
		return KeyUp
	case "down":
		return KeyDown
	case "left":
		return KeyLeft
	case "right":
		return KeyRight
	case "home":
		return KeyHome
	case "end":
		return KeyEnd
	case "pageup", "pgup":
		return KeyPageUp
	case "pagedown", "pgdn":
		return KeyPageDown
	case "f1":
		return KeyF1
	case "f2":
		return KeyF2
	case "f3":
		return KeyF3
	case "f4":
		return KeyF4
	case "f5":
		return KeyF5
	case "f6":
		return KeyF6
	case "f7":
		return KeyF7
	case "f8":
		return KeyF8
	case "f9":
		return KeyF9
	case "f10":
		return KeyF10
	case "f11":
		return KeyF11
	case "f12":
		return KeyF12
	}
	return KeyNone
}

// Chord is a single key press with modifiers. Chords are comparable
// and usable as map keys.
type Chord struct {
	Key  Key
	Rune rune
	Mods Modifier
}

// NewRuneChord creates a chord for a character key.
func NewRuneChord(r rune, mods Modifier) Chord {
	return Chord{Key: KeyRune, Rune: r, Mods: mods}
}

// NewSpecialChord creates a chord for a non-character key.
func NewSpecialChord(k Key, mods Modifier) Chord {
	return Chord{Key: k, Mods: mods}
}

// IsRune reports whether the chord is a character key.
func (c Chord) IsRune() bool {
	return c.Key == KeyRune
}

// IsZero reports whether the chord is the zero value.
func (c Chord) IsZero() bool {
	return c == Chord{}
}

// String returns the canonical specification form, e.g. "Meta+r",
// "Ctrl+Shift+p", "F2". It can be parsed back with Parse.
func (c Chord) String() string {
	var keyPart string
	switch {
	case c.Key == KeyRune && c.Rune == ' ':
		keyPart = "Space"
	case c.Key == KeyRune:
		keyPart = string(c.Rune)
	default:
		keyPart = c.Key.String()
	}

	if c.Mods == ModNone {
		return keyPart
	}
	return fmt.Sprintf("%s+%s", c.Mods.String(), keyPart)
}
