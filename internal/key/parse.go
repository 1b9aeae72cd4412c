package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into a Chord.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Key names: "Enter", "Escape", "Tab", "Space", "F2"
//   - With modifiers: "Meta+r", "Ctrl+Q", "Ctrl+Shift+p"
//   - Angle-bracket style: "<M-r>", "<C-q>", "<CR>", "<Esc>"
func Parse(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseBracketStyle(spec[1 : len(spec)-1])
	}

	if strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	return parseSingle(spec)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Chord {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// parseBracketStyle parses "M-r", "C-S-p", "CR", "Esc" (the inner part
// of angle-bracket notation).
func parseBracketStyle(inner string) (Chord, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Chord{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")
	keyPart := parts[len(parts)-1]

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := modifierFromName(strings.ToLower(strings.TrimSpace(p)))
		if mod == ModNone {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKeyPart(keyPart, mods)
}

// parseModifierStyle parses "Meta+r" style notation.
func parseModifierStyle(spec string) (Chord, error) {
	parts := strings.Split(spec, "+")
	if len(parts) < 2 {
		return Chord{}, ErrInvalidSpec
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := modifierFromName(strings.ToLower(strings.TrimSpace(p)))
		if mod == ModNone {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKeyPart(parts[len(parts)-1], mods)
}

// parseSingle parses a bare character or key name.
func parseSingle(spec string) (Chord, error) {
	if k := keyFromName(strings.ToLower(spec)); k != KeyNone {
		return NewSpecialChord(k, ModNone), nil
	}
	if strings.EqualFold(spec, "space") {
		return NewRuneChord(' ', ModNone), nil
	}

	runes := []rune(spec)
	if len(runes) == 1 {
		r := runes[0]
		var mods Modifier
		if unicode.IsUpper(r) {
			mods = ModShift
		}
		return NewRuneChord(r, mods), nil
	}

	return Chord{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// parseKeyPart parses the key portion of a spec with already-known
// modifiers.
func parseKeyPart(keyPart string, mods Modifier) (Chord, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Chord{}, ErrInvalidSpec
	}

	lower := strings.ToLower(keyPart)
	if lower == "space" {
		return NewRuneChord(' ', mods), nil
	}
	if k := keyFromName(lower); k != KeyNone {
		return NewSpecialChord(k, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		// Modified chords are matched case-insensitively; terminals do
		// not distinguish Ctrl+S from Ctrl+s.
		if mods.Has(ModCtrl) || mods.Has(ModMeta) {
			r = unicode.ToLower(r)
		}
		return NewRuneChord(r, mods), nil
	}

	return Chord{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}
