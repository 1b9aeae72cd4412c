package ui

import "errors"

// Errors returned by display operations.
var (
	// ErrSurfaceLost indicates the display surface went away while an
	// interaction was in progress.
	ErrSurfaceLost = errors.New("display surface lost")

	// ErrNotTerminal indicates standard input or output is not an
	// interactive terminal.
	ErrNotTerminal = errors.New("not an interactive terminal")
)
