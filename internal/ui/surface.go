// Package ui renders the demo host's terminal interface: a line
// oriented display surface and the interactive list selector built
// on it.
package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Surface is the display a selector or event loop draws on. Screen
// implements it over a real terminal; NullSurface implements it in
// memory for tests.
type Surface interface {
	// Size returns the surface dimensions in cells.
	Size() (int, int)

	// Clear erases the surface.
	Clear()

	// SetLine writes a full row, truncating to the surface width and
	// padding the remainder with spaces.
	SetLine(y int, text string, style tcell.Style)

	// ShowCursor places the visible cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// Show flushes pending drawing to the display.
	Show()

	// PollEvent blocks for the next event. A nil event means the
	// surface is gone.
	PollEvent() tcell.Event

	// PostEvent queues an event for PollEvent to return.
	PostEvent(ev tcell.Event) error

	// Beep sounds the terminal bell.
	Beep()
}

// NullSurface is an in-memory Surface with a scripted event queue.
// PollEvent returns nil once the queue is exhausted, which readers
// treat as a lost surface.
type NullSurface struct {
	mu            sync.Mutex
	width, height int
	lines         map[int]string
	cursorX       int
	cursorY       int
	cursorShown   bool
	events        []tcell.Event
	shows         int
	beeps         int
}

// NewNullSurface creates an in-memory surface of the given size.
func NewNullSurface(width, height int) *NullSurface {
	return &NullSurface{
		width:  width,
		height: height,
		lines:  make(map[int]string),
	}
}

// Enqueue appends events for PollEvent to return in order.
func (s *NullSurface) Enqueue(evs ...tcell.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evs...)
}

// Size returns the surface dimensions.
func (s *NullSurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Clear erases all rows.
func (s *NullSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[int]string)
}

// SetLine records the text written to a row.
func (s *NullSurface) SetLine(y int, text string, _ tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if y < 0 || y >= s.height {
		return
	}
	s.lines[y] = text
}

// ShowCursor places the cursor.
func (s *NullSurface) ShowCursor(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursorX, s.cursorY, s.cursorShown = x, y, true
}

// HideCursor hides the cursor.
func (s *NullSurface) HideCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursorShown = false
}

// Show counts a flush.
func (s *NullSurface) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shows++
}

// PollEvent pops the next scripted event, or nil when none remain.
func (s *NullSurface) PollEvent() tcell.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events) == 0 {
		return nil
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev
}

// PostEvent appends an event to the queue.
func (s *NullSurface) PostEvent(ev tcell.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

// Beep counts a bell.
func (s *NullSurface) Beep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beeps++
}

// Line returns the text most recently written to a row.
func (s *NullSurface) Line(y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines[y]
}

// Cursor returns the cursor position and visibility.
func (s *NullSurface) Cursor() (x, y int, shown bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursorX, s.cursorY, s.cursorShown
}

// Beeps returns how many times the bell sounded.
func (s *NullSurface) Beeps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beeps
}
