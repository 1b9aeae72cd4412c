package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Screen implements Surface over a real terminal using tcell.
type Screen struct {
	mu     sync.Mutex
	screen tcell.Screen
}

var _ Surface = (*Screen)(nil)

// NewScreen allocates a terminal screen. Init must be called before
// any drawing.
func NewScreen() (*Screen, error) {
	sc, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Screen{screen: sc}, nil
}

// Init puts the terminal into full-screen mode.
func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.EnablePaste()
	return nil
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.Fini()
}

// Size returns the terminal dimensions in cells.
func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen.Size()
}

// Clear erases the screen.
func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.Clear()
}

// SetLine writes a full row. Text is laid out by grapheme cluster so
// combining marks and wide characters land in the right cells, then
// the rest of the row is blanked.
func (s *Screen) SetLine(y int, text string, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	width, height := s.screen.Size()
	if y < 0 || y >= height {
		return
	}

	x := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if w <= 0 {
			continue
		}
		if x+w > width {
			break
		}
		runes := gr.Runes()
		s.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	for ; x < width; x++ {
		s.screen.SetContent(x, y, ' ', nil, style)
	}
}

// ShowCursor places the visible cursor.
func (s *Screen) ShowCursor(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.ShowCursor(x, y)
}

// HideCursor hides the cursor.
func (s *Screen) HideCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.HideCursor()
}

// Show flushes pending drawing to the terminal.
func (s *Screen) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.Show()
}

// PollEvent blocks for the next terminal event. Returns nil after
// Fini.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// PostEvent queues an event, waking a blocked PollEvent.
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.screen.PostEvent(ev)
}

// Beep sounds the terminal bell.
func (s *Screen) Beep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.screen.Beep()
}
