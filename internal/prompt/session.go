// Package prompt models interactive input sessions and the selection
// facility they use for completion.
package prompt

import (
	"sync"

	"github.com/histkit/recall/internal/text"
)

// Session is one live prompt: a label, its own input area, and the
// input-history list active for this invocation. Distinct sessions of
// the same prompt may carry different history lists.
type Session struct {
	label   string
	input   *text.Buffer
	history []string
}

// NewSession creates a session with a private copy of the history
// list.
func NewSession(label string, history []string) *Session {
	h := make([]string, len(history))
	copy(h, history)

	return &Session{
		label:   label,
		input:   text.New(),
		history: h,
	}
}

// Label returns the prompt label.
func (s *Session) Label() string {
	return s.label
}

// Input returns the session's input area.
func (s *Session) Input() *text.Buffer {
	return s.input
}

// History returns a copy of the history list active for this session,
// most recent first.
func (s *Session) History() []string {
	h := make([]string, len(s.history))
	copy(h, s.history)
	return h
}

// Clear wipes the session's input area.
func (s *Session) Clear() error {
	return s.input.Clear()
}

// Manager tracks the stack of live prompt sessions. Pushing while a
// session is active creates a nested session; the host permits
// recursive prompting.
type Manager struct {
	mu    sync.Mutex
	stack []*Session
}

// NewManager creates an empty session stack.
func NewManager() *Manager {
	return &Manager{}
}

// Push opens a new session and makes it the active one.
func (m *Manager) Push(label string, history []string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := NewSession(label, history)
	m.stack = append(m.stack, s)
	return s
}

// Pop closes the active session and returns it, or nil when no
// session is open.
func (m *Manager) Pop() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.stack) == 0 {
		return nil
	}

	s := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return s
}

// Active returns the innermost live session, or nil when no prompt is
// open. Callers must query this at use time rather than caching the
// result; the active session changes as prompts nest and close.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Depth returns the number of live sessions.
func (m *Manager) Depth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stack)
}
