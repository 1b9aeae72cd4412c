// Package editor models the host's editing contexts: the surfaces a
// user types into, each with a kind, a buffer and a cursor.
package editor

import (
	"unicode/utf8"

	"github.com/histkit/recall/internal/text"
)

// Kind identifies the flavor of an editing context.
type Kind uint8

const (
	// KindNone is an ordinary buffer with no input history of its own.
	KindNone Kind = iota

	// KindPrompt is an input line owned by a prompt session.
	KindPrompt

	// KindShell is an interactive shell buffer.
	KindShell

	// KindREPL is a process-interaction buffer.
	KindREPL

	// KindTerminal is a terminal-emulator buffer.
	KindTerminal
)

var kindNames = map[Kind]string{
	KindNone:     "none",
	KindPrompt:   "prompt",
	KindShell:    "shell",
	KindREPL:     "repl",
	KindTerminal: "terminal",
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "none"
}

// KindFromName maps a configuration name to its Kind.
func KindFromName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindNone, false
}

// Context is one editing surface: its kind, its document and the
// cursor position within it. LastAction records the name of the most
// recently dispatched action; the dispatcher maintains it.
type Context struct {
	Kind       Kind
	LastAction string
	Buf        *text.Buffer
	Cursor     text.ByteOffset
}

// NewContext creates a context of the given kind with an empty buffer.
func NewContext(kind Kind) *Context {
	return &Context{
		Kind: kind,
		Buf:  text.New(),
	}
}

// InsertAtCursor inserts text at the cursor and advances it past the
// insertion. When privileged is set the insert succeeds even if the
// buffer is read-only.
func (c *Context) InsertAtCursor(s string, privileged bool) error {
	var (
		end text.ByteOffset
		err error
	)

	if privileged {
		end, err = c.Buf.InsertPrivileged(c.Cursor, s)
	} else {
		end, err = c.Buf.Insert(c.Cursor, s)
	}
	if err != nil {
		return err
	}

	c.Cursor = end
	return nil
}

// DeleteBack removes the rune before the cursor, if any.
func (c *Context) DeleteBack() error {
	if c.Cursor == 0 {
		return nil
	}

	_, size := utf8.DecodeLastRuneInString(c.Buf.TextRange(0, c.Cursor))
	if size == 0 {
		return nil
	}

	start := c.Cursor - text.ByteOffset(size)
	if err := c.Buf.Delete(start, c.Cursor); err != nil {
		return err
	}
	c.Cursor = start
	return nil
}

// SetCursor moves the cursor, clamped to the buffer bounds.
func (c *Context) SetCursor(off text.ByteOffset) {
	if off < 0 {
		off = 0
	}
	if n := c.Buf.Len(); off > n {
		off = n
	}
	c.Cursor = off
}
