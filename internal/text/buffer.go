// Package text provides the editable text buffer used by editing
// contexts and prompt input areas.
package text

import (
	"errors"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrReadOnly         = errors.New("buffer is read-only")
)

// ByteOffset is a byte position within a buffer.
type ByteOffset int

// Buffer holds the text of a single editing surface: a document body,
// a command line, or a prompt input area. All methods are safe for
// concurrent use.
type Buffer struct {
	mu       sync.RWMutex
	content  string
	revision uint64
	readOnly bool
}

// New creates a new empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// FromString creates a buffer with initial content.
func FromString(s string) *Buffer {
	return &Buffer{content: s}
}

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content
}

// TextRange returns text in the given byte range, clamped to the
// buffer bounds.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := ByteOffset(len(b.content))
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return ""
	}
	return b.content[start:end]
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.content))
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.content) == 0
}

// Revision returns a counter that changes with every mutation.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// IsReadOnly reports whether the buffer rejects plain mutations.
func (b *Buffer) IsReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// SetReadOnly sets the read-only flag. Existing content is untouched.
func (b *Buffer) SetReadOnly(ro bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = ro
}

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return 0, ErrReadOnly
	}
	return b.insertLocked(offset, text)
}

// InsertPrivileged inserts text at the given offset even when the
// buffer is read-only. The read-only flag is lifted only for the
// duration of the call and restored on every exit path.
func (b *Buffer) InsertPrivileged(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	prior := b.readOnly
	b.readOnly = false
	defer func() { b.readOnly = prior }()

	return b.insertLocked(offset, text)
}

func (b *Buffer) insertLocked(offset ByteOffset, text string) (ByteOffset, error) {
	if offset < 0 || offset > ByteOffset(len(b.content)) {
		return 0, ErrOffsetOutOfRange
	}

	b.content = b.content[:offset] + text + b.content[offset:]
	b.revision++

	return offset + ByteOffset(len(text)), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return ErrReadOnly
	}
	if start < 0 || start > end || end > ByteOffset(len(b.content)) {
		return ErrRangeInvalid
	}

	b.content = b.content[:start] + b.content[end:]
	b.revision++

	return nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return 0, ErrReadOnly
	}
	if start < 0 || start > end || end > ByteOffset(len(b.content)) {
		return 0, ErrRangeInvalid
	}

	b.content = b.content[:start] + text + b.content[end:]
	b.revision++

	return start + ByteOffset(len(text)), nil
}

// Clear removes all content. Read-only buffers are left untouched.
func (b *Buffer) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return ErrReadOnly
	}
	if len(b.content) == 0 {
		return nil
	}

	b.content = ""
	b.revision++

	return nil
}
