package text

import (
	"errors"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := New()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.IsReadOnly() {
		t.Error("new buffer should not be read-only")
	}
}

func TestFromString(t *testing.T) {
	b := FromString("echo hello")

	if b.Text() != "echo hello" {
		t.Errorf("expected %q, got %q", "echo hello", b.Text())
	}
	if b.Len() != 10 {
		t.Errorf("expected length 10, got %d", b.Len())
	}
}

func TestBufferInsert(t *testing.T) {
	b := FromString("Hello World")

	end, err := b.Insert(5, ",")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if end != 6 {
		t.Errorf("expected end position 6, got %d", end)
	}
	if b.Text() != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", b.Text())
	}
}

func TestBufferInsertOutOfRange(t *testing.T) {
	b := FromString("Hello")

	if _, err := b.Insert(100, "X"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
	if _, err := b.Insert(-1, "X"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestBufferDelete(t *testing.T) {
	b := FromString("Hello, World!")

	if err := b.Delete(5, 7); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if b.Text() != "HelloWorld!" {
		t.Errorf("expected 'HelloWorld!', got %q", b.Text())
	}

	if err := b.Delete(3, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestBufferReplace(t *testing.T) {
	b := FromString("ls -la")

	end, err := b.Replace(3, 6, "-lh")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if end != 6 {
		t.Errorf("expected end position 6, got %d", end)
	}
	if b.Text() != "ls -lh" {
		t.Errorf("expected 'ls -lh', got %q", b.Text())
	}
}

func TestBufferClear(t *testing.T) {
	b := FromString("pending input")

	if err := b.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !b.IsEmpty() {
		t.Errorf("expected empty buffer, got %q", b.Text())
	}

	rev := b.Revision()
	if err := b.Clear(); err != nil {
		t.Fatalf("clear of empty buffer failed: %v", err)
	}
	if b.Revision() != rev {
		t.Error("clear of empty buffer should not bump revision")
	}
}

func TestBufferReadOnlyRejectsPlainWrites(t *testing.T) {
	b := FromString("prompt> ")
	b.SetReadOnly(true)

	if _, err := b.Insert(8, "x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Insert on read-only buffer: expected ErrReadOnly, got %v", err)
	}
	if err := b.Delete(0, 1); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Delete on read-only buffer: expected ErrReadOnly, got %v", err)
	}
	if _, err := b.Replace(0, 1, "x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Replace on read-only buffer: expected ErrReadOnly, got %v", err)
	}
	if err := b.Clear(); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Clear on read-only buffer: expected ErrReadOnly, got %v", err)
	}
	if b.Text() != "prompt> " {
		t.Errorf("read-only content changed: %q", b.Text())
	}
}

func TestBufferInsertPrivileged(t *testing.T) {
	b := FromString("prompt> ")
	b.SetReadOnly(true)

	end, err := b.InsertPrivileged(8, "make test")
	if err != nil {
		t.Fatalf("privileged insert failed: %v", err)
	}
	if end != 17 {
		t.Errorf("expected end position 17, got %d", end)
	}
	if b.Text() != "prompt> make test" {
		t.Errorf("expected 'prompt> make test', got %q", b.Text())
	}
	if !b.IsReadOnly() {
		t.Error("read-only flag must be restored after privileged insert")
	}
}

func TestBufferInsertPrivilegedRestoresFlagOnError(t *testing.T) {
	b := FromString("abc")
	b.SetReadOnly(true)

	if _, err := b.InsertPrivileged(99, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Fatalf("expected ErrOffsetOutOfRange, got %v", err)
	}
	if !b.IsReadOnly() {
		t.Error("read-only flag must be restored when privileged insert fails")
	}
}

func TestBufferTextRangeClamps(t *testing.T) {
	b := FromString("abcdef")

	tests := []struct {
		name       string
		start, end ByteOffset
		want       string
	}{
		{"inside", 1, 4, "bcd"},
		{"negative start", -3, 2, "ab"},
		{"past end", 4, 99, "ef"},
		{"inverted", 5, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.TextRange(tt.start, tt.end); got != tt.want {
				t.Errorf("TextRange(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
