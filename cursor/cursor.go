// Package cursor implements positioned views over byte buffers: a
// read-only Input cursor for decoding, and Output cursors (fixed-capacity
// and growable) for encoding. Every failure carries the cursor's current
// position and a rendered diagnostic, following the teacher's habit of
// attaching enough context to a failure that a caller can print it
// directly (see glint's decoder.go truncation panics).
package cursor

import (
	"strings"

	"github.com/kungfusheep/serializer/wire"
)

const (
	contextBefore = 160
	contextAfter  = 80
)

// Input is a read-only, position-tracked view over a byte slice.
type Input struct {
	buf []byte
	pos int
}

// NewInput wraps buf for sequential reading from offset 0.
func NewInput(buf []byte) *Input {
	return &Input{buf: buf}
}

// Position returns the current read offset.
func (c *Input) Position() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Input) Remaining() int { return len(c.buf) - c.pos }

// AtEnd reports whether every byte has been consumed.
func (c *Input) AtEnd() bool { return c.pos >= len(c.buf) }

// Peek returns the byte at the current position without advancing.
func (c *Input) Peek() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, c.fail(wire.Underflow, "peek past end of buffer")
	}
	return c.buf[c.pos], nil
}

// Advance moves the cursor forward by n bytes.
func (c *Input) Advance(n int) error {
	if n > c.Remaining() {
		return c.fail(wire.Overflow, "advance(%d) exceeds %d remaining bytes", n, c.Remaining())
	}
	c.pos += n
	return nil
}

// Take returns a borrowed slice of the next n bytes, advancing past them.
func (c *Input) Take(n int) ([]byte, error) {
	if n > c.Remaining() {
		return nil, c.fail(wire.Underflow, "take(%d) exceeds %d remaining bytes", n, c.Remaining())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Slice returns the bytes of the underlying buffer in [start, end)
// without moving the cursor. Both bounds must fall within bytes already
// scanned by this cursor.
func (c *Input) Slice(start, end int) ([]byte, error) {
	if start < 0 || end > len(c.buf) || start > end {
		return nil, c.fail(wire.Underflow, "slice [%d:%d] out of bounds (len %d)", start, end, len(c.buf))
	}
	return c.buf[start:end], nil
}

// ReadByte reads and consumes a single byte.
func (c *Input) ReadByte() (byte, error) {
	b, err := c.Peek()
	if err != nil {
		return 0, err
	}
	c.pos++
	return b, nil
}

// fail builds a wire.Error with the rendered diagnostic context attached.
func (c *Input) fail(kind wire.Kind, format string, args ...any) error {
	e := wire.New(kind, format, args...)
	return e.WithContext(c.pos, Diagnostic(c.buf, c.pos))
}

// Diagnostic renders up to 160 bytes of context before pos and 80 after,
// replacing non-printable bytes with '#', with a '^' marker at pos.
func Diagnostic(buf []byte, pos int) string {
	start := pos - contextBefore
	if start < 0 {
		start = 0
	}
	end := pos + contextAfter
	if end > len(buf) {
		end = len(buf)
	}
	if pos > len(buf) {
		pos = len(buf)
	}

	var b strings.Builder
	b.WriteString(render(buf[start:pos]))
	b.WriteString("\n")
	for i := start; i < pos; i++ {
		b.WriteByte(' ')
	}
	b.WriteString("^\n")
	b.WriteString(render(buf[pos:end]))
	return b.String()
}

func render(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c < 0x20 || c > 0x7e {
			out[i] = '#'
		} else {
			out[i] = c
		}
	}
	return string(out)
}
