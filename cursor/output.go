package cursor

import "github.com/kungfusheep/serializer/wire"

// Fixed is an output cursor over a pre-allocated slice of fixed capacity.
// Writing past capacity fails with Overflow rather than reallocating.
type Fixed struct {
	buf []byte
}

// NewFixed wraps buf (len 0, cap = capacity) as a fixed-capacity output.
func NewFixed(buf []byte) *Fixed {
	return &Fixed{buf: buf[:0]}
}

// Bytes returns the bytes written so far.
func (c *Fixed) Bytes() []byte { return c.buf }

// Position returns the number of bytes written.
func (c *Fixed) Position() int { return len(c.buf) }

// Write appends b, failing with Overflow if it would exceed capacity.
func (c *Fixed) Write(b []byte) error {
	if len(c.buf)+len(b) > cap(c.buf) {
		return wire.New(wire.Overflow, "write(%d) exceeds fixed capacity %d", len(b), cap(c.buf)).
			WithContext(len(c.buf), "")
	}
	c.buf = append(c.buf, b...)
	return nil
}

// Growable is an output cursor that reallocates with capacity doubling.
// When Cap is non-zero, growth beyond it fails with Overflow instead of
// reallocating further.
type Growable struct {
	buf []byte
	Cap int // 0 means unbounded
}

// NewGrowable creates a Growable output with an initial capacity hint.
func NewGrowable(initialCap int) *Growable {
	return &Growable{buf: make([]byte, 0, initialCap)}
}

// NewGrowableWithCap creates a Growable output bounded at maxCap bytes.
func NewGrowableWithCap(initialCap, maxCap int) *Growable {
	return &Growable{buf: make([]byte, 0, initialCap), Cap: maxCap}
}

func (c *Growable) Bytes() []byte { return c.buf }
func (c *Growable) Position() int { return len(c.buf) }

// Write appends b, doubling capacity as needed, up to Cap if set.
func (c *Growable) Write(b []byte) error {
	need := len(c.buf) + len(b)
	if c.Cap > 0 && need > c.Cap {
		return wire.New(wire.Overflow, "write(%d) exceeds growable cap %d", len(b), c.Cap).
			WithContext(len(c.buf), "")
	}
	if need > cap(c.buf) {
		newCap := cap(c.buf)
		if newCap == 0 {
			newCap = 16
		}
		for newCap < need {
			newCap *= 2
		}
		if c.Cap > 0 && newCap > c.Cap {
			newCap = c.Cap
		}
		grown := make([]byte, len(c.buf), newCap)
		copy(grown, c.buf)
		c.buf = grown
	}
	c.buf = append(c.buf, b...)
	return nil
}

// WriteByte appends a single byte.
func (c *Growable) WriteByte(b byte) error {
	return c.Write([]byte{b})
}
