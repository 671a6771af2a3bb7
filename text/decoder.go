package text

import (
	"strconv"

	"github.com/kungfusheep/serializer/cursor"
	"github.com/kungfusheep/serializer/wire"
)

// Decoder parses the textual wire format described in spec.md 4.3. It
// wraps a cursor.Input so every failure carries the cursor's rendered
// diagnostic context.
type Decoder struct {
	in *cursor.Input
}

func NewDecoder(in *cursor.Input) *Decoder {
	return &Decoder{in: in}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// floatStop is the set of bytes that terminate an unquoted float literal
// (spec.md 4.3). Whitespace bytes are included defensively so that a
// pretty-printed newline immediately following a bare float never gets
// folded into the literal, which would otherwise break the pretty/compact
// round-trip equivalence spec.md 8 property 8 requires.
func isFloatStop(b byte) bool {
	switch b {
	case ',', '!', ']', '}', ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

func (d *Decoder) skipSpace() error {
	for {
		if d.in.AtEnd() {
			return nil
		}
		b, err := d.in.Peek()
		if err != nil {
			return err
		}
		if !isSpace(b) {
			return nil
		}
		if err := d.in.Advance(1); err != nil {
			return err
		}
	}
}

func (d *Decoder) peekNonSpace() (byte, error) {
	if err := d.skipSpace(); err != nil {
		return 0, err
	}
	return d.in.Peek()
}

func (d *Decoder) expect(want byte) error {
	b, err := d.in.ReadByte()
	if err != nil {
		return err
	}
	if b != want {
		return wire.New(wire.BadInput, "expected %q, got %q", want, b)
	}
	return nil
}

// DecodeBool accepts any case permutation of true/false.
func (d *Decoder) DecodeBool() (bool, error) {
	if err := d.skipSpace(); err != nil {
		return false, err
	}
	b, err := d.in.Peek()
	if err != nil {
		return false, err
	}

	switch b {
	case 't', 'T':
		if err := d.expectFold("true"); err != nil {
			return false, err
		}
		return true, nil
	case 'f', 'F':
		if err := d.expectFold("false"); err != nil {
			return false, err
		}
		return false, nil
	default:
		return false, wire.New(wire.BadInput, "expected bool, got %q", b)
	}
}

func (d *Decoder) expectFold(word string) error {
	raw, err := d.in.Take(len(word))
	if err != nil {
		return err
	}
	for i := range raw {
		if lower(raw[i]) != word[i] {
			return wire.New(wire.BadInput, "expected %q (any case), got %q", word, raw)
		}
	}
	return nil
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// DecodeChar requires exactly one byte inside quotes.
func (d *Decoder) DecodeChar() (byte, error) {
	if err := d.skipSpace(); err != nil {
		return 0, err
	}
	if err := d.expect('"'); err != nil {
		return 0, err
	}
	b, err := d.in.ReadByte()
	if err != nil {
		return 0, err
	}
	closing, err := d.in.ReadByte()
	if err != nil {
		return 0, err
	}
	if closing != '"' {
		return 0, wire.New(wire.BadInput, "char literal must contain exactly one byte")
	}
	return b, nil
}

// DecodeString copies bytes verbatim until the closing quote. No escape
// processing is performed (spec.md 9): an embedded \" terminates early.
func (d *Decoder) DecodeString() (string, error) {
	if err := d.skipSpace(); err != nil {
		return "", err
	}
	if err := d.expect('"'); err != nil {
		return "", err
	}

	start := d.in.Position()
	for {
		b, err := d.in.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '"' {
			raw, serr := d.in.Slice(start, d.in.Position()-1)
			if serr != nil {
				return "", serr
			}
			return string(raw), nil
		}
	}
}

func saturatingAdd(v, cap_ uint64, digit uint64, saturated bool) (uint64, bool) {
	if saturated {
		return cap_, true
	}
	if v > (cap_-digit)/10 {
		return cap_, true
	}
	return v*10 + digit, false
}

// decodeMagnitude parses a run of ASCII digits, saturating at capValue.
// Extra digits past saturation are still consumed (spec.md 8 property 2).
func (d *Decoder) decodeMagnitude(capValue uint64) (uint64, error) {
	var v uint64
	var saturated bool
	sawDigit := false

	for {
		if d.in.AtEnd() {
			break
		}
		b, err := d.in.Peek()
		if err != nil {
			return 0, err
		}
		if !isDigit(b) {
			break
		}
		sawDigit = true
		v, saturated = saturatingAdd(v, capValue, uint64(b-'0'), saturated)
		if err := d.in.Advance(1); err != nil {
			return 0, err
		}
	}

	if !sawDigit {
		return 0, wire.New(wire.BadInput, "expected integer digits")
	}
	return v, nil
}

func (d *Decoder) readSign() (negative bool, err error) {
	if err := d.skipSpace(); err != nil {
		return false, err
	}
	b, err := d.in.Peek()
	if err != nil {
		return false, err
	}
	switch b {
	case '+':
		return false, d.in.Advance(1)
	case '-':
		return true, d.in.Advance(1)
	default:
		return false, nil
	}
}

func (d *Decoder) decodeUnsigned(max uint64) (uint64, error) {
	neg, err := d.readSign()
	if err != nil {
		return 0, err
	}
	if neg {
		return 0, wire.New(wire.BadInput, "unexpected '-' before unsigned integer")
	}
	return d.decodeMagnitude(max)
}

func (d *Decoder) decodeSigned(maxPositive, maxNegative uint64) (int64, error) {
	neg, err := d.readSign()
	if err != nil {
		return 0, err
	}
	cap_ := maxPositive
	if neg {
		cap_ = maxNegative
	}
	mag, err := d.decodeMagnitude(cap_)
	if err != nil {
		return 0, err
	}
	if neg {
		return -int64(mag), nil
	}
	return int64(mag), nil
}

func (d *Decoder) DecodeUint8() (uint8, error) {
	v, err := d.decodeUnsigned(0xFF)
	return uint8(v), err
}
func (d *Decoder) DecodeUint16() (uint16, error) {
	v, err := d.decodeUnsigned(0xFFFF)
	return uint16(v), err
}
func (d *Decoder) DecodeUint32() (uint32, error) {
	v, err := d.decodeUnsigned(0xFFFFFFFF)
	return uint32(v), err
}
func (d *Decoder) DecodeUint64() (uint64, error) {
	return d.decodeUnsigned(0xFFFFFFFFFFFFFFFF)
}

func (d *Decoder) DecodeInt8() (int8, error) {
	v, err := d.decodeSigned(0x7F, 0x80)
	return int8(v), err
}
func (d *Decoder) DecodeInt16() (int16, error) {
	v, err := d.decodeSigned(0x7FFF, 0x8000)
	return int16(v), err
}
func (d *Decoder) DecodeInt32() (int32, error) {
	v, err := d.decodeSigned(0x7FFFFFFF, 0x80000000)
	return int32(v), err
}
func (d *Decoder) DecodeInt64() (int64, error) {
	return d.decodeSigned(0x7FFFFFFFFFFFFFFF, 0x8000000000000000)
}

func (d *Decoder) decodeFloatLiteral() (string, error) {
	if err := d.skipSpace(); err != nil {
		return "", err
	}
	start := d.in.Position()
	for {
		if d.in.AtEnd() {
			break
		}
		b, err := d.in.Peek()
		if err != nil {
			return "", err
		}
		if isFloatStop(b) {
			break
		}
		if err := d.in.Advance(1); err != nil {
			return "", err
		}
	}
	end := d.in.Position()
	if end == start {
		return "", wire.New(wire.BadInput, "expected float literal")
	}
	raw, err := d.in.Slice(start, end)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (d *Decoder) DecodeFloat32() (float32, error) {
	s, err := d.decodeFloatLiteral()
	if err != nil {
		return 0, err
	}
	v, perr := strconv.ParseFloat(s, 32)
	if perr != nil {
		return 0, wire.New(wire.BadInput, "malformed float %q: %v", s, perr)
	}
	return float32(v), nil
}

func (d *Decoder) DecodeFloat64() (float64, error) {
	s, err := d.decodeFloatLiteral()
	if err != nil {
		return 0, err
	}
	v, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return 0, wire.New(wire.BadInput, "malformed float %q: %v", s, perr)
	}
	return v, nil
}

// BeginArray consumes '[' and reports whether the array is immediately
// empty.
func (d *Decoder) BeginArray() (atEnd bool, err error) {
	if err := d.skipSpace(); err != nil {
		return false, err
	}
	if err := d.expect('['); err != nil {
		return false, err
	}
	b, err := d.peekNonSpace()
	if err != nil {
		return false, err
	}
	if b == ']' {
		return true, d.in.Advance(1)
	}
	return false, nil
}

// ArraySep consumes the separator between elements: ',' followed by
// another element, or ']' ending the array. A trailing comma is BadInput.
func (d *Decoder) ArraySep() (atEnd bool, err error) {
	b, err := d.peekNonSpace()
	if err != nil {
		return false, err
	}
	switch b {
	case ']':
		return true, d.in.Advance(1)
	case ',':
		if err := d.in.Advance(1); err != nil {
			return false, err
		}
		next, err := d.peekNonSpace()
		if err != nil {
			return false, err
		}
		if next == ']' {
			return false, wire.New(wire.BadInput, "trailing comma before ']'")
		}
		return false, nil
	default:
		return false, wire.New(wire.BadInput, "expected ',' or ']', got %q", b)
	}
}

// BeginObject consumes '{' and reports whether the object is immediately
// empty.
func (d *Decoder) BeginObject() (atEnd bool, err error) {
	if err := d.skipSpace(); err != nil {
		return false, err
	}
	if err := d.expect('{'); err != nil {
		return false, err
	}
	b, err := d.peekNonSpace()
	if err != nil {
		return false, err
	}
	if b == '}' {
		return true, d.in.Advance(1)
	}
	return false, nil
}

// ObjectKey reads a quoted member key followed by ':'.
func (d *Decoder) ObjectKey() (string, error) {
	key, err := d.DecodeString()
	if err != nil {
		return "", err
	}
	if err := d.skipSpace(); err != nil {
		return "", err
	}
	if err := d.expect(':'); err != nil {
		return "", err
	}
	return key, nil
}

// ObjectSep mirrors ArraySep for object members.
func (d *Decoder) ObjectSep() (atEnd bool, err error) {
	b, err := d.peekNonSpace()
	if err != nil {
		return false, err
	}
	switch b {
	case '}':
		return true, d.in.Advance(1)
	case ',':
		if err := d.in.Advance(1); err != nil {
			return false, err
		}
		next, err := d.peekNonSpace()
		if err != nil {
			return false, err
		}
		if next == '}' {
			return false, wire.New(wire.BadInput, "trailing comma before '}'")
		}
		return false, nil
	default:
		return false, wire.New(wire.BadInput, "expected ',' or '}', got %q", b)
	}
}
