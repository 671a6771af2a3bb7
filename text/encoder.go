package text

import (
	"strconv"
	"strings"
)

// Encoder renders the textual wire format described in spec.md 4.3.
// Zero value is not usable; construct with NewEncoder.
type Encoder struct {
	style          Style
	b              strings.Builder
	depth          int
	newlineEmitted bool // avoids double newlines at adjacent delimiter boundaries
}

func NewEncoder(style Style) *Encoder {
	return &Encoder{style: style}
}

// String returns everything written so far.
func (e *Encoder) String() string { return e.b.String() }

// Bytes returns everything written so far as a byte slice.
func (e *Encoder) Bytes() []byte { return []byte(e.b.String()) }

func (e *Encoder) writeIndent() {
	for i := 0; i < e.depth; i++ {
		e.b.WriteString(e.style.Indent)
	}
}

func (e *Encoder) newline() {
	if e.newlineEmitted {
		return
	}
	e.b.WriteByte('\n')
	e.newlineEmitted = true
}

func (e *Encoder) plain(s string) {
	e.b.WriteString(s)
	e.newlineEmitted = false
}

// EncodeBool writes "true" or "false".
func (e *Encoder) EncodeBool(v bool) {
	if v {
		e.plain("true")
	} else {
		e.plain("false")
	}
}

// EncodeChar writes a single byte wrapped in quotes.
func (e *Encoder) EncodeChar(v byte) {
	e.b.WriteByte('"')
	e.b.WriteByte(v)
	e.b.WriteByte('"')
	e.newlineEmitted = false
}

// EncodeString writes v verbatim between quotes; no escaping (spec.md 9).
func (e *Encoder) EncodeString(v string) {
	e.b.WriteByte('"')
	e.b.WriteString(v)
	e.b.WriteByte('"')
	e.newlineEmitted = false
}

func (e *Encoder) EncodeInt64(v int64)   { e.plain(strconv.FormatInt(v, 10)) }
func (e *Encoder) EncodeUint64(v uint64) { e.plain(strconv.FormatUint(v, 10)) }

func (e *Encoder) EncodeFloat32(v float32) {
	e.plain(strconv.FormatFloat(float64(v), 'g', -1, 32))
}

func (e *Encoder) EncodeFloat64(v float64) {
	e.plain(strconv.FormatFloat(v, 'g', -1, 64))
}

// BeginArray writes '[' and opens a nesting level.
func (e *Encoder) BeginArray() {
	if e.style.NewlineBeforeOpenBracket {
		e.newline()
	}
	e.plain("[")
	e.depth++
	if e.style.NewlineAfterOpenBracket {
		e.newline()
		e.writeIndent()
	}
}

// ArraySep writes the separator between array elements. Call before every
// element except the first.
func (e *Encoder) ArraySep() {
	e.plain(",")
	if e.style.SpaceAfterComma {
		e.plain(" ")
	}
	if e.style.NewlineAfterComma {
		e.newline()
		e.writeIndent()
	}
}

// EndArray closes the current nesting level and writes ']'.
func (e *Encoder) EndArray() {
	e.depth--
	if e.style.NewlineBeforeCloseBracket {
		e.newline()
		e.writeIndent()
	}
	e.plain("]")
	if e.style.NewlineAfterCloseBracket {
		e.newline()
	}
}

// BeginObject writes '{' and opens a nesting level.
func (e *Encoder) BeginObject() {
	if e.style.NewlineBeforeOpenBrace {
		e.newline()
	}
	e.plain("{")
	e.depth++
	if e.style.NewlineAfterOpenBrace {
		e.newline()
		e.writeIndent()
	}
}

// ObjectKey writes the quoted key and the ':' separator for a member.
func (e *Encoder) ObjectKey(name string) {
	e.EncodeString(name)
	e.plain(":")
	if e.style.SpaceAfterColon {
		e.plain(" ")
	}
}

// ObjectSep writes the separator between object members. Call before
// every member except the first.
func (e *Encoder) ObjectSep() {
	e.plain(",")
	if e.style.SpaceAfterComma {
		e.plain(" ")
	}
	if e.style.NewlineAfterComma {
		e.newline()
		e.writeIndent()
	}
}

// EndObject closes the current nesting level and writes '}'.
func (e *Encoder) EndObject() {
	e.depth--
	if e.style.NewlineBeforeCloseBrace {
		e.newline()
		e.writeIndent()
	}
	e.plain("}")
	if e.style.NewlineAfterCloseBrace {
		e.newline()
	}
}
