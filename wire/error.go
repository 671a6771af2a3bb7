// Package wire defines the error vocabulary and endian helpers shared by
// every codec and by the IDL front end. Nothing in this package performs
// I/O or logs: errors are values, returned to the caller to surface.
package wire

import "fmt"

// Kind identifies the class of failure a codec or the IDL front end can
// raise. Kinds are never recovered from within the operation that raises
// them: callers retry with a fresh cursor or schema.
type Kind int

const (
	// BadInput marks malformed wire bytes: truncation, an unexpected
	// character, or a VLQ wider than the format allows.
	BadInput Kind = iota + 1
	// BadType marks an attempt to encode a value of an unsupported type.
	// Only reachable from a bug in generated code.
	BadType
	// KeyNotFound marks an unknown member id or name while decoding a record.
	KeyNotFound
	// Overflow marks a cursor write or advance that would run past its
	// bound (fixed-capacity output, or a growable output's cap).
	Overflow
	// Underflow marks a cursor read past the end of its buffer.
	Underflow
	// BadIdentifier through BadNamespace mark schema-parse failures.
	BadIdentifier
	BadAccessType
	BadObjectType
	BadClassMember
	BadMemberType
	BadClass
	BadNamespace
)

func (k Kind) String() string {
	switch k {
	case BadInput:
		return "BadInput"
	case BadType:
		return "BadType"
	case KeyNotFound:
		return "KeyNotFound"
	case Overflow:
		return "Overflow"
	case Underflow:
		return "Underflow"
	case BadIdentifier:
		return "BadIdentifier"
	case BadAccessType:
		return "BadAccessType"
	case BadObjectType:
		return "BadObjectType"
	case BadClassMember:
		return "BadClassMember"
	case BadMemberType:
		return "BadMemberType"
	case BadClass:
		return "BadClass"
	case BadNamespace:
		return "BadNamespace"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the concrete error type raised by every package in this module.
// Context, when non-empty, is the rendered cursor diagnostic described in
// spec.md 4.1: up to 160 bytes before the failing position (non-printable
// bytes replaced with '#'), a marker, then up to 80 bytes after.
type Error struct {
	Kind    Kind
	Message string
	Offset  int
	Context string
}

func (e *Error) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s: %s (at offset %d)", e.Kind, e.Message, e.Offset)
	}
	return fmt.Sprintf("%s: %s (at offset %d)\n%s", e.Kind, e.Message, e.Offset, e.Context)
}

// Is enables errors.Is(err, wire.ErrBadInput) style matching: any *Error
// matches a target *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an Error with no diagnostic context attached.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithContext returns a copy of e with position/context diagnostics attached.
func (e *Error) WithContext(offset int, context string) *Error {
	cp := *e
	cp.Offset = offset
	cp.Context = context
	return &cp
}

// Sentinel values for errors.Is comparisons against a bare Kind, mirroring
// the teacher's habit of exposing sentinel errors (decoder.go's
// ErrInvalidDocument, ErrSchemaNotFound) alongside formatted ones.
var (
	ErrBadInput      = &Error{Kind: BadInput, Message: "bad input"}
	ErrBadType       = &Error{Kind: BadType, Message: "bad type"}
	ErrKeyNotFound   = &Error{Kind: KeyNotFound, Message: "key not found"}
	ErrOverflow      = &Error{Kind: Overflow, Message: "overflow"}
	ErrUnderflow     = &Error{Kind: Underflow, Message: "underflow"}
	ErrBadIdentifier = &Error{Kind: BadIdentifier, Message: "bad identifier"}
)
