package idl

import (
	"github.com/kungfusheep/serializer/cursor"
	"github.com/kungfusheep/serializer/wire"
)

// lexer tokenizes schema source text per spec.md 4.5: whitespace is any
// of space/tab/CR/LF between tokens, line comments begin with // through
// end of line, block comments are /* ... */ with no nesting.
type lexer struct {
	in      *cursor.Input
	srcCopy []byte
}

func newLexer(src []byte) *lexer {
	return &lexer{in: cursor.NewInput(src), srcCopy: src}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isSchemaSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// skipTrivia consumes whitespace and comments between tokens.
func (l *lexer) skipTrivia() error {
	for {
		if l.in.AtEnd() {
			return nil
		}
		b, err := l.in.Peek()
		if err != nil {
			return err
		}
		switch {
		case isSchemaSpace(b):
			if err := l.in.Advance(1); err != nil {
				return err
			}
		case b == '/':
			if err := l.skipComment(); err != nil {
				return err
			}
			continue
		default:
			return nil
		}
	}
}

// skipComment consumes a // line comment or a /* block comment (no
// nesting: closes on the first */). A leading '/' that does not begin a
// comment is reported as an unexpected character.
func (l *lexer) skipComment() error {
	start := l.in.Position()
	if err := l.in.Advance(1); err != nil {
		return err
	}
	if l.in.AtEnd() {
		return l.errAt(start, wire.BadIdentifier, "unexpected character %q", byte('/'))
	}
	b, err := l.in.Peek()
	if err != nil {
		return err
	}

	switch b {
	case '/':
		for !l.in.AtEnd() {
			c, err := l.in.ReadByte()
			if err != nil {
				return err
			}
			if c == '\n' {
				break
			}
		}
		return nil
	case '*':
		if err := l.in.Advance(1); err != nil {
			return err
		}
		for {
			if l.in.AtEnd() {
				return l.errAt(start, wire.BadIdentifier, "unterminated block comment")
			}
			c, err := l.in.ReadByte()
			if err != nil {
				return err
			}
			if c == '*' && !l.in.AtEnd() {
				d, err := l.in.Peek()
				if err != nil {
					return err
				}
				if d == '/' {
					return l.in.Advance(1)
				}
			}
		}
	default:
		// bare '/' is not valid schema syntax.
		return l.errAt(start, wire.BadIdentifier, "unexpected character %q", byte('/'))
	}
}

func (l *lexer) errAt(pos int, kind wire.Kind, format string, args ...any) error {
	e := wire.New(kind, format, args...)
	return e.WithContext(pos, cursor.Diagnostic(l.bytes(), pos))
}

// bytes exposes the raw source for diagnostic rendering. Input does not
// expose its buffer directly, so lexer keeps its own copy at construction.
func (l *lexer) bytes() []byte {
	return l.srcCopy
}

// next returns the next token, or a BadIdentifier error on an
// unrecognized character.
func (l *lexer) next() (token, error) {
	if err := l.skipTrivia(); err != nil {
		return token{}, err
	}
	if l.in.AtEnd() {
		return token{kind: tokEOF, pos: l.in.Position()}, nil
	}

	pos := l.in.Position()
	b, err := l.in.Peek()
	if err != nil {
		return token{}, err
	}

	switch {
	case isIdentStart(b):
		return l.scanIdent(pos)
	case b == '{':
		l.in.Advance(1)
		return token{kind: tokLBrace, pos: pos}, nil
	case b == '}':
		l.in.Advance(1)
		return token{kind: tokRBrace, pos: pos}, nil
	case b == '(':
		l.in.Advance(1)
		return token{kind: tokLParen, pos: pos}, nil
	case b == ')':
		l.in.Advance(1)
		return token{kind: tokRParen, pos: pos}, nil
	case b == ',':
		l.in.Advance(1)
		return token{kind: tokComma, pos: pos}, nil
	case b == ';':
		l.in.Advance(1)
		return token{kind: tokSemi, pos: pos}, nil
	case b == '=':
		l.in.Advance(1)
		return token{kind: tokEquals, pos: pos}, nil
	case b == ':':
		l.in.Advance(1)
		if !l.in.AtEnd() {
			if nb, _ := l.in.Peek(); nb == ':' {
				l.in.Advance(1)
				return token{kind: tokColonColon, pos: pos}, nil
			}
		}
		return token{kind: tokColon, pos: pos}, nil
	default:
		return token{}, l.errAt(pos, wire.BadIdentifier, "unexpected character %q", b)
	}
}

func (l *lexer) scanIdent(start int) (token, error) {
	for !l.in.AtEnd() {
		b, err := l.in.Peek()
		if err != nil {
			return token{}, err
		}
		if !isIdentCont(b) {
			break
		}
		if err := l.in.Advance(1); err != nil {
			return token{}, err
		}
	}
	raw, err := l.in.Slice(start, l.in.Position())
	if err != nil {
		return token{}, err
	}
	return token{kind: tokIdent, text: string(raw), pos: start}, nil
}
