package idl

import (
	"github.com/kungfusheep/serializer/cursor"
	"github.com/kungfusheep/serializer/wire"
)

// Parser implements the recursive-descent grammar of spec.md 4.5. Create
// one per schema source file with NewParser, then call Parse.
type Parser struct {
	lex  *lexer
	cur  token
	src  []byte
}

func NewParser(src []byte) *Parser {
	return &Parser{lex: newLexer(src), src: src}
}

// Parse consumes the entire source as a StmtList rooted at an implicit
// unnamed root namespace, then runs resolution (spec.md 4.5 "Resolution")
// over the resulting tree.
func (p *Parser) Parse() (*Schema, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	root := &Namespace{}
	if err := p.parseStmtList(root); err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, p.errf(wire.BadObjectType, "unexpected trailing token %q", p.cur)
	}

	schema := &Schema{Root: root}
	if err := resolve(schema); err != nil {
		return nil, err
	}
	return schema, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) errf(kind wire.Kind, format string, args ...any) error {
	e := wire.New(kind, format, args...)
	return e.WithContext(p.cur.pos, cursor.Diagnostic(p.src, p.cur.pos))
}

func (p *Parser) expectIdent() (token, error) {
	if p.cur.kind != tokIdent {
		return token{}, p.errf(wire.BadIdentifier, "expected identifier, got %q", p.cur)
	}
	t := p.cur
	if err := p.advance(); err != nil {
		return token{}, err
	}
	return t, nil
}

func (p *Parser) expectKind(k tokenKind, kind wire.Kind, what string) error {
	if p.cur.kind != k {
		return p.errf(kind, "expected %s, got %q", what, p.cur)
	}
	return p.advance()
}

// parseStmtList parses Stmt* until it hits '}' (nested namespace) or EOF
// (top level), attaching each statement to ns.
func (p *Parser) parseStmtList(ns *Namespace) error {
	for {
		switch {
		case p.cur.kind == tokEOF, p.cur.kind == tokRBrace:
			return nil
		case p.cur.kind == tokIdent && p.cur.text == "namespace":
			child, err := p.parseNamespace(ns)
			if err != nil {
				return err
			}
			ns.Children = append(ns.Children, child)
		case p.cur.kind == tokIdent && p.cur.text == "class":
			rec, err := p.parseRecord(ns)
			if err != nil {
				return err
			}
			ns.Children = append(ns.Children, rec)
			if p.cur.kind == tokSemi {
				return p.errf(wire.BadClass, "unexpected ';' after class body")
			}
		case p.cur.kind == tokIdent && p.cur.text == "enum":
			en, err := p.parseEnum(ns)
			if err != nil {
				return err
			}
			ns.Children = append(ns.Children, en)
		default:
			return p.errf(wire.BadObjectType, "expected 'namespace', 'class', or 'enum', got %q", p.cur)
		}
	}
}

func (p *Parser) parseNamespace(parent *Namespace) (*Namespace, error) {
	if err := p.advance(); err != nil { // consume 'namespace'
		return nil, err
	}
	name, err := p.parseHQID()
	if err != nil {
		return nil, err
	}
	if err := p.expectKind(tokLBrace, wire.BadNamespace, "'{'"); err != nil {
		return nil, err
	}

	ns := &Namespace{Name: name, Parent: parent}
	if err := p.parseStmtList(ns); err != nil {
		return nil, err
	}
	if err := p.expectKind(tokRBrace, wire.BadNamespace, "'}'"); err != nil {
		return nil, err
	}
	return ns, nil
}

// parseHQID parses Ident ('::' Ident)* and returns the dotted-by-'::' name.
func (p *Parser) parseHQID() (string, error) {
	first, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	return p.parseHQIDTail(first)
}

func (p *Parser) parseHQIDTail(first token) (string, error) {
	name := first.text
	for p.cur.kind == tokColonColon {
		if err := p.advance(); err != nil {
			return "", err
		}
		next, err := p.expectIdent()
		if err != nil {
			return "", err
		}
		name += "::" + next.text
	}
	return name, nil
}

func (p *Parser) parseAccess() (Access, error) {
	if p.cur.kind != tokIdent {
		return 0, p.errf(wire.BadAccessType, "expected access qualifier, got %q", p.cur)
	}
	var a Access
	switch p.cur.text {
	case "public":
		a = Public
	case "protected":
		a = Protected
	case "private":
		a = Private
	default:
		return 0, p.errf(wire.BadAccessType, "unknown access qualifier %q", p.cur.text)
	}
	return a, p.advance()
}

func (p *Parser) parseRecord(ns *Namespace) (*Record, error) {
	if err := p.advance(); err != nil { // consume 'class'
		return nil, err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	rec := &Record{Name: nameTok.text, NS: ns}

	// AttrList := Ident*, currently only 'packed' is recognized.
	for p.cur.kind == tokIdent {
		switch p.cur.text {
		case "packed":
			rec.Packed = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errf(wire.BadClass, "unknown record attribute %q", p.cur.text)
		}
	}

	var nextID uint32 = 1

	if p.cur.kind == tokColon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for {
			access, err := p.parseAccess()
			if err != nil {
				return nil, err
			}
			refName, err := p.parseHQID()
			if err != nil {
				return nil, err
			}
			rec.Parents = append(rec.Parents, &Parent{RefName: refName, Access: access, ID: nextID, declaredNS: ns})
			nextID++
			if p.cur.kind == tokComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}

	if err := p.expectKind(tokLBrace, wire.BadClass, "'{'"); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for p.cur.kind != tokRBrace {
		if p.cur.kind == tokEOF {
			return nil, p.errf(wire.BadClass, "unterminated class body")
		}
		m, err := p.parseMember(ns)
		if err != nil {
			return nil, err
		}
		if seen[m.Name] {
			return nil, p.errf(wire.BadClassMember, "duplicate member name %q", m.Name)
		}
		seen[m.Name] = true
		m.ID = nextID
		nextID++
		rec.Members = append(rec.Members, m)
	}
	if err := p.expectKind(tokRBrace, wire.BadClass, "'}'"); err != nil {
		return nil, err
	}
	return rec, nil
}

func (p *Parser) parseMember(ns *Namespace) (*Member, error) {
	access, err := p.parseAccess()
	if err != nil {
		return nil, err
	}

	modifier, types, keyType, err := p.parseTypeSpec(ns)
	if err != nil {
		return nil, err
	}

	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, p.errf(wire.BadClassMember, "expected member name")
	}

	if err := p.expectKind(tokSemi, wire.BadClassMember, "';'"); err != nil {
		return nil, err
	}

	return &Member{
		Access:   access,
		Modifier: modifier,
		Types:    types,
		Name:     nameTok.text,
		KeyType:  keyType,
		Display:  nameTok.text,
	}, nil
}

// parseTypeSpec parses the TypeSpec production, returning the member's
// Modifier, its TypeRefs, and (for Mapping) the raw key-type name.
func (p *Parser) parseTypeSpec(ns *Namespace) (Modifier, []*TypeRef, string, error) {
	head, err := p.expectIdent()
	if err != nil {
		return 0, nil, "", p.errf(wire.BadMemberType, "expected type")
	}

	switch head.text {
	case "array":
		name, err := p.parseHQID()
		if err != nil {
			return 0, nil, "", err
		}
		return Sequence, []*TypeRef{{Name: name, DeclaredNS: ns}}, "", nil

	case "map":
		if err := p.expectKind(tokLParen, wire.BadMemberType, "'('"); err != nil {
			return 0, nil, "", err
		}
		keyName, err := p.parseHQID()
		if err != nil {
			return 0, nil, "", err
		}
		if err := p.expectKind(tokRParen, wire.BadMemberType, "')'"); err != nil {
			return 0, nil, "", err
		}
		valName, err := p.parseHQID()
		if err != nil {
			return 0, nil, "", err
		}
		return Mapping, []*TypeRef{{Name: valName, DeclaredNS: ns}}, keyName, nil

	case "union":
		if err := p.expectKind(tokLParen, wire.BadMemberType, "'('"); err != nil {
			return 0, nil, "", err
		}
		var refs []*TypeRef
		for {
			name, err := p.parseHQID()
			if err != nil {
				return 0, nil, "", err
			}
			tag := ""
			if p.cur.kind == tokEquals {
				if err := p.advance(); err != nil {
					return 0, nil, "", err
				}
				tagTok, err := p.expectIdent()
				if err != nil {
					return 0, nil, "", err
				}
				tag = tagTok.text
			}
			refs = append(refs, &TypeRef{Name: name, Tag: tag, DeclaredNS: ns})
			if p.cur.kind == tokComma {
				if err := p.advance(); err != nil {
					return 0, nil, "", err
				}
				continue
			}
			break
		}
		if err := p.expectKind(tokRParen, wire.BadMemberType, "')'"); err != nil {
			return 0, nil, "", err
		}

		seenTags := map[string]bool{}
		for i, r := range refs {
			if r.Tag == "" {
				r.Tag = defaultVariantTag(i)
			}
			if seenTags[r.Tag] {
				return 0, nil, "", p.errf(wire.BadMemberType, "duplicate union variant tag %q", r.Tag)
			}
			seenTags[r.Tag] = true
		}
		return Union, refs, "", nil

	default:
		name, err := p.parseHQIDTail(head)
		if err != nil {
			return 0, nil, "", err
		}
		return Scalar, []*TypeRef{{Name: name, DeclaredNS: ns}}, "", nil
	}
}

func defaultVariantTag(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return "e_" + string(digits[i])
	}
	// Generator-scale schemas never have this many variants; fall back
	// to a simple decimal conversion for completeness.
	return "e_" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

func (p *Parser) parseEnum(ns *Namespace) (*Enum, error) {
	if err := p.advance(); err != nil { // consume 'enum'
		return nil, err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKind(tokLBrace, wire.BadObjectType, "'{'"); err != nil {
		return nil, err
	}

	en := &Enum{Name: nameTok.text, NS: ns}
	if p.cur.kind != tokRBrace {
		for {
			sym, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			en.Symbols = append(en.Symbols, sym.text)
			if p.cur.kind == tokComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if err := p.expectKind(tokRBrace, wire.BadObjectType, "'}'"); err != nil {
		return nil, err
	}
	return en, nil
}
