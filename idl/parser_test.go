package idl

import (
	"errors"
	"testing"

	"github.com/kungfusheep/serializer/wire"
)

func mustParse(t *testing.T, src string) *Schema {
	t.Helper()
	s, err := NewParser([]byte(src)).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return s
}

func TestParseSimpleRecord(t *testing.T) {
	schema := mustParse(t, `namespace t { class p { public string n; public uint64 i; } }`)

	ns := schema.Root.Children[0].(*Namespace)
	if ns.Name != "t" {
		t.Fatalf("got namespace %q", ns.Name)
	}
	rec := ns.Children[0].(*Record)
	if rec.Name != "p" || len(rec.Members) != 2 {
		t.Fatalf("got record %+v", rec)
	}
	if rec.Members[0].Name != "n" || rec.Members[0].ID != 1 {
		t.Fatalf("member 0: %+v", rec.Members[0])
	}
	if rec.Members[1].Name != "i" || rec.Members[1].ID != 2 {
		t.Fatalf("member 1: %+v", rec.Members[1])
	}
	if rec.Members[0].Types[0].Kind != Primitive {
		t.Fatalf("expected string to resolve as primitive, got %v", rec.Members[0].Types[0].Kind)
	}
}

// TestS6MapResolution and TestS6BadMapKey pin spec.md 8 scenario S6: a map
// value type resolves against the surrounding namespace, and a
// non-primitive key type fails.
func TestS6MapResolution(t *testing.T) {
	schema := mustParse(t, `namespace n { class person { public uint64 id; } class x { public map(uint64) person list; } }`)

	ns := schema.Root.Children[0].(*Namespace)
	var x *Record
	for _, c := range ns.Children {
		if r, ok := c.(*Record); ok && r.Name == "x" {
			x = r
		}
	}
	if x == nil {
		t.Fatal("record x not found")
	}
	m := x.Members[0]
	if m.Modifier != Mapping {
		t.Fatalf("expected mapping modifier, got %v", m.Modifier)
	}
	if m.Types[0].Kind != RecordKind || m.Types[0].ResolvedRec.Name != "person" {
		t.Fatalf("expected value type to resolve to person, got %+v", m.Types[0])
	}
}

func TestS6BadMapKey(t *testing.T) {
	_, err := NewParser([]byte(`namespace n { class person { public uint64 id; } class x { public map(persontype) person list; } }`)).Parse()
	if err == nil {
		t.Fatal("expected error for non-primitive map key type")
	}
	var werr *wire.Error
	if !errors.As(err, &werr) || werr.Kind != wire.BadMemberType {
		t.Fatalf("expected BadMemberType, got %v", err)
	}
}

func TestUnionDefaultTags(t *testing.T) {
	schema := mustParse(t, `namespace n { class cache {} class http {} class x { public union(cache, http=http) entry; } }`)
	ns := schema.Root.Children[0].(*Namespace)
	var x *Record
	for _, c := range ns.Children {
		if r, ok := c.(*Record); ok && r.Name == "x" {
			x = r
		}
	}
	m := x.Members[0]
	if m.Types[0].Tag != "e_0" {
		t.Fatalf("expected default tag e_0, got %q", m.Types[0].Tag)
	}
	if m.Types[1].Tag != "http" {
		t.Fatalf("expected explicit tag http, got %q", m.Types[1].Tag)
	}
}

func TestTrailingSemicolonAfterClassIsError(t *testing.T) {
	_, err := NewParser([]byte(`class p { public uint64 i; };`)).Parse()
	if err == nil {
		t.Fatal("expected error for trailing ';' after class body")
	}
}

func TestDuplicateMemberName(t *testing.T) {
	_, err := NewParser([]byte(`class p { public uint64 i; public string i; }`)).Parse()
	if err == nil {
		t.Fatal("expected error for duplicate member name")
	}
}

func TestLineAndBlockComments(t *testing.T) {
	src := `
// a comment
namespace t { /* block
   comment */ class p { public uint64 i; } }
`
	mustParse(t, src)
}

func TestBlockCommentDoesNotNest(t *testing.T) {
	src := `/* outer /* inner */ class p { public uint64 i; } }`
	// The first */ closes the comment; the dangling text after it is
	// then parsed as schema source and fails, per spec.md 9.
	_, err := NewParser([]byte(src)).Parse()
	if err == nil {
		t.Fatal("expected parse error once the comment closes early")
	}
}

func TestEnumOrdinalsByPosition(t *testing.T) {
	schema := mustParse(t, `enum color { red, green, blue }`)
	en := schema.Root.Children[0].(*Enum)
	if len(en.Symbols) != 3 || en.Symbols[1] != "green" {
		t.Fatalf("got %+v", en.Symbols)
	}
}

func TestParentsNumberedBeforeMembers(t *testing.T) {
	schema := mustParse(t, `class base { public uint64 x; } class derived : public base { public uint64 y; }`)
	var derived *Record
	for _, c := range schema.Root.Children {
		if r, ok := c.(*Record); ok && r.Name == "derived" {
			derived = r
		}
	}
	if derived.Parents[0].ID != 1 {
		t.Fatalf("expected parent id 1, got %d", derived.Parents[0].ID)
	}
	if derived.Members[0].ID != 2 {
		t.Fatalf("expected first member id 2, got %d", derived.Members[0].ID)
	}
	if derived.Parents[0].Resolved == nil || derived.Parents[0].Resolved.Name != "base" {
		t.Fatalf("expected parent to resolve to base, got %+v", derived.Parents[0].Resolved)
	}
}
