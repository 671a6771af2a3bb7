package codegen

import (
	"strings"
	"testing"

	"github.com/kungfusheep/serializer/idl"
)

func mustParse(t *testing.T, src string) *idl.Schema {
	t.Helper()
	schema, err := idl.NewParser([]byte(src)).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return schema
}

func mustGenerate(t *testing.T, src string) string {
	t.Helper()
	schema := mustParse(t, src)
	out, err := Generate(schema, "generated")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return out
}

func TestGenerateScalarRecord(t *testing.T) {
	out := mustGenerate(t, `class point { public int32 x; public int32 y; }`)

	for _, want := range []string{
		"type Point struct {",
		"X int32 `serial:\"1,x\"`",
		"Y int32 `serial:\"2,y\"`",
		"func (v *Point) EncodeBinary(mode binary.KeyMode, out binary.Output) error {",
		"func (v *Point) DecodeBinary(mode binary.KeyMode, in *cursor.Input) error {",
		"func (v *Point) decodeBinaryTagged(mode binary.KeyMode, in *cursor.Input) error {",
		"func (v *Point) EncodeText(enc *text.Encoder) error {",
		"func (v *Point) DecodeText(dec *text.Decoder) error {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q\n--- source ---\n%s", want, out)
		}
	}
}

func TestGenerateSequenceAndMapping(t *testing.T) {
	out := mustGenerate(t, `class bag {
		public array string tags;
		public map(string) int64 counts;
	}`)

	for _, want := range []string{
		"Tags []string `serial:\"1,tags\"`",
		"Counts map[string]int64 `serial:\"2,counts\"`",
		"binary.WriteSeqHeader(out, len(v.Tags))",
		"binary.WriteMapHeader(out, len(v.Counts))",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q\n--- source ---\n%s", want, out)
		}
	}
}

func TestGenerateEnum(t *testing.T) {
	out := mustGenerate(t, `enum color { red, green, blue }
		class shirt { public color c; }`)

	for _, want := range []string{
		"type Color int",
		"ColorRed Color = iota",
		"ColorGreen",
		"ColorBlue",
		"const ColorCount = 3",
		"func ColorFromName(name string) (Color, bool) {",
		"binary.WriteEnum(out, uint32(v.C))",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q\n--- source ---\n%s", want, out)
		}
	}
}

func TestGenerateUnion(t *testing.T) {
	out := mustGenerate(t, `class shape { public int32 radius; }
		class event {
			public union(shape = circle, string = label) payload;
		}`)

	for _, want := range []string{
		"type EventPayloadVariant int",
		"EventPayloadCircle EventPayloadVariant = iota",
		"EventPayloadLabel",
		"func (v EventPayloadVariant) Tag() string {",
		"func EventPayloadFromTag(tag string) (EventPayloadVariant, bool) {",
		"type EventPayload struct {",
		"Circle *Shape",
		"Label *string",
		"func (v *Event) encodePayloadBinary(mode binary.KeyMode, out binary.Output) error {",
		"func (v *Event) decodePayloadVariant(variant EventPayloadVariant, mode binary.KeyMode, in *cursor.Input) error {",
		"func (v *Event) encodePayloadText(enc *text.Encoder) error {",
		"enc.ObjectKey(\"tag\")",
		"enc.ObjectKey(\"value\")",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q\n--- source ---\n%s", want, out)
		}
	}
}

func TestGenerateParentEmbedsBase(t *testing.T) {
	out := mustGenerate(t, `class base { public uint32 id; }
		class child : public base { public string name; }`)

	for _, want := range []string{
		"type Child struct {\n\tBase\n",
		"e.Field(1, \"base\")",
		"v.Base.EncodeBinary(mode, out)",
		"d.TagIs(id, name, 1, \"base\")",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q\n--- source ---\n%s", want, out)
		}
	}
}

func TestGenerateAcceptsDistinctEnumSymbols(t *testing.T) {
	// Ordinary schemas never collide under the real hash (the keyspace is
	// 2^64 against a handful of symbols per enum), so this pins the
	// non-collision path: Generate must succeed rather than flag distinct
	// symbols as colliding.
	_ = mustGenerate(t, `enum color { red, green }
		class shirt { public color c; }`)
}

func TestCheckHashCollisionsIgnoresRepeatedIdenticalKeys(t *testing.T) {
	// checkHashCollisions keys its seen-set on dispatch.Hash(s) and only
	// errors when the earlier entry under that hash is a different string.
	// A repeated identical symbol or variant tag lands on its own entry,
	// so it must not be reported as a collision. A real collision between
	// distinct strings is not exercised: it is infeasible to hand-author
	// one against a 64-bit digest.
	m := &model{Enums: []enumModel{{GoName: "X", Symbols: []string{"a", "a"}}}}
	if err := checkHashCollisions(m); err != nil {
		t.Fatalf("a symbol appearing once is not a collision: %v", err)
	}

	m = &model{Records: []recordModel{{
		GoName: "Event",
		Fields: []fieldModel{{
			GoName: "Payload",
			Kind:   fieldUnion,
			Variants: []variantModel{
				{Tag: "circle"},
				{Tag: "circle"},
			},
		}},
	}}}
	if err := checkHashCollisions(m); err != nil {
		t.Fatalf("a repeated identical variant tag is not a collision: %v", err)
	}
}

func TestScanImportNeeds(t *testing.T) {
	plain := mustParse(t, `class point { public int32 x; }`)
	m, err := buildModel(plain)
	if err != nil {
		t.Fatalf("buildModel: %v", err)
	}
	needsDispatch, needsStrings, needsStrconv := scanImportNeeds(m)
	if needsDispatch || needsStrings || needsStrconv {
		t.Fatalf("plain scalar record should need no extra imports, got dispatch=%v strings=%v strconv=%v", needsDispatch, needsStrings, needsStrconv)
	}

	withEnum := mustParse(t, `enum color { red, green }
		class shirt { public color c; }`)
	m, err = buildModel(withEnum)
	if err != nil {
		t.Fatalf("buildModel: %v", err)
	}
	needsDispatch, _, _ = scanImportNeeds(m)
	if !needsDispatch {
		t.Fatalf("a schema with an enum must need dispatch")
	}

	withIntKeyMap := mustParse(t, `class counts { public map(int32) int64 byCode; }`)
	m, err = buildModel(withIntKeyMap)
	if err != nil {
		t.Fatalf("buildModel: %v", err)
	}
	_, _, needsStrconv = scanImportNeeds(m)
	if !needsStrconv {
		t.Fatalf("a non-string map key must need strconv")
	}
}
