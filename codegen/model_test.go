package codegen

import "testing"

func TestExportedName(t *testing.T) {
	cases := map[string]string{
		"user_id":  "UserId",
		"name":     "Name",
		"":         "Field",
		"a_b_c":    "ABC",
		"already":  "Already",
		"_leading": "Leading",
	}
	for in, want := range cases {
		if got := exportedName(in); got != want {
			t.Errorf("exportedName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestQualifiedGoName(t *testing.T) {
	if got := qualifiedGoName("a::b::c"); got != "ABC" {
		t.Errorf("qualifiedGoName(a::b::c) = %q, want ABC", got)
	}
	if got := qualifiedGoName("shapes"); got != "Shapes" {
		t.Errorf("qualifiedGoName(shapes) = %q, want Shapes", got)
	}
}

func TestBuildModelScalarFields(t *testing.T) {
	schema := mustParse(t, `class point { public int32 x; public string label; }`)
	m, err := buildModel(schema)
	if err != nil {
		t.Fatalf("buildModel: %v", err)
	}
	if len(m.Records) != 1 {
		t.Fatalf("want 1 record, got %d", len(m.Records))
	}
	rm := m.Records[0]
	if rm.GoName != "Point" {
		t.Fatalf("want GoName Point, got %q", rm.GoName)
	}
	if len(rm.Fields) != 2 {
		t.Fatalf("want 2 fields, got %d", len(rm.Fields))
	}
	if rm.Fields[0].Kind != fieldScalar || rm.Fields[0].GoType != "int32" {
		t.Errorf("field 0: %+v", rm.Fields[0])
	}
	if rm.Fields[1].GoType != "string" {
		t.Errorf("field 1: %+v", rm.Fields[1])
	}
}

func TestBuildModelNamespacedRecord(t *testing.T) {
	schema := mustParse(t, `namespace geo { class point { public int32 x; } }`)
	m, err := buildModel(schema)
	if err != nil {
		t.Fatalf("buildModel: %v", err)
	}
	if m.Records[0].GoName != "GeoPoint" {
		t.Fatalf("want GeoPoint, got %q", m.Records[0].GoName)
	}
}

func TestBuildModelUnionVariantNames(t *testing.T) {
	schema := mustParse(t, `class shape { public int32 r; }
		class event { public union(shape = circle, string = label) payload; }`)
	m, err := buildModel(schema)
	if err != nil {
		t.Fatalf("buildModel: %v", err)
	}
	var event recordModel
	for _, rm := range m.Records {
		if rm.GoName == "Event" {
			event = rm
		}
	}
	if event.GoName == "" {
		t.Fatalf("event record not found")
	}
	fm := event.Fields[0]
	if fm.Kind != fieldUnion || fm.UnionGoName != "EventPayload" {
		t.Fatalf("payload field: %+v", fm)
	}
	if len(fm.Variants) != 2 {
		t.Fatalf("want 2 variants, got %d", len(fm.Variants))
	}
	if fm.Variants[0].GoField != "Circle" || fm.Variants[0].GoType != "Shape" {
		t.Errorf("variant 0: %+v", fm.Variants[0])
	}
	if fm.Variants[1].GoField != "Label" || fm.Variants[1].Prim == nil || fm.Variants[1].Prim.goType != "string" {
		t.Errorf("variant 1: %+v", fm.Variants[1])
	}
}

func TestBuildModelMappingKeyAndValue(t *testing.T) {
	schema := mustParse(t, `class bag { public map(string) int64 counts; }`)
	m, err := buildModel(schema)
	if err != nil {
		t.Fatalf("buildModel: %v", err)
	}
	fm := m.Records[0].Fields[0]
	if fm.Kind != fieldMapping || fm.GoType != "map[string]int64" {
		t.Fatalf("mapping field: %+v", fm)
	}
	if fm.KeyPrim == nil || fm.KeyPrim.goType != "string" {
		t.Fatalf("key prim: %+v", fm.KeyPrim)
	}
}
