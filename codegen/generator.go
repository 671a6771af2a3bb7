package codegen

import (
	"fmt"
	"strings"

	"github.com/kungfusheep/serializer/dispatch"
	"github.com/kungfusheep/serializer/idl"
)

// Generate walks schema and emits complete Go source implementing every
// record and enum it declares: structs, binary Encode/Decode methods
// valid under all three key modes, textual Encode/Decode methods, and
// (for unions) a discriminator enum plus a tagged container type. This
// mirrors the way the teacher's cmd/glint/structgenerator.go turns a
// resolved schema into a single Go source string with strings.Builder
// and fmt.Fprintf, rather than text/template.
func Generate(schema *idl.Schema, packageName string) (string, error) {
	m, err := buildModel(schema)
	if err != nil {
		return "", err
	}
	if err := checkHashCollisions(m); err != nil {
		return "", err
	}

	needsDispatch, needsStrings, needsStrconv := scanImportNeeds(m)

	var b strings.Builder
	b.WriteString("// Code generated by the serializer schema compiler. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", packageName)
	b.WriteString("import (\n")
	b.WriteString("\t\"github.com/kungfusheep/serializer/binary\"\n")
	b.WriteString("\t\"github.com/kungfusheep/serializer/cursor\"\n")
	if needsDispatch {
		b.WriteString("\t\"github.com/kungfusheep/serializer/dispatch\"\n")
	}
	b.WriteString("\t\"github.com/kungfusheep/serializer/text\"\n")
	b.WriteString("\t\"github.com/kungfusheep/serializer/wire\"\n")
	if needsStrconv {
		b.WriteString("\t\"strconv\"\n")
	}
	if needsStrings {
		b.WriteString("\t\"strings\"\n")
	}
	b.WriteString(")\n\n")

	for _, em := range m.Enums {
		writeEnum(&b, em)
	}
	for _, rm := range m.Records {
		writeRecord(&b, rm)
	}
	return b.String(), nil
}

func scanImportNeeds(m *model) (needsDispatch, needsStrings, needsStrconv bool) {
	needsDispatch = len(m.Enums) > 0
	for _, rm := range m.Records {
		for _, fm := range rm.Fields {
			if fm.Kind == fieldUnion {
				needsDispatch = true
				needsStrings = true
			}
			if fm.Kind == fieldMapping && fm.KeyPrim != nil && fm.KeyPrim.goType != "string" {
				needsStrconv = true
			}
		}
	}
	return
}

// checkHashCollisions fails generation (spec's hash-based-dispatch design
// note) when two distinct wire keys in the same switch would hash to the
// same dispatch.Hash bucket, which would otherwise produce a Go source
// file with a duplicate switch case. Member names within one record are
// checked the same way.
func checkHashCollisions(m *model) error {
	for _, em := range m.Enums {
		seen := map[uint64]string{}
		for _, s := range em.Symbols {
			h := dispatch.Hash(s)
			if prior, ok := seen[h]; ok && prior != s {
				return fmt.Errorf("enum %s: symbols %q and %q hash to the same dispatch bucket", em.GoName, prior, s)
			}
			seen[h] = s
		}
	}
	for _, rm := range m.Records {
		names := map[uint64]string{}
		for _, fm := range rm.Fields {
			h := dispatch.Hash(fm.Name)
			if prior, ok := names[h]; ok && prior != fm.Name {
				return fmt.Errorf("%s: member names %q and %q hash to the same dispatch bucket", rm.GoName, prior, fm.Name)
			}
			names[h] = fm.Name
		}
		for _, fm := range rm.Fields {
			if fm.Kind != fieldUnion {
				continue
			}
			seen := map[uint64]string{}
			for _, v := range fm.Variants {
				h := dispatch.Hash(v.Tag)
				if prior, ok := seen[h]; ok && prior != v.Tag {
					return fmt.Errorf("%s.%s: variant tags %q and %q hash to the same dispatch bucket", rm.GoName, fm.GoName, prior, v.Tag)
				}
				seen[h] = v.Tag
			}
		}
	}
	return nil
}

func writeEnum(b *strings.Builder, em enumModel) {
	fmt.Fprintf(b, "type %s int\n\n", em.GoName)
	b.WriteString("const (\n")
	for i, s := range em.Symbols {
		if i == 0 {
			fmt.Fprintf(b, "\t%s%s %s = iota\n", em.GoName, exportedName(s), em.GoName)
		} else {
			fmt.Fprintf(b, "\t%s%s\n", em.GoName, exportedName(s))
		}
	}
	b.WriteString(")\n\n")
	fmt.Fprintf(b, "const %sCount = %d\n\n", em.GoName, len(em.Symbols))

	fmt.Fprintf(b, "func (v %s) String() string {\n\tswitch v {\n", em.GoName)
	for _, s := range em.Symbols {
		fmt.Fprintf(b, "\tcase %s%s:\n\t\treturn %q\n", em.GoName, exportedName(s), s)
	}
	b.WriteString("\tdefault:\n\t\treturn \"\"\n\t}\n}\n\n")

	fmt.Fprintf(b, "// %sFromName resolves a symbolic enum name to its ordinal via the\n", em.GoName)
	fmt.Fprintf(b, "// same dispatch.Hash a decoder uses to look up wire keys.\n")
	fmt.Fprintf(b, "func %sFromName(name string) (%s, bool) {\n\tswitch dispatch.Hash(name) {\n", em.GoName, em.GoName)
	for _, s := range em.Symbols {
		fmt.Fprintf(b, "\tcase %d: // %q\n\t\treturn %s%s, true\n", dispatch.Hash(s), s, em.GoName, exportedName(s))
	}
	b.WriteString("\tdefault:\n\t\treturn 0, false\n\t}\n}\n\n")
}

func writeRecord(b *strings.Builder, rm recordModel) {
	writeStruct(b, rm)
	for _, fm := range rm.Fields {
		if fm.Kind == fieldUnion {
			writeUnionType(b, rm, fm)
		}
	}
	writeEncodeBinary(b, rm)
	writeDecodeBinary(b, rm)
	for _, fm := range rm.Fields {
		if fm.Kind == fieldUnion {
			writeUnionBinaryHelpers(b, rm, fm)
		}
	}
	writeEncodeText(b, rm)
	writeDecodeText(b, rm)
	for _, fm := range rm.Fields {
		if fm.Kind == fieldUnion {
			writeUnionTextHelpers(b, rm, fm)
		}
	}
}

func writeStruct(b *strings.Builder, rm recordModel) {
	fmt.Fprintf(b, "type %s struct {\n", rm.GoName)
	for _, p := range rm.Parents {
		fmt.Fprintf(b, "\t%s\n", p.GoType)
	}
	for _, fm := range rm.Fields {
		fmt.Fprintf(b, "\t%s %s `serial:\"%d,%s\"`\n", fm.GoName, fm.GoType, fm.ID, fm.Name)
	}
	b.WriteString("}\n\n")
}

func writeUnionType(b *strings.Builder, rm recordModel, fm fieldModel) {
	variantType := fm.UnionGoName + "Variant"
	fmt.Fprintf(b, "type %s int\n\n", variantType)
	b.WriteString("const (\n")
	for i, v := range fm.Variants {
		if i == 0 {
			fmt.Fprintf(b, "\t%s%s %s = iota\n", fm.UnionGoName, v.GoField, variantType)
		} else {
			fmt.Fprintf(b, "\t%s%s\n", fm.UnionGoName, v.GoField)
		}
	}
	b.WriteString(")\n\n")

	fmt.Fprintf(b, "func (v %s) Tag() string {\n\tswitch v {\n", variantType)
	for _, vr := range fm.Variants {
		fmt.Fprintf(b, "\tcase %s%s:\n\t\treturn %q\n", fm.UnionGoName, vr.GoField, vr.Tag)
	}
	b.WriteString("\tdefault:\n\t\treturn \"\"\n\t}\n}\n\n")

	fmt.Fprintf(b, "func %sFromTag(tag string) (%s, bool) {\n\tswitch dispatch.Hash(tag) {\n", fm.UnionGoName, variantType)
	for _, vr := range fm.Variants {
		fmt.Fprintf(b, "\tcase %d: // %q\n\t\treturn %s%s, true\n", dispatch.Hash(vr.Tag), vr.Tag, fm.UnionGoName, vr.GoField)
	}
	b.WriteString("\tdefault:\n\t\treturn 0, false\n\t}\n}\n\n")

	fmt.Fprintf(b, "type %s struct {\n\tVariant %s\n", fm.UnionGoName, variantType)
	for _, vr := range fm.Variants {
		fmt.Fprintf(b, "\t%s *%s\n", vr.GoField, vr.GoType)
	}
	b.WriteString("}\n\n")
}

// writeEncodeBinary emits a single EncodeBinary method whose body is
// identical for every key mode: binary.Encoder's Field/UnionField/
// EndRecord already branch on the mode (spec's generation-time
// specialization design note), so the generated record only needs to
// call them.
func writeEncodeBinary(b *strings.Builder, rm recordModel) {
	fmt.Fprintf(b, "func (v *%s) EncodeBinary(mode binary.KeyMode, out binary.Output) error {\n", rm.GoName)
	b.WriteString("\te := binary.NewEncoder(mode, out)\n")
	for _, p := range rm.Parents {
		fmt.Fprintf(b, "\tif err := e.Field(%d, %q); err != nil {\n\t\treturn err\n\t}\n", p.ID, p.Name)
		fmt.Fprintf(b, "\tif err := v.%s.EncodeBinary(mode, out); err != nil {\n\t\treturn err\n\t}\n", p.GoField)
	}
	for _, fm := range rm.Fields {
		writeFieldEncodeBinary(b, rm, fm)
	}
	b.WriteString("\treturn e.EndRecord()\n}\n\n")
}

func writeFieldEncodeBinary(b *strings.Builder, rm recordModel, fm fieldModel) {
	switch fm.Kind {
	case fieldScalar:
		fmt.Fprintf(b, "\tif err := e.Field(%d, %q); err != nil {\n\t\treturn err\n\t}\n", fm.ID, fm.Name)
		fmt.Fprintf(b, "\t%s\n", binEncodeStmt(fm.Prim, fm.IsEnum, "v."+fm.GoName))
	case fieldSequence:
		fmt.Fprintf(b, "\tif err := e.Field(%d, %q); err != nil {\n\t\treturn err\n\t}\n", fm.ID, fm.Name)
		fmt.Fprintf(b, "\tif err := binary.WriteSeqHeader(out, len(v.%s)); err != nil {\n\t\treturn err\n\t}\n", fm.GoName)
		fmt.Fprintf(b, "\tfor _, item := range v.%s {\n", fm.GoName)
		fmt.Fprintf(b, "\t\t%s\n", binEncodeStmt(fm.Prim, fm.IsEnum, "item"))
		b.WriteString("\t}\n")
	case fieldMapping:
		fmt.Fprintf(b, "\tif err := e.Field(%d, %q); err != nil {\n\t\treturn err\n\t}\n", fm.ID, fm.Name)
		fmt.Fprintf(b, "\tif err := binary.WriteMapHeader(out, len(v.%s)); err != nil {\n\t\treturn err\n\t}\n", fm.GoName)
		fmt.Fprintf(b, "\tfor k, val := range v.%s {\n", fm.GoName)
		fmt.Fprintf(b, "\t\t%s\n", binEncodeStmt(fm.KeyPrim, false, "k"))
		fmt.Fprintf(b, "\t\t%s\n", binEncodeStmt(fm.Prim, fm.IsEnum, "val"))
		b.WriteString("\t}\n")
	case fieldUnion:
		fmt.Fprintf(b, "\tif err := v.encode%sBinary(mode, out); err != nil {\n\t\treturn err\n\t}\n", fm.GoName)
	}
}

// binEncodeStmt returns a single "if err := ...; err != nil { return err }"
// statement writing valueExpr with the binary codec. prim nil + isEnum
// false means valueExpr names a nested record type.
func binEncodeStmt(prim *primInfo, isEnum bool, valueExpr string) string {
	switch {
	case prim != nil:
		return fmt.Sprintf("if err := binary.%s(out, %s); err != nil {\n\t\treturn err\n\t}", prim.binWrite, valueExpr)
	case isEnum:
		return fmt.Sprintf("if err := binary.WriteEnum(out, uint32(%s)); err != nil {\n\t\treturn err\n\t}", valueExpr)
	default:
		return fmt.Sprintf("if err := %s.EncodeBinary(mode, out); err != nil {\n\t\treturn err\n\t}", valueExpr)
	}
}

func writeDecodeBinary(b *strings.Builder, rm recordModel) {
	fmt.Fprintf(b, "func (v *%s) DecodeBinary(mode binary.KeyMode, in *cursor.Input) error {\n", rm.GoName)
	b.WriteString("\tif mode == binary.KeyNone {\n")
	for _, p := range rm.Parents {
		fmt.Fprintf(b, "\t\tif err := v.%s.DecodeBinary(mode, in); err != nil {\n\t\t\treturn err\n\t\t}\n", p.GoField)
	}
	for _, fm := range rm.Fields {
		writeFieldDecodeBinaryPositional(b, fm)
	}
	b.WriteString("\t\treturn nil\n\t}\n")
	fmt.Fprintf(b, "\treturn v.decodeBinaryTagged(mode, in)\n}\n\n")

	fmt.Fprintf(b, "func (v *%s) decodeBinaryTagged(mode binary.KeyMode, in *cursor.Input) error {\n", rm.GoName)
	b.WriteString("\td := binary.NewDecoder(mode, in)\n\tfor {\n")
	b.WriteString("\t\tid, name, done, err := d.NextTag()\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n\t\tif done {\n\t\t\treturn nil\n\t\t}\n")
	b.WriteString("\t\tswitch {\n")
	for _, p := range rm.Parents {
		fmt.Fprintf(b, "\t\tcase d.TagIs(id, name, %d, %q):\n", p.ID, p.Name)
		fmt.Fprintf(b, "\t\t\tif err := v.%s.DecodeBinary(mode, in); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n", p.GoField)
	}
	for _, fm := range rm.Fields {
		writeFieldDecodeBinaryTagged(b, rm, fm)
	}
	fmt.Fprintf(b, "\t\tdefault:\n\t\t\treturn wire.New(wire.KeyNotFound, \"unknown member (id=%%d name=%%q) on %s\", id, name)\n", rm.GoName)
	b.WriteString("\t\t}\n\t}\n}\n\n")
}

func writeFieldDecodeBinaryPositional(b *strings.Builder, fm fieldModel) {
	switch fm.Kind {
	case fieldScalar:
		b.WriteString("\t\t{\n")
		b.WriteString(indentLines(binDecodeAssign(fm.Prim, fm.IsEnum, fm.GoType, "v."+fm.GoName), "\t\t"))
		b.WriteString("\t\t}\n")
	case fieldSequence:
		elemType := strings.TrimPrefix(fm.GoType, "[]")
		b.WriteString("\t\t{\n")
		fmt.Fprintf(b, "\t\t\tn, err := binary.ReadSeqHeader(in)\n\t\t\tif err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
		fmt.Fprintf(b, "\t\t\tv.%s = make(%s, 0, n)\n", fm.GoName, fm.GoType)
		b.WriteString("\t\t\tfor i := 0; i < n; i++ {\n")
		b.WriteString(indentLines(binDecodeAppend(fm.Prim, fm.IsEnum, elemType, "v."+fm.GoName), "\t\t\t\t"))
		b.WriteString("\t\t\t}\n\t\t}\n")
	case fieldMapping:
		b.WriteString("\t\t{\n")
		fmt.Fprintf(b, "\t\t\tn, err := binary.ReadMapHeader(in)\n\t\t\tif err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
		fmt.Fprintf(b, "\t\t\tv.%s = make(%s, n)\n", fm.GoName, fm.GoType)
		b.WriteString("\t\t\tfor i := 0; i < n; i++ {\n")
		b.WriteString(indentLines(binDecodeAssign(fm.KeyPrim, false, fm.KeyPrim.goType, "key"), "\t\t\t\t"))
		valType := strings.TrimPrefix(fm.GoType, "map["+fm.KeyPrim.goType+"]")
		b.WriteString(indentLines(binDecodeAssign(fm.Prim, fm.IsEnum, valType, "val"), "\t\t\t\t"))
		fmt.Fprintf(b, "\t\t\t\tv.%s[key] = val\n", fm.GoName)
		b.WriteString("\t\t\t}\n\t\t}\n")
	case fieldUnion:
		b.WriteString("\t\t{\n")
		b.WriteString("\t\t\tvi, err := binary.ReadEnum(in)\n\t\t\tif err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
		fmt.Fprintf(b, "\t\t\tif err := v.decode%sVariant(%sVariant(vi), mode, in); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n", fm.GoName, fm.UnionGoName)
		b.WriteString("\t\t}\n")
	}
}

// assignOp picks '=' for an existing struct field ("v.Foo") and ':=' for
// a bare local identifier (a mapping loop's "key"/"val") that this
// statement block is introducing for the first time.
func assignOp(dest string) string {
	if strings.HasPrefix(dest, "v.") {
		return "="
	}
	return ":="
}

// binDecodeAssign decodes one binary scalar/enum/record value into dest,
// declaring dest with ':=' if it is a bare local identifier or assigning
// into it with '=' if it is an existing struct field.
func binDecodeAssign(prim *primInfo, isEnum bool, goType, dest string) string {
	op := assignOp(dest)
	switch {
	case prim != nil:
		return fmt.Sprintf("%s, err := binary.%s(in)\nif err != nil {\n\treturn err\n}\n%s %s %s\n", tempVarFor(dest), prim.binRead, dest, op, tempVarFor(dest))
	case isEnum:
		return fmt.Sprintf("ord, err := binary.ReadEnum(in)\nif err != nil {\n\treturn err\n}\nif ord >= uint32(%sCount) {\n\treturn wire.New(wire.BadInput, \"ordinal %%d out of range for %s\", ord)\n}\n%s %s %s(ord)\n", goType, goType, dest, op, goType)
	default:
		return fmt.Sprintf("var tmp %s\nif err := tmp.DecodeBinary(mode, in); err != nil {\n\treturn err\n}\n%s %s tmp\n", goType, dest, op)
	}
}

func binDecodeAppend(prim *primInfo, isEnum bool, elemType, sliceExpr string) string {
	switch {
	case prim != nil:
		return fmt.Sprintf("item, err := binary.%s(in)\nif err != nil {\n\treturn err\n}\n%s = append(%s, item)\n", prim.binRead, sliceExpr, sliceExpr)
	case isEnum:
		return fmt.Sprintf("ord, err := binary.ReadEnum(in)\nif err != nil {\n\treturn err\n}\nif ord >= uint32(%sCount) {\n\treturn wire.New(wire.BadInput, \"ordinal %%d out of range for %s\", ord)\n}\n%s = append(%s, %s(ord))\n", elemType, elemType, sliceExpr, sliceExpr, elemType)
	default:
		return fmt.Sprintf("var item %s\nif err := item.DecodeBinary(mode, in); err != nil {\n\treturn err\n}\n%s = append(%s, item)\n", elemType, sliceExpr, sliceExpr)
	}
}

func tempVarFor(dest string) string {
	if dest == "key" || dest == "val" {
		return dest + "v"
	}
	return "val"
}

func indentLines(s, indent string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(indent)
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}

func writeFieldDecodeBinaryTagged(b *strings.Builder, rm recordModel, fm fieldModel) {
	switch fm.Kind {
	case fieldUnion:
		fmt.Fprintf(b, "\t\tcase mode == binary.KeyInteger && id == %d:\n", fm.ID)
		b.WriteString("\t\t\tvi, verr := d.ReadVariantIndex()\n\t\t\tif verr != nil {\n\t\t\t\treturn verr\n\t\t\t}\n")
		fmt.Fprintf(b, "\t\t\tif err := v.decode%sVariant(%sVariant(vi), mode, in); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n", fm.GoName, fm.UnionGoName)
		fmt.Fprintf(b, "\t\tcase mode == binary.KeyString && strings.HasPrefix(name, %q):\n", fm.Name+":")
		fmt.Fprintf(b, "\t\t\tvariant, ok := %sFromTag(strings.TrimPrefix(name, %q))\n", fm.UnionGoName, fm.Name+":")
		b.WriteString("\t\t\tif !ok {\n\t\t\t\treturn wire.New(wire.BadInput, \"unknown variant in tag %q\", name)\n\t\t\t}\n")
		fmt.Fprintf(b, "\t\t\tif err := v.decode%sVariant(variant, mode, in); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n", fm.GoName)
	default:
		fmt.Fprintf(b, "\t\tcase d.TagIs(id, name, %d, %q):\n", fm.ID, fm.Name)
		switch fm.Kind {
		case fieldScalar:
			b.WriteString(indentLines(binDecodeAssign(fm.Prim, fm.IsEnum, fm.GoType, "v."+fm.GoName), "\t\t\t"))
		case fieldSequence:
			elemType := strings.TrimPrefix(fm.GoType, "[]")
			b.WriteString("\t\t\tn, err := binary.ReadSeqHeader(in)\n\t\t\tif err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
			fmt.Fprintf(b, "\t\t\tv.%s = make(%s, 0, n)\n", fm.GoName, fm.GoType)
			b.WriteString("\t\t\tfor i := 0; i < n; i++ {\n")
			b.WriteString(indentLines(binDecodeAppend(fm.Prim, fm.IsEnum, elemType, "v."+fm.GoName), "\t\t\t\t"))
			b.WriteString("\t\t\t}\n")
		case fieldMapping:
			b.WriteString("\t\t\tn, err := binary.ReadMapHeader(in)\n\t\t\tif err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
			fmt.Fprintf(b, "\t\t\tv.%s = make(%s, n)\n", fm.GoName, fm.GoType)
			b.WriteString("\t\t\tfor i := 0; i < n; i++ {\n")
			b.WriteString(indentLines(binDecodeAssign(fm.KeyPrim, false, fm.KeyPrim.goType, "key"), "\t\t\t\t"))
			valType := strings.TrimPrefix(fm.GoType, "map["+fm.KeyPrim.goType+"]")
			b.WriteString(indentLines(binDecodeAssign(fm.Prim, fm.IsEnum, valType, "val"), "\t\t\t\t"))
			fmt.Fprintf(b, "\t\t\t\tv.%s[key] = val\n", fm.GoName)
			b.WriteString("\t\t\t}\n")
		}
	}
}

// --- union binary helpers -------------------------------------------------

func writeUnionBinaryHelpers(b *strings.Builder, rm recordModel, fm fieldModel) {
	variantType := fm.UnionGoName + "Variant"
	fmt.Fprintf(b, "func (v *%s) encode%sBinary(mode binary.KeyMode, out binary.Output) error {\n", rm.GoName, fm.GoName)
	b.WriteString("\te := binary.NewEncoder(mode, out)\n")
	fmt.Fprintf(b, "\tif err := e.UnionField(%d, %q, uint32(v.%s.Variant), v.%s.Variant.Tag()); err != nil {\n\t\treturn err\n\t}\n", fm.ID, fm.Name, fm.GoName, fm.GoName)
	b.WriteString("\tswitch v.")
	b.WriteString(fm.GoName)
	b.WriteString(".Variant {\n")
	for _, vr := range fm.Variants {
		fmt.Fprintf(b, "\tcase %s%s:\n", fm.UnionGoName, vr.GoField)
		fmt.Fprintf(b, "\t\tif v.%s.%s == nil {\n\t\t\treturn wire.New(wire.BadType, \"union %s.%s variant %s is unset\")\n\t\t}\n", fm.GoName, vr.GoField, rm.GoName, fm.GoName, vr.Tag)
		b.WriteString("\t\t")
		b.WriteString(binEncodeStmt(vr.Prim, vr.IsEnum, fmt.Sprintf("(*v.%s.%s)", fm.GoName, vr.GoField)))
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "\tdefault:\n\t\treturn wire.New(wire.BadType, \"unknown union %s.%s variant %%d\", v.%s.Variant)\n", rm.GoName, fm.GoName, fm.GoName)
	b.WriteString("\t}\n\treturn nil\n}\n\n")

	fmt.Fprintf(b, "func (v *%s) decode%sVariant(variant %s, mode binary.KeyMode, in *cursor.Input) error {\n", rm.GoName, fm.GoName, variantType)
	fmt.Fprintf(b, "\tv.%s = %s{Variant: variant}\n", fm.GoName, fm.UnionGoName)
	b.WriteString("\tswitch variant {\n")
	for _, vr := range fm.Variants {
		fmt.Fprintf(b, "\tcase %s%s:\n", fm.UnionGoName, vr.GoField)
		switch {
		case vr.Prim != nil:
			fmt.Fprintf(b, "\t\tval, err := binary.%s(in)\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n", vr.Prim.binRead)
			fmt.Fprintf(b, "\t\tv.%s.%s = &val\n", fm.GoName, vr.GoField)
		case vr.IsEnum:
			b.WriteString("\t\tord, err := binary.ReadEnum(in)\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n")
			fmt.Fprintf(b, "\t\tif ord >= uint32(%sCount) {\n\t\t\treturn wire.New(wire.BadInput, \"ordinal %%d out of range for %s\", ord)\n\t\t}\n", vr.GoType, vr.GoType)
			fmt.Fprintf(b, "\t\tval := %s(ord)\n\t\tv.%s.%s = &val\n", vr.GoType, fm.GoName, vr.GoField)
		default:
			fmt.Fprintf(b, "\t\tval := &%s{}\n\t\tif err := val.DecodeBinary(mode, in); err != nil {\n\t\t\treturn err\n\t\t}\n", vr.GoType)
			fmt.Fprintf(b, "\t\tv.%s.%s = val\n", fm.GoName, vr.GoField)
		}
	}
	fmt.Fprintf(b, "\tdefault:\n\t\treturn wire.New(wire.BadInput, \"unknown union %s.%s variant index %%d\", variant)\n", rm.GoName, fm.GoName)
	b.WriteString("\t}\n\treturn nil\n}\n\n")
}

// --- textual codec ---------------------------------------------------------

func writeEncodeText(b *strings.Builder, rm recordModel) {
	fmt.Fprintf(b, "func (v *%s) EncodeText(enc *text.Encoder) error {\n", rm.GoName)
	b.WriteString("\tenc.BeginObject()\n")
	idx := 0
	total := len(rm.Parents) + len(rm.Fields)
	for _, p := range rm.Parents {
		writeTextSep(b, idx, total)
		fmt.Fprintf(b, "\tenc.ObjectKey(%q)\n", p.Name)
		fmt.Fprintf(b, "\tif err := v.%s.EncodeText(enc); err != nil {\n\t\treturn err\n\t}\n", p.GoField)
		idx++
	}
	for _, fm := range rm.Fields {
		writeTextSep(b, idx, total)
		writeFieldEncodeText(b, rm, fm)
		idx++
	}
	b.WriteString("\tenc.EndObject()\n\treturn nil\n}\n\n")
}

func writeTextSep(b *strings.Builder, idx, total int) {
	if idx > 0 {
		b.WriteString("\tenc.ObjectSep()\n")
	}
}

func writeFieldEncodeText(b *strings.Builder, rm recordModel, fm fieldModel) {
	fmt.Fprintf(b, "\tenc.ObjectKey(%q)\n", fm.Name)
	switch fm.Kind {
	case fieldScalar:
		b.WriteString("\t" + textEncodeStmt(fm.Prim, fm.IsEnum, "v."+fm.GoName) + "\n")
	case fieldSequence:
		b.WriteString("\tenc.BeginArray()\n")
		fmt.Fprintf(b, "\tfor i, item := range v.%s {\n\t\tif i > 0 {\n\t\t\tenc.ArraySep()\n\t\t}\n", fm.GoName)
		b.WriteString("\t\t" + textEncodeStmt(fm.Prim, fm.IsEnum, "item") + "\n\t}\n")
		b.WriteString("\tenc.EndArray()\n")
	case fieldMapping:
		b.WriteString("\tenc.BeginObject()\n")
		fmt.Fprintf(b, "\t{\n\t\ti := 0\n\t\tfor k, val := range v.%s {\n\t\t\tif i > 0 {\n\t\t\t\tenc.ObjectSep()\n\t\t\t}\n", fm.GoName)
		b.WriteString("\t\t\tenc.ObjectKey(" + mapKeyToStringExpr(fm.KeyPrim, "k") + ")\n")
		b.WriteString("\t\t\t" + textEncodeStmt(fm.Prim, fm.IsEnum, "val") + "\n")
		b.WriteString("\t\t\ti++\n\t\t}\n\t}\n")
		b.WriteString("\tenc.EndObject()\n")
	case fieldUnion:
		fmt.Fprintf(b, "\tif err := v.encode%sText(enc); err != nil {\n\t\treturn err\n\t}\n", fm.GoName)
	}
}

func textEncodeStmt(prim *primInfo, isEnum bool, valueExpr string) string {
	switch {
	case prim != nil && prim.textCast != "":
		return fmt.Sprintf("enc.%s(%s(%s))", prim.textEncode, prim.textCast, valueExpr)
	case prim != nil:
		return fmt.Sprintf("enc.%s(%s)", prim.textEncode, valueExpr)
	case isEnum:
		return fmt.Sprintf("enc.EncodeString(%s.String())", valueExpr)
	default:
		return fmt.Sprintf("if err := %s.EncodeText(enc); err != nil {\n\t\treturn err\n\t}", valueExpr)
	}
}

func mapKeyToStringExpr(prim *primInfo, varName string) string {
	switch prim.goType {
	case "string":
		return varName
	case "bool":
		return fmt.Sprintf("strconv.FormatBool(%s)", varName)
	case "byte":
		return fmt.Sprintf("string(rune(%s))", varName)
	case "int8", "int16", "int32":
		return fmt.Sprintf("strconv.FormatInt(int64(%s), 10)", varName)
	case "int64":
		return fmt.Sprintf("strconv.FormatInt(%s, 10)", varName)
	case "uint8", "uint16", "uint32":
		return fmt.Sprintf("strconv.FormatUint(uint64(%s), 10)", varName)
	case "uint64":
		return fmt.Sprintf("strconv.FormatUint(%s, 10)", varName)
	case "float32":
		return fmt.Sprintf("strconv.FormatFloat(float64(%s), 'g', -1, 32)", varName)
	case "float64":
		return fmt.Sprintf("strconv.FormatFloat(%s, 'g', -1, 64)", varName)
	default:
		return varName
	}
}

func mapKeyFromStringStmt(prim *primInfo, keyVar, dest string) string {
	switch prim.goType {
	case "string":
		return fmt.Sprintf("%s := %s\n", dest, keyVar)
	case "bool":
		return fmt.Sprintf("%s, err := strconv.ParseBool(%s)\nif err != nil {\n\treturn wire.New(wire.BadInput, \"bad map key %%q: %%v\", %s, err)\n}\n", dest, keyVar, keyVar)
	case "byte":
		return fmt.Sprintf("if len(%s) != 1 {\n\treturn wire.New(wire.BadInput, \"bad char map key %%q\", %s)\n}\n%s := %s[0]\n", keyVar, keyVar, dest, keyVar)
	case "int8", "int16", "int32", "int64":
		bits := map[string]string{"int8": "8", "int16": "16", "int32": "32", "int64": "64"}[prim.goType]
		return fmt.Sprintf("parsed, err := strconv.ParseInt(%s, 10, %s)\nif err != nil {\n\treturn wire.New(wire.BadInput, \"bad map key %%q: %%v\", %s, err)\n}\n%s := %s(parsed)\n", keyVar, bits, keyVar, dest, prim.goType)
	case "uint8", "uint16", "uint32", "uint64":
		bits := map[string]string{"uint8": "8", "uint16": "16", "uint32": "32", "uint64": "64"}[prim.goType]
		return fmt.Sprintf("parsed, err := strconv.ParseUint(%s, 10, %s)\nif err != nil {\n\treturn wire.New(wire.BadInput, \"bad map key %%q: %%v\", %s, err)\n}\n%s := %s(parsed)\n", keyVar, bits, keyVar, dest, prim.goType)
	case "float32", "float64":
		bits := "64"
		if prim.goType == "float32" {
			bits = "32"
		}
		return fmt.Sprintf("parsed, err := strconv.ParseFloat(%s, %s)\nif err != nil {\n\treturn wire.New(wire.BadInput, \"bad map key %%q: %%v\", %s, err)\n}\n%s := %s(parsed)\n", keyVar, bits, keyVar, dest, prim.goType)
	default:
		return fmt.Sprintf("%s := %s\n", dest, keyVar)
	}
}

func writeDecodeText(b *strings.Builder, rm recordModel) {
	fmt.Fprintf(b, "func (v *%s) DecodeText(dec *text.Decoder) error {\n", rm.GoName)
	b.WriteString("\tatEnd, err := dec.BeginObject()\n\tif err != nil {\n\t\treturn err\n\t}\n")
	b.WriteString("\tfor !atEnd {\n")
	b.WriteString("\t\tkey, err := dec.ObjectKey()\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n")
	b.WriteString("\t\tswitch key {\n")
	for _, p := range rm.Parents {
		fmt.Fprintf(b, "\t\tcase %q:\n", p.Name)
		fmt.Fprintf(b, "\t\t\tif err := v.%s.DecodeText(dec); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n", p.GoField)
	}
	for _, fm := range rm.Fields {
		writeFieldDecodeText(b, rm, fm)
	}
	fmt.Fprintf(b, "\t\tdefault:\n\t\t\treturn wire.New(wire.KeyNotFound, \"unknown member %%q on %s\", key)\n", rm.GoName)
	b.WriteString("\t\t}\n")
	b.WriteString("\t\tatEnd, err = dec.ObjectSep()\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n")
	b.WriteString("\t}\n\treturn nil\n}\n\n")
}

func writeFieldDecodeText(b *strings.Builder, rm recordModel, fm fieldModel) {
	fmt.Fprintf(b, "\t\tcase %q:\n", fm.Name)
	switch fm.Kind {
	case fieldScalar:
		b.WriteString(indentLines(textDecodeAssign(fm.Prim, fm.IsEnum, fm.GoType, "v."+fm.GoName), "\t\t\t"))
	case fieldSequence:
		elemType := strings.TrimPrefix(fm.GoType, "[]")
		b.WriteString("\t\t\tatEndArr, err := dec.BeginArray()\n\t\t\tif err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
		fmt.Fprintf(b, "\t\t\tv.%s = nil\n\t\t\tfor !atEndArr {\n", fm.GoName)
		b.WriteString(indentLines(textDecodeAppend(fm.Prim, fm.IsEnum, elemType, "v."+fm.GoName), "\t\t\t\t"))
		b.WriteString("\t\t\t\tatEndArr, err = dec.ArraySep()\n\t\t\t\tif err != nil {\n\t\t\t\t\treturn err\n\t\t\t\t}\n\t\t\t}\n")
	case fieldMapping:
		b.WriteString("\t\t\tatEndObj, err := dec.BeginObject()\n\t\t\tif err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
		fmt.Fprintf(b, "\t\t\tv.%s = make(%s)\n\t\t\tfor !atEndObj {\n", fm.GoName, fm.GoType)
		b.WriteString("\t\t\t\tkeyStr, err := dec.ObjectKey()\n\t\t\t\tif err != nil {\n\t\t\t\t\treturn err\n\t\t\t\t}\n")
		b.WriteString(indentLines(mapKeyFromStringStmt(fm.KeyPrim, "keyStr", "key"), "\t\t\t\t"))
		valType := strings.TrimPrefix(fm.GoType, "map["+fm.KeyPrim.goType+"]")
		b.WriteString(indentLines(textDecodeAssign(fm.Prim, fm.IsEnum, valType, "val"), "\t\t\t\t"))
		fmt.Fprintf(b, "\t\t\t\tv.%s[key] = val\n", fm.GoName)
		b.WriteString("\t\t\t\tatEndObj, err = dec.ObjectSep()\n\t\t\t\tif err != nil {\n\t\t\t\t\treturn err\n\t\t\t\t}\n\t\t\t}\n")
	case fieldUnion:
		fmt.Fprintf(b, "\t\t\tif err := v.decode%sText(dec); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n", fm.GoName)
	}
}

func textDecodeAssign(prim *primInfo, isEnum bool, goType, dest string) string {
	op := assignOp(dest)
	switch {
	case prim != nil && prim.textCast != "":
		return fmt.Sprintf("raw, err := dec.%s()\nif err != nil {\n\treturn err\n}\n%s %s %s(raw)\n", prim.textDecode, dest, op, goType)
	case prim != nil:
		return fmt.Sprintf("val, err := dec.%s()\nif err != nil {\n\treturn err\n}\n%s %s val\n", prim.textDecode, dest, op)
	case isEnum:
		return fmt.Sprintf("name, err := dec.DecodeString()\nif err != nil {\n\treturn err\n}\nval, ok := %sFromName(name)\nif !ok {\n\treturn wire.New(wire.BadInput, \"unknown %s name %%q\", name)\n}\n%s %s val\n", goType, goType, dest, op)
	default:
		return fmt.Sprintf("var tmp %s\nif err := tmp.DecodeText(dec); err != nil {\n\treturn err\n}\n%s %s tmp\n", goType, dest, op)
	}
}

func textDecodeAppend(prim *primInfo, isEnum bool, elemType, sliceExpr string) string {
	switch {
	case prim != nil && prim.textCast != "":
		return fmt.Sprintf("raw, err := dec.%s()\nif err != nil {\n\treturn err\n}\n%s = append(%s, %s(raw))\n", prim.textDecode, sliceExpr, sliceExpr, elemType)
	case prim != nil:
		return fmt.Sprintf("item, err := dec.%s()\nif err != nil {\n\treturn err\n}\n%s = append(%s, item)\n", prim.textDecode, sliceExpr, sliceExpr)
	case isEnum:
		return fmt.Sprintf("name, err := dec.DecodeString()\nif err != nil {\n\treturn err\n}\nitem, ok := %sFromName(name)\nif !ok {\n\treturn wire.New(wire.BadInput, \"unknown %s name %%q\", name)\n}\n%s = append(%s, item)\n", elemType, elemType, sliceExpr, sliceExpr)
	default:
		return fmt.Sprintf("var item %s\nif err := item.DecodeText(dec); err != nil {\n\treturn err\n}\n%s = append(%s, item)\n", elemType, sliceExpr, sliceExpr)
	}
}

// --- union textual helpers --------------------------------------------------

func writeUnionTextHelpers(b *strings.Builder, rm recordModel, fm fieldModel) {
	fmt.Fprintf(b, "func (v *%s) encode%sText(enc *text.Encoder) error {\n", rm.GoName, fm.GoName)
	b.WriteString("\tenc.BeginObject()\n\tenc.ObjectKey(\"tag\")\n")
	fmt.Fprintf(b, "\tenc.EncodeString(v.%s.Variant.Tag())\n", fm.GoName)
	b.WriteString("\tenc.ObjectSep()\n\tenc.ObjectKey(\"value\")\n")
	fmt.Fprintf(b, "\tswitch v.%s.Variant {\n", fm.GoName)
	for _, vr := range fm.Variants {
		fmt.Fprintf(b, "\tcase %s%s:\n", fm.UnionGoName, vr.GoField)
		fmt.Fprintf(b, "\t\tif v.%s.%s == nil {\n\t\t\treturn wire.New(wire.BadType, \"union %s.%s variant %s is unset\")\n\t\t}\n", fm.GoName, vr.GoField, rm.GoName, fm.GoName, vr.Tag)
		b.WriteString("\t\t" + textEncodeStmt(vr.Prim, vr.IsEnum, fmt.Sprintf("(*v.%s.%s)", fm.GoName, vr.GoField)) + "\n")
	}
	fmt.Fprintf(b, "\tdefault:\n\t\treturn wire.New(wire.BadType, \"unknown union %s.%s variant %%d\", v.%s.Variant)\n", rm.GoName, fm.GoName, fm.GoName)
	b.WriteString("\t}\n\tenc.EndObject()\n\treturn nil\n}\n\n")

	variantType := fm.UnionGoName + "Variant"
	fmt.Fprintf(b, "func (v *%s) decode%sText(dec *text.Decoder) error {\n", rm.GoName, fm.GoName)
	b.WriteString("\tif _, err := dec.BeginObject(); err != nil {\n\t\treturn err\n\t}\n")
	b.WriteString("\tkey, err := dec.ObjectKey()\n\tif err != nil {\n\t\treturn err\n\t}\n")
	b.WriteString("\tif key != \"tag\" {\n\t\treturn wire.New(wire.BadInput, \"expected \\\"tag\\\" key, got %q\", key)\n\t}\n")
	b.WriteString("\ttagStr, err := dec.DecodeString()\n\tif err != nil {\n\t\treturn err\n\t}\n")
	fmt.Fprintf(b, "\tvariant, ok := %sFromTag(tagStr)\n\tif !ok {\n\t\treturn wire.New(wire.BadInput, \"unknown variant %%q\", tagStr)\n\t}\n", fm.UnionGoName)
	b.WriteString("\tif _, err := dec.ObjectSep(); err != nil {\n\t\treturn err\n\t}\n")
	b.WriteString("\tkey, err = dec.ObjectKey()\n\tif err != nil {\n\t\treturn err\n\t}\n")
	b.WriteString("\tif key != \"value\" {\n\t\treturn wire.New(wire.BadInput, \"expected \\\"value\\\" key, got %q\", key)\n\t}\n")
	fmt.Fprintf(b, "\tv.%s = %s{Variant: variant}\n", fm.GoName, fm.UnionGoName)
	b.WriteString("\tswitch variant {\n")
	for _, vr := range fm.Variants {
		fmt.Fprintf(b, "\tcase %s%s:\n", fm.UnionGoName, vr.GoField)
		b.WriteString(indentLines(textDecodeAssignPtr(vr, fm.GoName, vr.GoField), "\t\t"))
	}
	fmt.Fprintf(b, "\tdefault:\n\t\treturn wire.New(wire.BadInput, \"unknown union %s.%s variant %s(%%d)\", variant)\n", rm.GoName, fm.GoName, variantType)
	b.WriteString("\t}\n\tif _, err := dec.ObjectSep(); err != nil {\n\t\treturn err\n\t}\n\treturn nil\n}\n\n")
}

func textDecodeAssignPtr(vr variantModel, unionField, goField string) string {
	switch {
	case vr.Prim != nil && vr.Prim.textCast != "":
		return fmt.Sprintf("raw, err := dec.%s()\nif err != nil {\n\treturn err\n}\nval := %s(raw)\nv.%s.%s = &val\n", vr.Prim.textDecode, vr.GoType, unionField, goField)
	case vr.Prim != nil:
		return fmt.Sprintf("val, err := dec.%s()\nif err != nil {\n\treturn err\n}\nv.%s.%s = &val\n", vr.Prim.textDecode, unionField, goField)
	case vr.IsEnum:
		return fmt.Sprintf("name, err := dec.DecodeString()\nif err != nil {\n\treturn err\n}\nval, ok := %sFromName(name)\nif !ok {\n\treturn wire.New(wire.BadInput, \"unknown %s name %%q\", name)\n}\nv.%s.%s = &val\n", vr.GoType, vr.GoType, unionField, goField)
	default:
		return fmt.Sprintf("val := &%s{}\nif err := val.DecodeText(dec); err != nil {\n\treturn err\n}\nv.%s.%s = val\n", vr.GoType, unionField, goField)
	}
}
