package codegen

import (
	"fmt"

	"github.com/kungfusheep/serializer/idl"
)

// enumModel is the generation-time shape of one idl.Enum.
type enumModel struct {
	GoName  string
	Symbols []string
	src     *idl.Enum
}

// parentModel is one base-record reference on a recordModel.
type parentModel struct {
	GoField string // embedded field name
	GoType  string
	ID      uint32
	Name    string
}

// fieldKind classifies how a fieldModel's value is shaped.
type fieldKind int

const (
	fieldScalar fieldKind = iota
	fieldSequence
	fieldMapping
	fieldUnion
)

// variantModel is one arm of a union field.
type variantModel struct {
	GoField string // struct field name inside the union container
	Tag     string // wire variant tag
	GoType  string // pointer element type
	Prim    *primInfo
	IsEnum  bool // GoType names a generated enum (when Prim == nil)
}

// fieldModel is the generation-time shape of one idl.Member.
type fieldModel struct {
	GoName  string
	ID      uint32
	Name    string // wire display name
	Kind    fieldKind
	GoType  string // the Go field type, fully resolved
	Prim    *primInfo
	IsEnum  bool      // GoType names a generated enum (when Prim == nil)
	KeyPrim *primInfo // Mapping key, always a primitive per the data model

	// union-only
	UnionGoName string // name of the generated discriminator enum + container type
	Variants    []variantModel
}

// recordModel is the generation-time shape of one idl.Record.
type recordModel struct {
	GoName  string
	Packed  bool
	Parents []parentModel
	Fields  []fieldModel
	src     *idl.Record
}

// model is everything Generate needs, flattened out of a resolved schema.
type model struct {
	Enums   []enumModel
	Records []recordModel
}

// buildModel walks schema's namespace tree and produces a flattened,
// dependency-ordering-agnostic model (Go doesn't need declaration order).
func buildModel(schema *idl.Schema) (*model, error) {
	m := &model{}
	if err := walkNamespace(schema.Root, m); err != nil {
		return nil, err
	}
	for i := range m.Records {
		fm, err := buildRecord(m.Records[i].src)
		if err != nil {
			return nil, err
		}
		m.Records[i] = *fm
	}
	return m, nil
}

func walkNamespace(ns *idl.Namespace, m *model) error {
	if ns == nil {
		return nil
	}
	for _, stmt := range ns.Children {
		switch s := stmt.(type) {
		case *idl.Namespace:
			if err := walkNamespace(s, m); err != nil {
				return err
			}
		case *idl.Record:
			m.Records = append(m.Records, recordModel{GoName: qualifiedName(s.NS, s.Name), src: s})
		case *idl.Enum:
			m.Enums = append(m.Enums, enumModel{GoName: qualifiedName(s.NS, s.Name), Symbols: append([]string(nil), s.Symbols...), src: s})
		}
	}
	return nil
}

func qualifiedName(ns *idl.Namespace, name string) string {
	q := ns.QualifiedName()
	if q == "" {
		return exportedName(name)
	}
	return qualifiedGoName(q) + exportedName(name)
}

// buildRecord resolves one idl.Record into its recordModel, including
// parent embeds and every member's Go type.
func buildRecord(r *idl.Record) (*recordModel, error) {
	rm := &recordModel{GoName: qualifiedName(r.NS, r.Name), Packed: r.Packed, src: r}

	for _, p := range r.Parents {
		if p.Resolved == nil {
			return nil, fmt.Errorf("unresolved parent %q on record %s", p.RefName, rm.GoName)
		}
		pm := parentModel{
			GoType: qualifiedName(p.Resolved.NS, p.Resolved.Name),
			ID:     p.ID,
			Name:   p.Resolved.Name,
		}
		pm.GoField = pm.GoType
		rm.Parents = append(rm.Parents, pm)
	}

	for _, mem := range r.Members {
		fm := fieldModel{GoName: exportedName(mem.Name), ID: mem.ID, Name: displayName(mem)}
		switch mem.Modifier {
		case idl.Scalar:
			fm.Kind = fieldScalar
			goType, prim, kind, err := resolveRefType(mem.Types[0])
			if err != nil {
				return nil, err
			}
			fm.GoType, fm.Prim, fm.IsEnum = goType, prim, kind == idl.EnumKind
		case idl.Sequence:
			fm.Kind = fieldSequence
			goType, prim, kind, err := resolveRefType(mem.Types[0])
			if err != nil {
				return nil, err
			}
			fm.GoType, fm.Prim, fm.IsEnum = "[]"+goType, prim, kind == idl.EnumKind
		case idl.Mapping:
			fm.Kind = fieldMapping
			keyInfo, ok := primitives[mem.KeyType]
			if !ok {
				return nil, fmt.Errorf("unsupported map key type %q on %s.%s", mem.KeyType, rm.GoName, mem.Name)
			}
			valType, valPrim, kind, err := resolveRefType(mem.Types[0])
			if err != nil {
				return nil, err
			}
			fm.GoType = fmt.Sprintf("map[%s]%s", keyInfo.goType, valType)
			fm.Prim, fm.IsEnum = valPrim, kind == idl.EnumKind
			fm.KeyPrim = &keyInfo
		case idl.Union:
			fm.Kind = fieldUnion
			fm.UnionGoName = rm.GoName + fm.GoName
			fm.GoType = fm.UnionGoName
			seen := map[string]bool{}
			for i, t := range mem.Types {
				goType, prim, kind, err := resolveRefType(t)
				if err != nil {
					return nil, err
				}
				vf := variantModel{Tag: t.Tag, GoType: goType, Prim: prim, IsEnum: kind == idl.EnumKind}
				vf.GoField = exportedName(t.Tag)
				if vf.GoField == "" || seen[vf.GoField] {
					vf.GoField = fmt.Sprintf("V%d", i)
				}
				seen[vf.GoField] = true
				fm.Variants = append(fm.Variants, vf)
			}
		}
		rm.Fields = append(rm.Fields, fm)
	}

	return rm, nil
}

func displayName(m *idl.Member) string {
	if m.Display != "" {
		return m.Display
	}
	return m.Name
}

// resolveRefType returns the Go type string for a TypeRef, its primInfo
// when it names a primitive (nil for record/enum references), and the
// resolved idl.Kind so callers can tell enum references from records.
func resolveRefType(t *idl.TypeRef) (string, *primInfo, idl.Kind, error) {
	switch t.Kind {
	case idl.Primitive:
		info, ok := primitives[t.Name]
		if !ok {
			return "", nil, t.Kind, fmt.Errorf("unknown primitive type %q", t.Name)
		}
		return info.goType, &info, t.Kind, nil
	case idl.RecordKind:
		if t.ResolvedRec == nil {
			return "", nil, t.Kind, fmt.Errorf("unresolved record reference %q", t.Name)
		}
		return qualifiedName(t.ResolvedRec.NS, t.ResolvedRec.Name), nil, t.Kind, nil
	case idl.EnumKind:
		if t.ResolvedEnm == nil {
			return "", nil, t.Kind, fmt.Errorf("unresolved enum reference %q", t.Name)
		}
		return qualifiedName(t.ResolvedEnm.NS, t.ResolvedEnm.Name), nil, t.Kind, nil
	default:
		return "", nil, t.Kind, fmt.Errorf("unresolved type reference %q", t.Name)
	}
}
