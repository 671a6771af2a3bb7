package idl

import "github.com/kungfusheep/serializer/wire"

// Primitives is the fixed primitive-type table recognized by the
// resolver (spec.md 6).
var Primitives = map[string]bool{
	"char": true, "bool": true,
	"int8": true, "int16": true, "int32": true, "int64": true,
	"uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float": true, "double": true,
	"string": true,
}

type symbol struct {
	record *Record
	enum   *Enum
}

// resolve performs the two-step resolution pass of spec.md 4.5:
// collecting a fully-qualified-name table, then resolving every
// TypeRef and Parent by walking each reference's namespace chain
// outward.
func resolve(schema *Schema) error {
	table := map[string]symbol{}
	collect(schema.Root, table)

	var walk func(ns *Namespace) error
	walk = func(ns *Namespace) error {
		for _, stmt := range ns.Children {
			switch s := stmt.(type) {
			case *Namespace:
				if err := walk(s); err != nil {
					return err
				}
			case *Record:
				for _, parent := range s.Parents {
					if err := resolveParent(parent, table); err != nil {
						return err
					}
				}
				for _, m := range s.Members {
					for _, ref := range m.Types {
						if err := resolveTypeRef(ref, table); err != nil {
							return err
						}
					}
					if m.Modifier == Mapping && !Primitives[m.KeyType] {
						return wire.New(wire.BadMemberType, "mapping key type %q is not a primitive", m.KeyType)
					}
				}
			case *Enum:
				// enums have no references to resolve
			}
		}
		return nil
	}

	return walk(schema.Root)
}

// collect walks the tree once, registering every Record and Enum's
// fully-qualified name into table.
func collect(ns *Namespace, table map[string]symbol) {
	for _, stmt := range ns.Children {
		switch s := stmt.(type) {
		case *Namespace:
			collect(s, table)
		case *Record:
			table[qualify(ns, s.Name)] = symbol{record: s}
		case *Enum:
			table[qualify(ns, s.Name)] = symbol{enum: s}
		}
	}
}

func qualify(ns *Namespace, name string) string {
	prefix := ns.QualifiedName()
	if prefix == "" {
		return name
	}
	return prefix + "::" + name
}

// lookupOutward walks the namespace chain from declared outward to the
// root, returning the first symbol whose "<chain>::name" qualifies,
// along with the namespace level at which it matched.
func lookupOutward(declared *Namespace, name string, table map[string]symbol) (symbol, *Namespace, bool) {
	for ns := declared; ; ns = ns.Parent {
		candidate := name
		if prefix := ns.QualifiedName(); prefix != "" {
			candidate = prefix + "::" + name
		}
		if sym, ok := table[candidate]; ok {
			return sym, ns, true
		}
		if ns.Parent == nil {
			return symbol{}, nil, false
		}
	}
}

func resolveTypeRef(ref *TypeRef, table map[string]symbol) error {
	if sym, matchedNS, ok := lookupOutward(ref.DeclaredNS, ref.Name, table); ok {
		ref.ResolvedNS = matchedNS
		if sym.record != nil {
			ref.Kind = RecordKind
			ref.ResolvedRec = sym.record
		} else {
			ref.Kind = EnumKind
			ref.ResolvedEnm = sym.enum
		}
		return nil
	}
	if Primitives[ref.Name] {
		ref.Kind = Primitive
		return nil
	}
	return wire.New(wire.BadMemberType, "unresolved type %q", ref.Name)
}

func resolveParent(parent *Parent, table map[string]symbol) error {
	declared := parent.declaredNS
	if sym, _, ok := lookupOutward(declared, parent.RefName, table); ok && sym.record != nil {
		parent.Resolved = sym.record
		return nil
	}
	return wire.New(wire.BadClass, "unresolved parent %q", parent.RefName)
}
