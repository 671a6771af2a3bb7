// Package idl implements the hand-written recursive-descent parser and
// resolver for the schema interface-definition language of spec.md 4.5,
// producing the resolved tree described in spec.md 3 that codegen walks.
package idl

// Access is a member or parent's visibility qualifier.
type Access int

const (
	Public Access = iota
	Protected
	Private
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "unknown"
	}
}

// Modifier distinguishes how a member's declared type(s) combine.
type Modifier int

const (
	Scalar Modifier = iota
	Sequence
	Mapping
	Union
)

// Kind classifies what a TypeRef resolved to.
type Kind int

const (
	Unresolved Kind = iota
	Primitive
	RecordKind
	EnumKind
)

// TypeRef is a reference to a type, either a primitive name or a name
// that must resolve to a Record or Enum reachable from DeclaredNS.
type TypeRef struct {
	Name        string // possibly qualified with ::
	Tag         string // symbolic tag, only meaningful for union variants
	DeclaredNS  *Namespace
	ResolvedNS  *Namespace
	Kind        Kind
	ResolvedRec *Record // set when Kind == RecordKind
	ResolvedEnm *Enum   // set when Kind == EnumKind
}

// Member is a single field declaration inside a Record.
type Member struct {
	Access   Access
	Modifier Modifier
	Types    []*TypeRef // >1 only for Modifier == Union
	Name     string
	ID       uint32
	KeyType  string // only set when Modifier == Mapping
	Default  string // optional default-value literal, raw text
	Display  string // defaults to Name
}

// Parent is a base-record reference with its own assigned wire id.
type Parent struct {
	RefName    string
	Access     Access
	ID         uint32
	Resolved   *Record
	declaredNS *Namespace
}

// Record is a `class` declaration: an attribute set, ordered parents,
// and ordered members.
type Record struct {
	Name    string
	NS      *Namespace
	Packed  bool
	Parents []*Parent
	Members []*Member
}

// Enum is an `enum` declaration: an ordered list of symbolic names,
// ordinal by position.
type Enum struct {
	Name    string
	NS      *Namespace
	Symbols []string
}

// Statement is implemented by *Namespace, *Record, and *Enum: anything
// that can appear in a StmtList.
type Statement interface {
	statementName() string
}

func (n *Namespace) statementName() string { return n.Name }
func (r *Record) statementName() string    { return r.Name }
func (e *Enum) statementName() string      { return e.Name }

// Namespace is a named (or, for the root, unnamed) scope containing
// child statements.
type Namespace struct {
	Name     string
	Parent   *Namespace
	Children []Statement
}

// Schema is the complete resolved output of parsing one schema source
// rooted at an implicit unnamed namespace.
type Schema struct {
	Root *Namespace
}

// QualifiedName returns the fully qualified "a::b::c" name of ns, or ""
// for the root namespace.
func (ns *Namespace) QualifiedName() string {
	if ns == nil || ns.Name == "" {
		return ""
	}
	if ns.Parent == nil || ns.Parent.Name == "" {
		return ns.Name
	}
	return ns.Parent.QualifiedName() + "::" + ns.Name
}
