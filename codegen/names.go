package codegen

import "strings"

// exportedName converts a schema identifier (snake_case or already
// PascalCase) into an exported Go identifier, the way the teacher's own
// generator does in cmd/glint/structgenerator.go's toGoFieldName.
func exportedName(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	if b.Len() == 0 {
		return "Field"
	}
	return b.String()
}

// qualifiedGoName turns a schema namespace-qualified name ("a::b::c")
// into a single Go identifier ("ABC") suitable for a generated type
// name, since Go has no nested-namespace concept to mirror spec.md's
// namespace tree directly onto.
func qualifiedGoName(qualified string) string {
	parts := strings.Split(qualified, "::")
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(exportedName(p))
	}
	return b.String()
}
