package text

// Style controls the textual codec's whitespace output (spec.md 4.3).
// Decoding is insensitive to whitespace; Style governs Encode only.
type Style struct {
	NewlineBeforeOpenBrace  bool
	NewlineAfterOpenBrace   bool
	NewlineBeforeCloseBrace bool
	NewlineAfterCloseBrace  bool

	NewlineBeforeOpenBracket  bool
	NewlineAfterOpenBracket   bool
	NewlineBeforeCloseBracket bool
	NewlineAfterCloseBracket  bool

	SpaceAfterComma   bool
	NewlineAfterComma bool
	SpaceAfterColon   bool

	Indent string
}

// Compact emits the textual format with no incidental whitespace.
var Compact = Style{}

// Pretty emits one member/element per line with two-space indentation.
var Pretty = Style{
	NewlineAfterOpenBrace:   true,
	NewlineBeforeCloseBrace: true,
	NewlineAfterOpenBracket: true,
	NewlineBeforeCloseBracket: true,
	NewlineAfterComma:      true,
	SpaceAfterColon:        true,
	Indent:                 "  ",
}
