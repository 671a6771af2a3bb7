package binary

// KeyMode selects how a record's members are tagged on the wire
// (spec.md 4.4). It is fixed per Encoder or Decoder instance. Generated
// EncodeBinary/DecodeBinary methods take it as a runtime parameter and
// branch on it through Encoder/Decoder; no per-mode copy of a method is
// generated.
type KeyMode int

const (
	// KeyNone emits members in declared order with no tag and no
	// terminator; the consumer must know the schema exactly.
	KeyNone KeyMode = iota
	// KeyInteger tags each member with VLQ(member id); id 0 is reserved
	// for the record terminator.
	KeyInteger
	// KeyString tags each member with its string key; the empty string
	// is reserved for the record terminator.
	KeyString
)

func (m KeyMode) String() string {
	switch m {
	case KeyNone:
		return "None"
	case KeyInteger:
		return "Integer"
	case KeyString:
		return "String"
	default:
		return "Unknown"
	}
}
