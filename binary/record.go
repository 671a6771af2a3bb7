package binary

import (
	"github.com/kungfusheep/serializer/cursor"
	"github.com/kungfusheep/serializer/wire"
)

// Encoder writes a single record stream in one fixed KeyMode. Generated
// record Encode methods hold one of these per codec instance and call
// Field/UnionField before writing each member's value with the scalar
// writers in this package, then EndRecord once all members are written.
type Encoder struct {
	Mode KeyMode
	Out  Output
}

func NewEncoder(mode KeyMode, out Output) *Encoder {
	return &Encoder{Mode: mode, Out: out}
}

// Field writes the wire tag preceding a scalar/sequence/mapping member.
// Under KeyNone it writes nothing: members are positional.
func (e *Encoder) Field(id uint32, name string) error {
	switch e.Mode {
	case KeyInteger:
		return EncodeVLQ(e.Out, id)
	case KeyString:
		return WriteString(e.Out, name)
	default:
		return nil
	}
}

// EndRecord writes the record terminator for Integer/String modes
// (VLQ(0), or the encoded empty string respectively). None mode has no
// terminator; the consumer already knows the schema.
func (e *Encoder) EndRecord() error {
	switch e.Mode {
	case KeyInteger:
		return EncodeVLQ(e.Out, 0)
	case KeyString:
		return WriteString(e.Out, "")
	default:
		return nil
	}
}

// UnionField writes a union member's tag and active-variant discriminator.
// displayName and variantTag compose the String-mode key "<display>:<tag>";
// id is the member's assigned id for Integer mode; variantIndex is the
// ordinal of the active variant, written for Integer and None modes.
func (e *Encoder) UnionField(id uint32, displayName string, variantIndex uint32, variantTag string) error {
	switch e.Mode {
	case KeyInteger:
		if err := EncodeVLQ(e.Out, id); err != nil {
			return err
		}
		return EncodeVLQ(e.Out, variantIndex)
	case KeyString:
		return WriteString(e.Out, displayName+":"+variantTag)
	default:
		return EncodeVLQ(e.Out, variantIndex)
	}
}

// Decoder reads a single record stream in one fixed KeyMode.
type Decoder struct {
	Mode KeyMode
	In   *cursor.Input
}

func NewDecoder(mode KeyMode, in *cursor.Input) *Decoder {
	return &Decoder{Mode: mode, In: in}
}

// NextTag reads the next member tag for Integer or String key mode,
// reporting whether it was the record terminator. Callers in KeyNone
// mode never call this: members are decoded positionally instead.
func (d *Decoder) NextTag() (id uint32, name string, terminator bool, err error) {
	switch d.Mode {
	case KeyInteger:
		id, err = DecodeVLQ(d.In)
		if err != nil {
			return 0, "", false, err
		}
		return id, "", id == 0, nil
	case KeyString:
		name, err = ReadString(d.In)
		if err != nil {
			return 0, "", false, err
		}
		return 0, name, name == "", nil
	default:
		return 0, "", false, wire.New(wire.BadInput, "NextTag called in None key mode")
	}
}

// ReadVariantIndex reads the VLQ-encoded active-variant discriminator
// that follows a union member's tag under Integer and None key modes.
func (d *Decoder) ReadVariantIndex() (uint32, error) {
	return DecodeVLQ(d.In)
}

// TagIs reports whether the tag just read from NextTag names the member
// identified by wantID (Integer mode) or wantName (String mode).
// Generated Decode methods use this to dispatch on a single NextTag call
// regardless of which key mode the decoder was constructed with.
func (d *Decoder) TagIs(id uint32, name string, wantID uint32, wantName string) bool {
	switch d.Mode {
	case KeyInteger:
		return id == wantID
	case KeyString:
		return name == wantName
	default:
		return false
	}
}
