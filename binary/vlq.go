package binary

import (
	"github.com/kungfusheep/serializer/cursor"
	"github.com/kungfusheep/serializer/wire"
)

// MaxVLQ is the largest value representable by the 4-byte VLQ form (2^30-1).
const MaxVLQ = 0x3FFFFFFF

// Output is satisfied by cursor.Fixed and cursor.Growable.
type Output interface {
	Write([]byte) error
}

// EncodeVLQ writes n using the shortest of the four VLQ widths (spec.md
// 4.4): the top two bits of byte 0 select width, remaining bits are
// payload, big-endian. Values above MaxVLQ are a programmer error.
func EncodeVLQ(out Output, n uint32) error {
	switch {
	case n <= 0x3F:
		return out.Write([]byte{byte(n)})
	case n <= 0x3FFF:
		return out.Write([]byte{
			0x40 | byte(n>>8),
			byte(n),
		})
	case n <= 0x3FFFFF:
		return out.Write([]byte{
			0x80 | byte(n>>16),
			byte(n >> 8),
			byte(n),
		})
	case n <= MaxVLQ:
		return out.Write([]byte{
			0xC0 | byte(n>>24),
			byte(n >> 16),
			byte(n >> 8),
			byte(n),
		})
	default:
		return wire.New(wire.BadType, "vlq value %d exceeds maximum %d", n, MaxVLQ)
	}
}

// vlqWidths maps the top two bits of byte 0 to the total encoded width.
var vlqWidths = [4]int{1, 2, 3, 4}

// DecodeVLQ reads a VLQ from in. The decoder trusts whatever width the
// prefix bits indicate; it does not require canonical encodings (spec.md
// 4.4: "non-canonical forms decode successfully").
func DecodeVLQ(in *cursor.Input) (uint32, error) {
	first, err := in.Peek()
	if err != nil {
		return 0, err
	}

	width := vlqWidths[first>>6]
	raw, err := in.Take(width)
	if err != nil {
		return 0, err
	}

	n := uint32(raw[0]&0x3F) << uint(8*(width-1))
	for i := 1; i < width; i++ {
		n |= uint32(raw[i]) << uint(8*(width-1-i))
	}
	return n, nil
}
