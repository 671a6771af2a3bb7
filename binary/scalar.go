package binary

import (
	"math"

	"github.com/kungfusheep/serializer/cursor"
	"github.com/kungfusheep/serializer/wire"
)

// This file implements the scalar read/write primitives of spec.md 4.4:
// bool and char are 1 raw byte, integers are W raw bytes big-endian,
// floats are the IEEE-754 bit pattern big-endian, strings are
// VLQ(length) + raw bytes.

func WriteBool(out Output, v bool) error {
	if v {
		return out.Write([]byte{1})
	}
	return out.Write([]byte{0})
}

func ReadBool(in *cursor.Input) (bool, error) {
	b, err := in.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func WriteChar(out Output, v byte) error {
	return out.Write([]byte{v})
}

func ReadChar(in *cursor.Input) (byte, error) {
	return in.ReadByte()
}

func WriteInt8(out Output, v int8) error  { return out.Write([]byte{byte(v)}) }
func WriteUint8(out Output, v uint8) error { return out.Write([]byte{v}) }

func ReadInt8(in *cursor.Input) (int8, error) {
	b, err := in.ReadByte()
	return int8(b), err
}

func ReadUint8(in *cursor.Input) (uint8, error) {
	return in.ReadByte()
}

func WriteInt16(out Output, v int16) error   { return writeBig(out, 2, uint64(uint16(v))) }
func WriteUint16(out Output, v uint16) error { return writeBig(out, 2, uint64(v)) }
func WriteInt32(out Output, v int32) error   { return writeBig(out, 4, uint64(uint32(v))) }
func WriteUint32(out Output, v uint32) error { return writeBig(out, 4, uint64(v)) }
func WriteInt64(out Output, v int64) error   { return writeBig(out, 8, uint64(v)) }
func WriteUint64(out Output, v uint64) error { return writeBig(out, 8, v) }

func ReadInt16(in *cursor.Input) (int16, error) {
	v, err := readBig(in, 2)
	return int16(uint16(v)), err
}

func ReadUint16(in *cursor.Input) (uint16, error) {
	v, err := readBig(in, 2)
	return uint16(v), err
}

func ReadInt32(in *cursor.Input) (int32, error) {
	v, err := readBig(in, 4)
	return int32(uint32(v)), err
}

func ReadUint32(in *cursor.Input) (uint32, error) {
	v, err := readBig(in, 4)
	return uint32(v), err
}

func ReadInt64(in *cursor.Input) (int64, error) {
	v, err := readBig(in, 8)
	return int64(v), err
}

func ReadUint64(in *cursor.Input) (uint64, error) {
	return readBig(in, 8)
}

func WriteFloat32(out Output, v float32) error {
	return writeBig(out, 4, uint64(math.Float32bits(v)))
}

func ReadFloat32(in *cursor.Input) (float32, error) {
	v, err := readBig(in, 4)
	return math.Float32frombits(uint32(v)), err
}

func WriteFloat64(out Output, v float64) error {
	return writeBig(out, 8, math.Float64bits(v))
}

func ReadFloat64(in *cursor.Input) (float64, error) {
	v, err := readBig(in, 8)
	return math.Float64frombits(v), err
}

func WriteString(out Output, v string) error {
	if err := EncodeVLQ(out, uint32(len(v))); err != nil {
		return err
	}
	return out.Write([]byte(v))
}

func ReadString(in *cursor.Input) (string, error) {
	n, err := DecodeVLQ(in)
	if err != nil {
		return "", err
	}
	if int(n) > in.Remaining() {
		return "", wire.New(wire.BadInput, "string length %d exceeds %d remaining bytes", n, in.Remaining())
	}
	b, err := in.Take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteEnum encodes an enumeration's ordinal as a VLQ.
func WriteEnum(out Output, ordinal uint32) error {
	return EncodeVLQ(out, ordinal)
}

func ReadEnum(in *cursor.Input) (uint32, error) {
	return DecodeVLQ(in)
}

// WriteSeqHeader / WriteMapHeader write the VLQ(count) prefix shared by
// sequences and mappings.
func WriteSeqHeader(out Output, count int) error { return EncodeVLQ(out, uint32(count)) }
func ReadSeqHeader(in *cursor.Input) (int, error) {
	n, err := DecodeVLQ(in)
	return int(n), err
}

func WriteMapHeader(out Output, count int) error { return EncodeVLQ(out, uint32(count)) }
func ReadMapHeader(in *cursor.Input) (int, error) {
	n, err := DecodeVLQ(in)
	return int(n), err
}

// writeBig and readBig delegate the actual byte packing to the C2 endian
// helpers in package wire; width selects which fixed-size helper applies.
func writeBig(out Output, width int, v uint64) error {
	switch width {
	case 2:
		b := wire.ToBig16(uint16(v))
		return out.Write(b[:])
	case 4:
		b := wire.ToBig32(uint32(v))
		return out.Write(b[:])
	case 8:
		b := wire.ToBig64(v)
		return out.Write(b[:])
	default:
		return wire.New(wire.BadInput, "writeBig: unsupported width %d", width)
	}
}

func readBig(in *cursor.Input, width int) (uint64, error) {
	b, err := in.Take(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 2:
		return uint64(wire.FromBig16(b)), nil
	case 4:
		return uint64(wire.FromBig32(b)), nil
	case 8:
		return wire.FromBig64(b), nil
	default:
		return 0, wire.New(wire.BadInput, "readBig: unsupported width %d", width)
	}
}
