package wire

import "encoding/binary"

// ToBig converts a fixed-width scalar's raw bytes from host order to
// big-endian wire order. On a big-endian host this is a no-op copy.
func ToBig16(x uint16) [2]byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], x)
	return b
}

func FromBig16(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

func ToBig32(x uint32) [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], x)
	return b
}

func FromBig32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

func ToBig64(x uint64) [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], x)
	return b
}

func FromBig64(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
