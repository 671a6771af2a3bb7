package binary

import (
	"testing"

	"github.com/kungfusheep/serializer/cursor"
)

// TestVLQCanonicality covers spec.md 8 property 3: encode_vlq(n) for the
// boundary values emits 1, 2, 2, 3, 3, 4, 4 bytes respectively.
func TestVLQCanonicality(t *testing.T) {
	cases := []struct {
		n     uint32
		width int
	}{
		{0x3F, 1},
		{0x40, 2},
		{0x3FFF, 2},
		{0x4000, 3},
		{0x3FFFFF, 3},
		{0x400000, 4},
		{0x3FFFFFFF, 4},
	}

	for _, c := range cases {
		out := cursor.NewGrowable(4)
		if err := EncodeVLQ(out, c.n); err != nil {
			t.Fatalf("encode %#x: %v", c.n, err)
		}
		if got := len(out.Bytes()); got != c.width {
			t.Errorf("encode %#x: got %d bytes, want %d", c.n, got, c.width)
		}
	}
}

func TestVLQRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0x3F, 0x40, 0x3FFF, 0x4000, 0x3FFFFF, 0x400000, 0x3FFFFFFF}

	for _, v := range values {
		out := cursor.NewGrowable(4)
		if err := EncodeVLQ(out, v); err != nil {
			t.Fatalf("encode %d: %v", v, err)
		}
		in := cursor.NewInput(out.Bytes())
		got, err := DecodeVLQ(in)
		if err != nil {
			t.Fatalf("decode %d: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
		if !in.AtEnd() {
			t.Errorf("round trip %d: cursor not fully consumed", v)
		}
	}
}

func TestVLQOverflow(t *testing.T) {
	out := cursor.NewGrowable(4)
	if err := EncodeVLQ(out, MaxVLQ+1); err == nil {
		t.Fatal("expected error encoding value above MaxVLQ")
	}
}

func FuzzVLQRoundTrip(f *testing.F) {
	f.Add(uint32(0))
	f.Add(uint32(0x3F))
	f.Add(uint32(MaxVLQ))

	f.Fuzz(func(t *testing.T, n uint32) {
		if n > MaxVLQ {
			n = n % (MaxVLQ + 1)
		}
		out := cursor.NewGrowable(4)
		if err := EncodeVLQ(out, n); err != nil {
			t.Fatalf("encode %d: %v", n, err)
		}
		in := cursor.NewInput(out.Bytes())
		got, err := DecodeVLQ(in)
		if err != nil {
			t.Fatalf("decode %d: %v", n, err)
		}
		if got != n {
			t.Fatalf("round trip mismatch: got %d want %d", got, n)
		}
	})
}
