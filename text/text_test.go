package text

import (
	"math"
	"testing"

	"github.com/kungfusheep/serializer/cursor"
)

// TestS1 pins spec.md 8 scenario S1: {n: "Rohit", i: 322} compact-encodes
// to {"n":"Rohit","i":322} and decodes back.
func TestS1(t *testing.T) {
	enc := NewEncoder(Compact)
	enc.BeginObject()
	enc.ObjectKey("n")
	enc.EncodeString("Rohit")
	enc.ObjectSep()
	enc.ObjectKey("i")
	enc.EncodeUint64(322)
	enc.EndObject()

	want := `{"n":"Rohit","i":322}`
	if got := enc.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	dec := NewDecoder(cursor.NewInput([]byte(enc.String())))
	atEnd, err := dec.BeginObject()
	if err != nil || atEnd {
		t.Fatalf("BeginObject: %v %v", atEnd, err)
	}

	key, err := dec.ObjectKey()
	if err != nil || key != "n" {
		t.Fatalf("key: %q %v", key, err)
	}
	n, err := dec.DecodeString()
	if err != nil || n != "Rohit" {
		t.Fatalf("n: %q %v", n, err)
	}
	atEnd, err = dec.ObjectSep()
	if err != nil || atEnd {
		t.Fatalf("sep: %v %v", atEnd, err)
	}

	key, err = dec.ObjectKey()
	if err != nil || key != "i" {
		t.Fatalf("key: %q %v", key, err)
	}
	i, err := dec.DecodeUint64()
	if err != nil || i != 322 {
		t.Fatalf("i: %v %v", i, err)
	}
	atEnd, err = dec.ObjectSep()
	if err != nil || !atEnd {
		t.Fatalf("final sep: %v %v", atEnd, err)
	}
}

// TestS5Saturation pins spec.md 8 scenario S5: an over-long uint64 literal saturates
// to math.MaxUint64 instead of erroring.
func TestS5Saturation(t *testing.T) {
	dec := NewDecoder(cursor.NewInput([]byte("99999999999999999999")))
	v, err := dec.DecodeUint64()
	if err != nil {
		t.Fatal(err)
	}
	if v != math.MaxUint64 {
		t.Fatalf("got %d want %d", v, uint64(math.MaxUint64))
	}
	if !dec.in.AtEnd() {
		t.Fatal("expected cursor positioned after final digit")
	}
}

func TestSignedSaturation(t *testing.T) {
	dec := NewDecoder(cursor.NewInput([]byte("-99999999999999999999")))
	v, err := dec.DecodeInt64()
	if err != nil {
		t.Fatal(err)
	}
	if v != math.MinInt64 {
		t.Fatalf("got %d want %d", v, int64(math.MinInt64))
	}
}

func TestTrailingComma(t *testing.T) {
	dec := NewDecoder(cursor.NewInput([]byte("[1,2,]")))
	atEnd, err := dec.BeginArray()
	if err != nil || atEnd {
		t.Fatal(err)
	}
	if _, err := dec.DecodeUint64(); err != nil {
		t.Fatal(err)
	}
	if atEnd, err = dec.ArraySep(); err != nil || atEnd {
		t.Fatal(err)
	}
	if _, err := dec.DecodeUint64(); err != nil {
		t.Fatal(err)
	}
	if _, err := dec.ArraySep(); err == nil {
		t.Fatal("expected error for trailing comma")
	}
}

func TestBoolCaseInsensitive(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "True", "tRuE"} {
		dec := NewDecoder(cursor.NewInput([]byte(s)))
		v, err := dec.DecodeBool()
		if err != nil || !v {
			t.Fatalf("%q: %v %v", s, v, err)
		}
	}
}

func TestCharRequiresSingleByte(t *testing.T) {
	dec := NewDecoder(cursor.NewInput([]byte(`"ab"`)))
	if _, err := dec.DecodeChar(); err == nil {
		t.Fatal("expected error for multi-byte char literal")
	}
}

func TestPrettyRoundTripsSameAsCompact(t *testing.T) {
	build := func(style Style) string {
		e := NewEncoder(style)
		e.BeginArray()
		e.EncodeFloat64(3.5)
		e.ArraySep()
		e.EncodeFloat64(-2.0)
		e.EndArray()
		return e.String()
	}

	compact := build(Compact)
	pretty := build(Pretty)

	decodeAll := func(s string) []float64 {
		dec := NewDecoder(cursor.NewInput([]byte(s)))
		atEnd, err := dec.BeginArray()
		if err != nil {
			t.Fatal(err)
		}
		var out []float64
		for !atEnd {
			v, err := dec.DecodeFloat64()
			if err != nil {
				t.Fatal(err)
			}
			out = append(out, v)
			atEnd, err = dec.ArraySep()
			if err != nil {
				t.Fatal(err)
			}
		}
		return out
	}

	a := decodeAll(compact)
	b := decodeAll(pretty)
	if len(a) != len(b) || a[0] != b[0] || a[1] != b[1] {
		t.Fatalf("compact %v != pretty %v", a, b)
	}
}
