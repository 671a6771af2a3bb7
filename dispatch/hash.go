// Package dispatch implements the deterministic string hash used by
// generated record code to look up union variant tags (including the
// tag part of a String-key-mode union key) and enumeration names
// (spec.md 4.6). Record member keys are matched by string comparison,
// not by this hash. The same function runs at schema-compile time,
// inside codegen, to embed hash constants into generated source, and at
// runtime, inside that generated source, to hash an incoming tag or
// name — the two must always agree (spec.md 8 property 5, "hash parity").
package dispatch

// Seed is the hash's initial accumulator value.
const Seed uint64 = 100000000003

// Hash computes the deterministic, non-cryptographic digest of s:
// h starts at Seed, then for each byte b, h = ((h<<9)+h) ^ b.
func Hash(s string) uint64 {
	h := Seed
	for i := 0; i < len(s); i++ {
		h = ((h << 9) + h) ^ uint64(s[i])
	}
	return h
}
