// hash.go -- the hash primitive used to place keys on the hypergraph
//
// Models NetBSD's mi_vector_hash(): a seeded function that derives three
// 32-bit words from a byte string. Our version is built from two keyed
// SipHash-2-4 invocations (github.com/dchest/siphash) instead of porting
// mi_vector_hash byte-for-byte -- acceptable because the reader side of
// this format is out of scope here (see spec's open question on hash
// substitution). Determinism and seed-mixing are what callers depend on,
// not bit-compatibility with the NetBSD original.
//
// (c) 2024 the go-nbcdb authors
//
// License GPLv2

package nbcdb

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/dchest/siphash"
	"github.com/opencoff/go-fasthash"
)

// golden ratio prime; used only to decorrelate the two siphash keys
// derived from a single 32-bit seed.
const goldenPrime64 uint64 = 0x9e3779b97f4a7c15

// VectorHash derives (h0, h1, h2) from key bytes and a seed. It is pure
// and holds no mutable state, so it is trivially safe to call from
// multiple goroutines (though this package never does).
func VectorHash(key []byte, seed uint32) (uint32, uint32, uint32) {
	s := uint64(seed)

	k0a, k1a := s, ^s
	s2 := s*goldenPrime64 + 1
	k0b, k1b := s2, ^s2

	a := siphash.Hash(k0a, k1a, key)
	b := siphash.Hash(k0b, k1b, key)

	h0 := uint32(a)
	h1 := uint32(a >> 32)
	h2 := uint32(b)
	return h0, h1, h2
}

// fastTag is a cheap 64-bit fingerprint used purely as a pre-filter ahead
// of the (keylen, triple, memcmp) duplicate check the key store performs.
// It never changes observable behaviour -- only how quickly two distinct
// keys are told apart.
func fastTag(key []byte) uint64 {
	return fasthash.Hash64(0, key)
}

// rand32 draws a cryptographically random 32-bit seed; used by the
// default (non-stable) seeder.
func rand32() uint32 {
	var b [4]byte

	n, err := rand.Read(b[:])
	if err != nil || n != 4 {
		panic("nbcdb: rand read failure")
	}
	return binary.BigEndian.Uint32(b[:])
}
