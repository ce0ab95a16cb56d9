// hash_test.go -- test suite for the hash primitive

package nbcdb

import "testing"

func TestVectorHashDeterministic(t *testing.T) {
	assert := newAsserter(t)

	key := []byte("expectoration")
	a0, a1, a2 := VectorHash(key, 42)
	b0, b1, b2 := VectorHash(key, 42)

	assert(a0 == b0 && a1 == b1 && a2 == b2, "VectorHash not deterministic: (%d,%d,%d) vs (%d,%d,%d)",
		a0, a1, a2, b0, b1, b2)
}

func TestVectorHashSeedSensitive(t *testing.T) {
	assert := newAsserter(t)

	key := []byte("mizzenmastman")
	a0, a1, a2 := VectorHash(key, 1)
	b0, b1, b2 := VectorHash(key, 2)

	assert(a0 != b0 || a1 != b1 || a2 != b2, "VectorHash produced identical triples for distinct seeds")
}

func TestVectorHashKeySensitive(t *testing.T) {
	assert := newAsserter(t)

	a0, a1, a2 := VectorHash([]byte("stockfather"), 7)
	b0, b1, b2 := VectorHash([]byte("pictorialness"), 7)

	assert(a0 != b0 || a1 != b1 || a2 != b2, "VectorHash produced identical triples for distinct keys")
}

func TestFastTagConsistent(t *testing.T) {
	assert := newAsserter(t)

	k := []byte("villainous")
	a := fastTag(k)
	b := fastTag(k)
	assert(a == b, "fastTag not deterministic: %#x vs %#x", a, b)
}

func TestRand32Varies(t *testing.T) {
	assert := newAsserter(t)

	seen := make(map[uint32]bool)
	for i := 0; i < 8; i++ {
		seen[rand32()] = true
	}
	assert(len(seen) > 1, "rand32 returned the same value 8 times in a row")
}
