// keystore_test.go -- test suite for keyStore

package nbcdb

import "testing"

func TestKeyStoreAddAndDedup(t *testing.T) {
	assert := newAsserter(t)

	ks := newKeyStore()
	err := ks.add([]byte("alpha"), 0, 3)
	assert(err == nil, "add failed: %s", err)
	assert(ks.size() == 1, "size mismatch: %d", ks.size())

	err = ks.add([]byte("alpha"), 1, 3)
	assert(err == ErrDuplicateKey, "expected ErrDuplicateKey, got %v", err)
	assert(ks.size() == 1, "duplicate add changed size to %d", ks.size())
}

func TestKeyStoreBadIndex(t *testing.T) {
	assert := newAsserter(t)

	ks := newKeyStore()
	err := ks.add([]byte("beta"), 5, 3)
	assert(err == ErrBadIndex, "expected ErrBadIndex, got %v", err)
}

func TestKeyStoreRehashPreservesAll(t *testing.T) {
	assert := newAsserter(t)

	ks := newKeyStore()
	words := []string{
		"expectoration", "mizzenmastman", "stockfather", "pictorialness",
		"villainous", "unquality", "sized", "Tarahumari", "endocrinotherapy",
		"quicksandy",
	}

	n := uint32(len(words)) * 200
	i := uint32(0)
	for r := 0; r < 200; r++ {
		for _, w := range words {
			key := []byte(w)
			key = append(key, byte(r), byte(r>>8))
			err := ks.add(key, i, n)
			assert(err == nil, "add(%d) failed: %s", i, err)
			i++
		}
	}

	assert(ks.size() == n, "size mismatch after many adds: exp %d, saw %d", n, ks.size())
	assert(ks.bucketCount() > initialBucketCount, "bucket count did not grow: %d", ks.bucketCount())

	seen := uint32(0)
	ks.each(func(rk *residentKey) { seen++ })
	assert(seen == n, "each() visited %d keys, want %d", seen, n)
}

func TestKeyStoreEachDeterministic(t *testing.T) {
	assert := newAsserter(t)

	ks := newKeyStore()
	for i, w := range []string{"a", "b", "c", "d", "e"} {
		err := ks.add([]byte(w), uint32(i), 5)
		assert(err == nil, "add failed: %s", err)
	}

	var first, second []string
	ks.each(func(rk *residentKey) { first = append(first, string(rk.bytes)) })
	ks.each(func(rk *residentKey) { second = append(second, string(rk.bytes)) })

	assert(len(first) == len(second), "length mismatch between two each() passes")
	for i := range first {
		assert(first[i] == second[i], "each() order not deterministic at %d: %q vs %q", i, first[i], second[i])
	}
}

func TestKeyStoreEachUntilStopsEarly(t *testing.T) {
	assert := newAsserter(t)

	ks := newKeyStore()
	for i, w := range []string{"a", "b", "c", "d", "e"} {
		err := ks.add([]byte(w), uint32(i), 5)
		assert(err == nil, "add failed: %s", err)
	}

	var visited int
	ks.eachUntil(func(rk *residentKey) bool {
		visited++
		return visited < 2
	})

	assert(visited == 2, "eachUntil visited %d keys, want exactly 2", visited)
}

func TestBytesEqual(t *testing.T) {
	assert := newAsserter(t)

	assert(bytesEqual([]byte("abc"), []byte("abc")), "identical slices reported unequal")
	assert(!bytesEqual([]byte("abc"), []byte("abd")), "differing slices reported equal")
	assert(!bytesEqual([]byte("abc"), []byte("ab")), "differing lengths reported equal")
}
