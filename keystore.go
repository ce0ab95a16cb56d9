// keystore.go -- component C: hash-bucketed set of keys with byte-identity
// semantics, each bound to a record index.
//
// Ported from NetBSD's cdbw_put_key()/cdbw_open() -- a bucketed chain
// table keyed on the first word of the (seed-0) hash triple, with
// power-of-two bucket counts and amortized doubling. The spec calls for
// rehash failure to be non-fatal; in Go, growing a slice never reports an
// allocation failure the way C's calloc() can, so that failure path
// collapses away naturally (documented in DESIGN.md).
//
// (c) 2024 the go-nbcdb authors
//
// License GPLv2

package nbcdb

// residentKey is one key bound to a record index, plus its cached
// seed-0 hash triple (used only for dedup bucketing) and a cheap 64-bit
// fingerprint checked before the triple/memcmp comparison.
type residentKey struct {
	bytes  []byte
	idx    uint32
	hashes [3]uint32
	tag    uint64
}

const initialBucketCount = 1024

// keyStore is a hash-bucketed set of resident keys.
type keyStore struct {
	buckets [][]*residentKey
	count   uint32
}

func newKeyStore() *keyStore {
	return &keyStore{
		buckets: make([][]*residentKey, initialBucketCount),
	}
}

func (ks *keyStore) bucketCount() uint32 {
	return uint32(len(ks.buckets))
}

func (ks *keyStore) bucketIndex(h0 uint32) uint32 {
	return h0 & (ks.bucketCount() - 1)
}

// add binds key bytes to record index idx. dataCount is the record
// store's current data_counter, used to validate idx is in range.
func (ks *keyStore) add(key []byte, idx uint32, dataCount uint32) error {
	if idx >= dataCount {
		return ErrBadIndex
	}
	if ks.count == maxDataCounter {
		return ErrTooManyKeys
	}

	h0, h1, h2 := VectorHash(key, 0)
	tag := fastTag(key)

	bi := ks.bucketIndex(h0)
	for _, rk := range ks.buckets[bi] {
		if len(rk.bytes) != len(key) {
			continue
		}
		if rk.tag != tag {
			continue
		}
		if rk.hashes[0] != h0 || rk.hashes[1] != h1 || rk.hashes[2] != h2 {
			continue
		}
		if !bytesEqual(rk.bytes, key) {
			continue
		}
		return ErrDuplicateKey
	}

	cp := make([]byte, len(key))
	copy(cp, key)

	rk := &residentKey{
		bytes:  cp,
		idx:    idx,
		hashes: [3]uint32{h0, h1, h2},
		tag:    tag,
	}
	ks.buckets[bi] = append(ks.buckets[bi], rk)
	ks.count++

	if ks.count > ks.bucketCount() {
		ks.maybeRehash()
	}
	return nil
}

// maybeRehash doubles the bucket count and redistributes resident keys by
// the first word of their cached triple. Never returns an error: Go's
// allocator either succeeds or the runtime panics (OOM), which is outside
// the scope of this store's error-reporting contract.
func (ks *keyStore) maybeRehash() {
	newCount := ks.bucketCount() * 2
	newBuckets := make([][]*residentKey, newCount)

	for _, chain := range ks.buckets {
		for _, rk := range chain {
			bi := rk.hashes[0] & (newCount - 1)
			newBuckets[bi] = append(newBuckets[bi], rk)
		}
	}
	ks.buckets = newBuckets
}

// size returns key_counter: the number of resident keys.
func (ks *keyStore) size() uint32 {
	return ks.count
}

// each calls fn once per resident key, in bucket-then-chain order. This
// order is deterministic for a given sequence of add() calls, which is
// all the determinism invariant (spec.md §8, property 5) requires.
func (ks *keyStore) each(fn func(*residentKey)) {
	for _, chain := range ks.buckets {
		for _, rk := range chain {
			fn(rk)
		}
	}
}

// eachUntil calls fn once per resident key, in the same order as each,
// stopping as soon as fn returns false. Used by the graph builder to
// abandon a failed seed attempt the moment a vertex collision is found,
// instead of scanning every remaining key.
func (ks *keyStore) eachUntil(fn func(*residentKey) bool) {
	for _, chain := range ks.buckets {
		for _, rk := range chain {
			if !fn(rk) {
				return
			}
		}
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
