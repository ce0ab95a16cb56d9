// bitvector_test.go -- test suite for bitVector

package nbcdb

import "testing"

func TestBitVectorSetIsSet(t *testing.T) {
	assert := newAsserter(t)

	bv := newBitVector(100)
	for i := uint32(0); i < 100; i++ {
		if i&1 == 1 {
			bv.Set(i)
		}
	}

	for i := uint32(0); i < 100; i++ {
		if i&1 == 1 {
			assert(bv.IsSet(i), "%d not set", i)
		} else {
			assert(!bv.IsSet(i), "%d is set", i)
		}
	}
}

func TestBitVectorSmallSize(t *testing.T) {
	assert := newAsserter(t)

	bv := newBitVector(1)
	bv.Set(0)
	assert(bv.IsSet(0), "bit 0 not set")
}
