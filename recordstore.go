// recordstore.go -- component B: holds values in insertion order
//
// Ported from the data half of NetBSD's cdbw_put_data()/cdbw_open(), in
// the teacher's style of owning and copying caller bytes rather than
// retaining slices the caller might mutate later.
//
// (c) 2024 the go-nbcdb authors
//
// License GPLv2

package nbcdb

// maxDataCounter is the largest data_counter the format can carry while
// keeping `entries = keys + ceil(keys/4)` inside 32 bits with slack.
const maxDataCounter = 0xCCCCCCCC

// recordStore holds record bytes in insertion order. Index 0..len-1 is the
// "data index" handed back to callers and later embedded in the g-table's
// assignment arithmetic.
type recordStore struct {
	recs []([]byte)
	size uint64 // running data_size; must never exceed 0xFFFFFFFF
}

func newRecordStore() *recordStore {
	return &recordStore{
		recs: make([][]byte, 0, 256),
	}
}

// add copies b into store-owned storage and returns its data index.
func (rs *recordStore) add(b []byte) (uint32, error) {
	if uint64(len(rs.recs)) >= maxDataCounter {
		return 0, ErrTooManyRecords
	}

	newSize := rs.size + uint64(len(b))
	if newSize > 0xFFFFFFFF {
		return 0, ErrDataTooLarge
	}

	cp := make([]byte, len(b))
	copy(cp, b)

	idx := uint32(len(rs.recs))
	rs.recs = append(rs.recs, cp)
	rs.size = newSize
	return idx, nil
}

// removeLast undoes the most recent add(); used only to unwind a combined
// Put() when the companion PutKey() fails.
func (rs *recordStore) removeLast() {
	n := len(rs.recs)
	if n == 0 {
		return
	}

	last := rs.recs[n-1]
	rs.size -= uint64(len(last))
	rs.recs = rs.recs[:n-1]
}

// count returns data_counter: the number of resident records.
func (rs *recordStore) count() uint32 {
	return uint32(len(rs.recs))
}

// dataSize returns the running sum of all record lengths (data_size).
func (rs *recordStore) dataSize() uint64 {
	return rs.size
}

// at returns the bytes for data index i.
func (rs *recordStore) at(i uint32) []byte {
	return rs.recs[i]
}
