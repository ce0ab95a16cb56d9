// writer.go -- components F (serializer) and G (driver): build the
// hypergraph under a retry-on-seed loop, assign the g-table, and stream
// the bit-exact file layout to a caller-supplied sink.
//
// Modeled on the teacher's dbwriter.go (DBWriter/Freeze), but the
// on-disk format and the perfect-hash construction it drives are this
// spec's NBCDB layout rather than go-bbhash's own BBHH format.
//
// (c) 2024 the go-nbcdb authors
//
// License GPLv2

package nbcdb

import (
	"bufio"
	"encoding/binary"
	"io"
)

// directWriteThreshold is the size at or above which a value's bytes bypass
// the internal write buffer and go straight to the sink, mirroring the
// teacher's distinction between buffered small writes and direct writes
// of large payloads.
const directWriteThreshold = 64 * 1024

const (
	magicLen = 7
	descrLen = 16
	hdrLen   = 40 // magic + version + descr + 4 x uint32
)

var fileMagic = [magicLen]byte{'N', 'B', 'C', 'D', 'B', '\n', 0}

// Writer builds a single perfect-hash-indexed constant database. It is
// not safe for concurrent use: a Writer is exclusively owned by its
// caller for the whole of its lifetime (spec.md §5).
type Writer struct {
	records *recordStore
	keys    *keyStore
	frozen  bool

	// MaxAttempts, if non-zero, caps the number of seeds the retry loop
	// will try before Output() gives up and returns ErrPeelFailed. Zero
	// (the default) means unbounded retries, per spec.md §9.
	MaxAttempts int
}

// Open creates an empty Writer.
func Open() *Writer {
	return &Writer{
		records: newRecordStore(),
		keys:    newKeyStore(),
	}
}

// TotalRecords returns the number of records added so far (data_counter).
func (w *Writer) TotalRecords() int {
	return int(w.records.count())
}

// TotalKeys returns the number of distinct keys added so far.
func (w *Writer) TotalKeys() int {
	return int(w.keys.size())
}

// PutData appends a value record and returns its data index.
func (w *Writer) PutData(b []byte) (uint32, error) {
	if w.frozen {
		return 0, ErrFrozen
	}
	return w.records.add(b)
}

// PutKey binds key bytes to an existing record index idx.
func (w *Writer) PutKey(key []byte, idx uint32) error {
	if w.frozen {
		return ErrFrozen
	}
	return w.keys.add(key, idx, w.records.count())
}

// Put is the composite put_data + put_key operation: it appends a value
// record and immediately binds key to it. If the key step fails, the
// just-added record is rolled back so data_counter and data_size are
// left exactly as they were before the call.
func (w *Writer) Put(key, val []byte) error {
	if w.frozen {
		return ErrFrozen
	}

	idx, err := w.records.add(val)
	if err != nil {
		return err
	}

	if err := w.keys.add(key, idx, w.records.count()); err != nil {
		w.records.removeLast()
		return err
	}
	return nil
}

// Close releases the Writer's memory. After Close, the Writer must not
// be used again.
func (w *Writer) Close() {
	w.records = nil
	w.keys = nil
}

// Output builds the minimal perfect hash (retrying seeds as needed),
// assigns the g-table, and serializes the whole database to sink. descr
// is truncated or zero-padded to 16 bytes. If seeder is nil, a
// cryptographically random seeder is used.
func (w *Writer) Output(sink io.Writer, descr string, seeder Seeder) error {
	if w.frozen {
		return ErrFrozen
	}

	dataCounter := w.records.count()
	keyCount := w.keys.size()

	var entries, seed uint32
	var gTable []uint32

	if dataCounter == 0 || keyCount == 0 {
		entries = 0
		seed = 0
	} else {
		entries = computeEntries(keyCount)

		if seeder == nil {
			seeder = NewRandomSeeder()
		}

		var hg *hypergraph
		attempts := 0
		for {
			seed = seeder.Next()
			hg = newHypergraph(keyCount, entries, dataCounter, seed)
			if hg.buildAndPeel(w.keys) {
				break
			}

			attempts++
			if w.MaxAttempts > 0 && attempts >= w.MaxAttempts {
				return ErrPeelFailed
			}
		}

		gTable = make([]uint32, entries)
		assignTable(hg, gTable)
	}

	if err := serialize(sink, descr, w.records, gTable, entries, seed); err != nil {
		return err
	}

	w.frozen = true
	return nil
}

// computeEntries returns max(10, keys + ceil(keys/4)).
func computeEntries(keys uint32) uint32 {
	e := keys + (keys+3)/4
	if e < 10 {
		e = 10
	}
	return e
}

// width returns the number of bytes needed to hold values up to n
// (exclusive upper bound doesn't apply -- n itself is the largest value
// to be represented, per spec.md §6.3).
func width(n uint32) int {
	switch {
	case n < 0x100:
		return 1
	case n < 0x10000:
		return 2
	default:
		return 4
	}
}

// serialize writes the bit-exact NBCDB layout described in spec.md §6.3.
func serialize(sink io.Writer, descr string, records *recordStore, gTable []uint32, entries, seed uint32) error {
	bw := bufio.NewWriterSize(sink, directWriteThreshold)

	dataCounter := records.count()
	dataSize := records.dataSize()

	var hdr [hdrLen]byte
	copy(hdr[:magicLen], fileMagic[:])
	hdr[magicLen] = 1 // version

	db := []byte(descr)
	if len(db) > descrLen {
		db = db[:descrLen]
	}
	copy(hdr[8:8+descrLen], db)

	le := binary.LittleEndian
	le.PutUint32(hdr[24:28], uint32(dataSize))
	le.PutUint32(hdr[28:32], dataCounter)
	le.PutUint32(hdr[32:36], entries)
	le.PutUint32(hdr[36:40], seed)

	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}

	wG := width(entries)
	wO := width(uint32(dataSize))

	var tmp [4]byte
	for _, v := range gTable {
		le.PutUint32(tmp[:], v)
		if _, err := bw.Write(tmp[:wG]); err != nil {
			return err
		}
	}

	raw := uint64(entries) * uint64(wG)
	if rem := raw % uint64(wO); rem != 0 {
		pad := uint64(wO) - rem
		var z [4]byte
		if _, err := bw.Write(z[:pad]); err != nil {
			return err
		}
	}

	var off uint64
	for i := uint32(0); i < dataCounter; i++ {
		le.PutUint32(tmp[:], uint32(off))
		if _, err := bw.Write(tmp[:wO]); err != nil {
			return err
		}
		off += uint64(len(records.at(i)))
	}
	le.PutUint32(tmp[:], uint32(off))
	if _, err := bw.Write(tmp[:wO]); err != nil {
		return err
	}

	for i := uint32(0); i < dataCounter; i++ {
		val := records.at(i)
		if len(val) >= directWriteThreshold {
			if err := bw.Flush(); err != nil {
				return err
			}
			if _, err := sink.Write(val); err != nil {
				return err
			}
			continue
		}
		if _, err := bw.Write(val); err != nil {
			return err
		}
	}

	return bw.Flush()
}
