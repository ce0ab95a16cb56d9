// errors.go -- sentinel errors for go-nbcdb
//
// (c) 2024 the go-nbcdb authors
//
// License GPLv2

package nbcdb

import "errors"

// ErrFrozen is returned when attempting to mutate a builder that has
// already been written out via Output(), or when trying to Output() a
// builder twice.
var ErrFrozen = errors.New("nbcdb: builder already frozen")

// ErrTooManyRecords is returned when adding a record would push
// data_counter past its 32-bit-safe ceiling (0xCCCCCCCC).
var ErrTooManyRecords = errors.New("nbcdb: too many records")

// ErrDataTooLarge is returned when the cumulative size of all record
// bytes would overflow a 32-bit length.
var ErrDataTooLarge = errors.New("nbcdb: cumulative record size overflows 32 bits")

// ErrTooManyKeys is returned when adding a key would push key_counter
// past its 32-bit-safe ceiling.
var ErrTooManyKeys = errors.New("nbcdb: too many keys")

// ErrBadIndex is returned when put_key references a record index that
// does not yet exist.
var ErrBadIndex = errors.New("nbcdb: key refers to out-of-range record index")

// ErrDuplicateKey is returned when a key's bytes already identify a
// resident key in the store.
var ErrDuplicateKey = errors.New("nbcdb: duplicate key")

// ErrPeelFailed is returned only if a caller-imposed attempt cap (see
// Writer.MaxAttempts) is exhausted without a successful peel. With no
// cap set, the retry loop never returns this error -- it just keeps
// trying seeds.
var ErrPeelFailed = errors.New("nbcdb: exhausted seed attempts without peeling the hypergraph")

// ErrNoKey is returned by the internal verification reader when a key
// cannot be found in a previously written database.
var ErrNoKey = errors.New("nbcdb: no such key")
