// seeder.go -- seed sources for the hypergraph-peeling retry loop
//
// (c) 2024 the go-nbcdb authors
//
// License GPLv2

package nbcdb

// Seeder produces the sequence of seeds the Driver tries while peeling the
// hypergraph. Next() must be deterministic for a stable seeder and purely
// random (or at least unpredictable) for a random one; either way it need
// not be safe for concurrent use -- a Writer owns its seeder exclusively.
type Seeder interface {
	Next() uint32
}

// stableSeeder yields 1, 2, 3, ... -- the sentinel sequence the spec calls
// out for reproducible builds.
type stableSeeder struct {
	n uint32
}

func (s *stableSeeder) Next() uint32 {
	s.n++
	return s.n
}

// NewStableSeeder returns a Seeder that yields 1, 2, 3, ... in order. Two
// Writers fed the same puts and output with a stable seeder produce
// byte-identical files.
func NewStableSeeder() Seeder {
	return &stableSeeder{}
}

// randomSeeder draws a fresh cryptographically random seed on every call.
type randomSeeder struct{}

func (randomSeeder) Next() uint32 {
	return rand32()
}

// NewRandomSeeder returns a Seeder backed by crypto/rand. This is the
// default used by Output() when the caller passes a nil Seeder.
func NewRandomSeeder() Seeder {
	return randomSeeder{}
}
