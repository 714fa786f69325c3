package dice

import (
	"crypto/rand"
	"math/big"
	"sync"
)

// cryptoSource implements Source using crypto/rand.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return cryptoSource{}
}

// Intn returns a uniformly distributed int in [0, n).
//
// Precondition: n > 0. Panics otherwise, or if crypto/rand fails.
func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// SequenceSource replays fixed face values (1-based) in order, wrapping around.
// It exists for deterministic tests and demos.
type SequenceSource struct {
	mu    sync.Mutex
	faces []int
	next  int
}

// NewSequenceSource returns a Source that yields the given die faces in order.
//
// Precondition: len(faces) > 0 and every face >= 1.
func NewSequenceSource(faces ...int) *SequenceSource {
	return &SequenceSource{faces: faces}
}

// Intn returns the next face minus one, clamped into [0, n).
func (s *SequenceSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	face := s.faces[s.next%len(s.faces)]
	s.next++
	v := face - 1
	if v < 0 {
		v = 0
	}
	if v >= n {
		v = n - 1
	}
	return v
}
