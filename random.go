package patgen

import (
	"crypto/rand"
	"io"
	"math/big"
	mathrand "math/rand/v2"
	"sync"
)

// Source supplies uniformly distributed integers in [min, max], inclusive on
// both ends. Implementations must be safe for concurrent use if the
// Generator using them is shared between goroutines.
type Source interface {
	Int(min, max int) (int, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(min, max int) (int, error)

func (f SourceFunc) Int(min, max int) (int, error) {
	return f(min, max)
}

type cryptoSource struct {
	reader io.Reader
}

// CryptoSource returns a Source reading from crypto/rand. Read failures are
// returned to the caller.
func CryptoSource() Source {
	return cryptoSource{reader: rand.Reader}
}

func (s cryptoSource) Int(min, max int) (int, error) {
	if max <= min {
		return min, nil
	}
	var span big.Int
	span.SetInt64(int64(max) - int64(min) + 1)
	n, err := rand.Int(s.reader, &span)
	if err != nil {
		return 0, err
	}
	return min + int(n.Int64()), nil
}

type seededSource struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

// NewSeededSource returns a deterministic Source. Two sources created with the
// same seed produce the same sequence.
func NewSeededSource(seed uint64) Source {
	return &seededSource{rng: mathrand.New(mathrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) Int(min, max int) (int, error) {
	if max <= min {
		return min, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + int(s.rng.Int64N(int64(max)-int64(min)+1)), nil
}
