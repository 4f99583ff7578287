package random

import (
	"math/rand"
	"sync"

	"github.com/geognosis/orecast/internal/domain/providers"
)

// LockedSource is a mutex-guarded random source. math/rand.Rand is not safe
// for concurrent use, and services holding a source are called from
// overlapping HTTP requests.
type LockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedSource creates a locked source with the given seed.
func NewLockedSource(seed int64) providers.RandomSource {
	return &LockedSource{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (s *LockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Intn returns a pseudo-random number in [0, n).
func (s *LockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
