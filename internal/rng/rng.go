// Package rng provides the random outcome generator used by the resolvers.
//
// All non-determinism in the engine flows through a single Source so tests can
// substitute a fixed sequence and assert exact outcomes.
package rng

import (
	"math/rand/v2"
	"sync"
)

// Source is the randomness provider for the resolution engine.
//
// Implementations must be safe for concurrent use.
type Source interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// IntN returns a non-negative value in [0, n). Panics if n <= 0.
	IntN(n int) int
}

// New returns the default Source backed by math/rand/v2 with a process-unique
// seed. The v2 top-level functions are already concurrency-safe; the wrapper
// exists only so callers depend on the Source interface.
func New() Source {
	return defaultSource{}
}

type defaultSource struct{}

func (defaultSource) Float64() float64 { return rand.Float64() }
func (defaultSource) IntN(n int) int   { return rand.IntN(n) }

// NewSeeded returns a Source with a deterministic seed, useful for
// reproducible simulations.
func NewSeeded(seed uint64) Source {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed))}
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// Between returns an integer in [min, max) drawn from src
func Between(src Source, min, max int) int {
	return min + src.IntN(max-min)
}

// Chance returns true with probability p in [0,1]
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Pick returns a uniformly drawn element of items. Panics on an empty slice,
// matching IntN semantics.
func Pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}
