// Package rng provides the random sources accepted by randomized selectors.
//
// Selectors may be called from several goroutines at once by the parallel
// calculator, so every Source handed to them must be safe for concurrent use.
// Locked wraps a seeded generator behind a mutex; Global draws from the
// runtime's goroutine-safe generator.
package rng

import (
	"math/rand/v2"
	"sync"
)

// Source draws uniform integers.
// Implementations must be safe for concurrent use.
type Source interface {
	// IntN returns a uniform pseudo-random number in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// Locked encapsulates a seeded random number generator.
// It is thread-safe.
type Locked struct {
	mu   sync.Mutex
	rand *rand.Rand
	seed uint64
}

// New creates a new Locked instance with the specified seed.
// Equal seeds produce equal streams.
func New(seed uint64) *Locked {
	return &Locked{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Reset rewinds the generator to its initial seed.
func (r *Locked) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
}

// Seed returns the initial seed.
func (r *Locked) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *Locked) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Shuffle pseudo-randomizes the order of n elements.
func (r *Locked) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(n, swap)
}

type global struct{}

func (global) IntN(n int) int { return rand.IntN(n) }

// Global returns a Source backed by the top-level math/rand/v2 functions.
// It is not reproducible.
func Global() Source {
	return global{}
}

// Shuffle permutes s in place using src (Fisher–Yates).
// If src is nil, Global is used.
func Shuffle[T any](src Source, s []T) {
	if src == nil {
		src = global{}
	}
	if l, ok := src.(*Locked); ok {
		l.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		return
	}
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// OrDefault returns src, or Global if src is nil.
func OrDefault(src Source) Source {
	if src == nil {
		return global{}
	}
	return src
}
