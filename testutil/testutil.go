package testutil

import (
	"math/rand/v2"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Items generates n items with IDs 0..n-1, costs in [0, maxCost) and
// uniform positions.
func (r *RNG) Items(n, maxCost int) []*Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]*Item, n)
	for i := range items {
		items[i] = &Item{
			ID:   i,
			Cost: r.rand.IntN(maxCost),
			Pos:  r.rand.Float64(),
		}
	}
	return items
}

// Sets generates a set-cover instance over [0, universe): count sets that
// each contain an element with probability density. Elements no set picked
// are added to a random set, so the instance is always coverable.
func (r *RNG) Sets(universe, count int, density float64) [][]uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	sets := make([][]uint32, count)
	for e := range uint32(universe) {
		covered := false
		for s := range sets {
			if r.rand.Float64() < density {
				sets[s] = append(sets[s], e)
				covered = true
			}
		}
		if !covered {
			s := r.rand.IntN(count)
			sets[s] = append(sets[s], e)
		}
	}
	return sets
}
