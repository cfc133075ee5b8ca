// Package testutil provides testing utilities for widening.
//
// This package is intended for use in tests and benchmarks only.
//
// # Toy Models
//
// Item is both a model and a candidate with an integer score. Ladder and
// Dwindle are refiners over items whose outcome is known in advance:
//
//	items := testutil.Items(5, 3, 8)      // costs, IDs 0..2
//	ladder := testutil.Ladder{Depth: 3, Branching: 4}
//
// # Random Instances
//
//	rng := testutil.NewRNG(seed)
//	items := rng.Items(100, 50)           // random costs and positions
//	sets := rng.Sets(64, 20, 0.2)         // random set-cover instance
package testutil
