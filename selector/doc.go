// Package selector implements the selection policies that decide which
// candidates survive a widening round.
//
// Every selector implements widening.Selector: SelectLocal bounds the
// branching of one model, SelectGlobal bounds the width of the next
// generation and materializes the survivors. All of them return a complete
// candidate alone as soon as they observe one.
//
// # Policies
//
//   - TopK: exact bounded top-k by score (Greedy is the k=1 case).
//   - Bucket: partition into k buckets and keep the best of each. Buckets are
//     assigned at random, by content hash, or round-robin after a shuffle.
//     WithFanout spreads over more buckets and merges the sparsest ones back
//     down to k; WithFillUp tops a short result up with the best leftovers.
//   - KMedoid: cluster around k medoids and keep the best of each cluster.
//   - Reservoir: uniform k-subset of a stream of unknown length.
//   - DiverseTopK: best-first greedy filter with a minimum pairwise
//     dissimilarity.
//   - ScoreErosion: soft quality/diversity trade-off that penalizes
//     near-duplicates of already chosen candidates.
//   - Combined, Sequence: compose other selectors.
//
// # Determinism
//
// Selectors rank with Score.Compare, which must be a total order. TopK and
// hash buckets are therefore independent of arrival order (up to
// first-writer-wins among exact ties). Randomized selectors are reproducible
// when built with a seeded rng.Locked.
//
// # Scratch state
//
// Selector values only hold configuration. Heaps, bucket arrays and erosion
// vectors are allocated per call, so a selector may be shared by concurrent
// rounds. Sequence is the one exception: it advances a round counter.
package selector
