// Package setcover is a widening domain for the set covering problem: pick
// sets until their union equals the universe, preferring fewer sets.
//
// A Model is a partial cover. Refining it yields one Candidate per unused
// set in index order; a Candidate knows its score without building the new
// cover, which is only materialized for survivors of both selection stages.
//
// Sets and coverage are roaring bitmaps. The used-set index is a
// bits-and-blooms bitset, which also provides the content hash and the
// deterministic tie-break.
package setcover
