package setcover

import (
	"context"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/widening/internal/hash"
)

// Candidate is a model plus one more set. The resulting coverage is only
// counted, not built, until Materialize.
type Candidate struct {
	parent    *Model
	add       int
	uncovered int
	used      *bitset.BitSet
}

func newCandidate(parent *Model, add int) *Candidate {
	used := parent.used.Clone()
	used.Set(uint(add))
	covered := parent.covered.OrCardinality(parent.inst.sets[add])
	return &Candidate{
		parent:    parent,
		add:       add,
		uncovered: int(parent.inst.universe - covered),
		used:      used,
	}
}

// Score implements widening.Candidate.
func (c *Candidate) Score() Score {
	return Score{Uncovered: c.uncovered, used: c.used}
}

// IsComplete implements widening.Candidate.
func (c *Candidate) IsComplete() bool { return c.uncovered == 0 }

// Materialize implements widening.Candidate.
func (c *Candidate) Materialize() *Model { return c.parent.with(c.add) }

// Parent returns the model the candidate extends.
func (c *Candidate) Parent() *Model { return c.parent }

// Added returns the index of the added set.
func (c *Candidate) Added() int { return c.add }

// Refiner extends a model by every unused set.
type Refiner struct{}

// Refine implements widening.Refiner. Candidates are produced lazily in set
// index order.
func (Refiner) Refine(_ context.Context, m *Model) (iter.Seq[*Candidate], error) {
	return func(yield func(*Candidate) bool) {
		for i := range m.inst.sets {
			if m.used.Test(uint(i)) {
				continue
			}
			if !yield(newCandidate(m, i)) {
				return
			}
		}
	}, nil
}

// Jaccard compares the coverage two candidates would have after
// materialization.
func Jaccard(a, b *Candidate) float64 {
	return jaccard(
		roaring.Or(a.parent.covered, a.parent.inst.sets[a.add]),
		roaring.Or(b.parent.covered, b.parent.inst.sets[b.add]),
	)
}

// SimpleJaccard compares only the sets two candidates add. It is cheaper
// than Jaccard and suits local selection.
func SimpleJaccard(a, b *Candidate) float64 {
	return jaccard(a.parent.inst.sets[a.add], b.parent.inst.sets[b.add])
}

func jaccard(a, b *roaring.Bitmap) float64 {
	inter := a.AndCardinality(b)
	union := a.GetCardinality() + b.GetCardinality() - inter
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}

// Hash is a content hash of the sets a candidate would use.
func Hash(c *Candidate) uint64 { return hash.Words(c.used.Words()) }

// Equal reports whether two candidates would use the same sets.
func Equal(a, b *Candidate) bool { return a.used.Equal(b.used) }
