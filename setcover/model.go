package setcover

import (
	"cmp"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/widening/internal/hash"
)

// Score is the number of uncovered elements. Ties are broken by the used
// sets, compared as ascending index lists: the cover whose first differing
// set has the lower index wins, and a prefix beats its extensions.
type Score struct {
	Uncovered int
	used      *bitset.BitSet
}

// Compare implements widening.Score.
func (s Score) Compare(o Score) int {
	if c := cmp.Compare(s.Uncovered, o.Uncovered); c != 0 {
		return c
	}
	return compareUsed(s.used, o.used)
}

// Value implements widening.Score.
func (s Score) Value() float64 { return float64(s.Uncovered) }

// LeastSet returns the lowest used set index, or -1 for the empty cover.
func (s Score) LeastSet() int {
	i, ok := nextSet(s.used, 0)
	if !ok {
		return -1
	}
	return int(i)
}

func compareUsed(a, b *bitset.BitSet) int {
	i, okA := nextSet(a, 0)
	j, okB := nextSet(b, 0)
	for okA && okB {
		if i != j {
			return cmp.Compare(i, j)
		}
		i, okA = nextSet(a, i+1)
		j, okB = nextSet(b, j+1)
	}
	switch {
	case okA:
		return 1
	case okB:
		return -1
	}
	return 0
}

func nextSet(b *bitset.BitSet, i uint) (uint, bool) {
	if b == nil {
		return 0, false
	}
	return b.NextSet(i)
}

// Model is a partial cover. It is never mutated after construction.
type Model struct {
	inst    *Instance
	used    *bitset.BitSet
	covered *roaring.Bitmap
}

// Score implements widening.Model.
func (m *Model) Score() Score {
	return Score{Uncovered: m.uncovered(), used: m.used}
}

// IsComplete implements widening.Model.
func (m *Model) IsComplete() bool {
	return m.covered.GetCardinality() == m.inst.universe
}

func (m *Model) uncovered() int {
	return int(m.inst.universe - m.covered.GetCardinality())
}

// Used returns the indices of the used sets in ascending order.
func (m *Model) Used() []int {
	out := make([]int, 0, m.used.Count())
	for i, ok := m.used.NextSet(0); ok; i, ok = m.used.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// Covered returns the covered elements in ascending order.
func (m *Model) Covered() []uint32 { return m.covered.ToArray() }

// NumSets returns the number of used sets.
func (m *Model) NumSets() int { return int(m.used.Count()) }

// Hash is a content hash of the used sets.
func (m *Model) Hash() uint64 { return hash.Words(m.used.Words()) }

// Equal reports whether both models use the same sets.
func (m *Model) Equal(o *Model) bool { return m.used.Equal(o.used) }

func (m *Model) with(add int) *Model {
	used := m.used.Clone()
	used.Set(uint(add))
	covered := roaring.Or(m.covered, m.inst.sets[add])
	return &Model{inst: m.inst, used: used, covered: covered}
}
