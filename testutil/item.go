package testutil

import (
	"cmp"
	"math"

	"github.com/hupe1980/widening/internal/hash"
)

// Score is an integer cost with an ID tie-break. Lower is better.
type Score struct {
	Cost int
	Tie  int
}

// Compare orders by cost, then by tie-break.
func (s Score) Compare(o Score) int {
	if c := cmp.Compare(s.Cost, o.Cost); c != 0 {
		return c
	}
	return cmp.Compare(s.Tie, o.Tie)
}

// Value returns the cost.
func (s Score) Value() float64 { return float64(s.Cost) }

// Item is a toy model that is its own candidate.
type Item struct {
	ID    int
	Cost  int
	Level int
	// Pos places the item on [0, 1]; Similarity is derived from it.
	Pos  float64
	Done bool
}

// Score returns the item's score.
func (it *Item) Score() Score { return Score{Cost: it.Cost, Tie: it.ID} }

// IsComplete reports whether the item is a finished solution.
func (it *Item) IsComplete() bool { return it.Done }

// Materialize returns the item itself.
func (it *Item) Materialize() *Item { return it }

// Items creates one item per cost with IDs 0..n-1 and evenly spread
// positions.
func Items(costs ...int) []*Item {
	items := make([]*Item, len(costs))
	for i, c := range costs {
		items[i] = &Item{ID: i, Cost: c}
		if len(costs) > 1 {
			items[i].Pos = float64(i) / float64(len(costs)-1)
		}
	}
	return items
}

// IDs returns the IDs of items in order.
func IDs(items []*Item) []int {
	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// Similarity is 1 minus the distance between positions.
func Similarity(a, b *Item) float64 {
	return 1 - math.Min(1, math.Abs(a.Pos-b.Pos))
}

// Hash is a content hash over the item ID.
func Hash(it *Item) uint64 {
	return hash.Mix64(uint64(it.ID) + 1)
}

// Equal reports whether two items have the same ID.
func Equal(a, b *Item) bool {
	return a.ID == b.ID
}
