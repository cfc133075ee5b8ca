package setcover

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
)

var (
	// ErrEmptyUniverse is returned for an instance without elements.
	ErrEmptyUniverse = errors.New("setcover: universe must not be empty")

	// ErrElementRange is returned when a set holds an element outside the universe.
	ErrElementRange = errors.New("setcover: element outside universe")
)

// Instance is an immutable set covering problem.
type Instance struct {
	universe uint64
	sets     []*roaring.Bitmap
}

// NewInstance creates an instance over the universe [0, universe).
func NewInstance(universe int, sets [][]uint32) (*Instance, error) {
	if universe <= 0 {
		return nil, ErrEmptyUniverse
	}
	in := &Instance{
		universe: uint64(universe),
		sets:     make([]*roaring.Bitmap, len(sets)),
	}
	for i, s := range sets {
		bm := roaring.BitmapOf(s...)
		if !bm.IsEmpty() && uint64(bm.Maximum()) >= in.universe {
			return nil, fmt.Errorf("%w: set %d holds %d, universe is %d", ErrElementRange, i, bm.Maximum(), universe)
		}
		bm.RunOptimize()
		in.sets[i] = bm
	}
	return in, nil
}

// Universe returns the number of elements to cover.
func (in *Instance) Universe() int { return int(in.universe) }

// NumSets returns the number of sets.
func (in *Instance) NumSets() int { return len(in.sets) }

// Set returns a copy of set i.
func (in *Instance) Set(i int) []uint32 { return in.sets[i].ToArray() }

// Coverable reports whether the union of all sets is the universe.
func (in *Instance) Coverable() bool {
	return roaring.FastOr(in.sets...).GetCardinality() == in.universe
}

// Empty returns the model that uses no set.
func (in *Instance) Empty() *Model {
	return &Model{
		inst:    in,
		used:    bitset.New(uint(len(in.sets))),
		covered: roaring.New(),
	}
}

// Cover returns the model that uses the given sets.
func (in *Instance) Cover(sets ...int) *Model {
	m := in.Empty()
	for _, s := range sets {
		m.used.Set(uint(s))
		m.covered.Or(in.sets[s])
	}
	return m
}
