package testutil

import (
	"context"
	"errors"
	"iter"
)

// ErrInjected is returned by Faulty.
var ErrInjected = errors.New("testutil: injected failure")

// Ladder refines an item into Branching children one level deeper. Children
// at level Depth are complete, so any selector reaches a complete model in
// exactly Depth rounds from a level 0 root.
//
// Child b of item i has ID i*Branching+b+1, which keeps IDs unique across
// the tree rooted at ID 0, and cost (Depth-level)*Branching+b.
type Ladder struct {
	Depth     int
	Branching int
}

// Refine implements widening.Refiner.
func (l Ladder) Refine(_ context.Context, it *Item) (iter.Seq[*Item], error) {
	level := it.Level + 1
	return func(yield func(*Item) bool) {
		for b := range l.Branching {
			child := &Item{
				ID:    it.ID*l.Branching + b + 1,
				Cost:  (l.Depth-level)*l.Branching + b,
				Level: level,
				Pos:   float64(b) / float64(max(l.Branching-1, 1)),
				Done:  level >= l.Depth,
			}
			if !yield(child) {
				return
			}
		}
	}, nil
}

// Dwindle refines an item into a single cheaper child until the cost
// reaches zero, then into nothing. It never completes.
type Dwindle struct{}

// Refine implements widening.Refiner.
func (Dwindle) Refine(_ context.Context, it *Item) (iter.Seq[*Item], error) {
	return func(yield func(*Item) bool) {
		if it.Cost > 0 {
			yield(&Item{ID: it.ID + 1, Cost: it.Cost - 1, Level: it.Level + 1})
		}
	}, nil
}

// Faulty wraps a Ladder and fails or panics on selected item IDs.
type Faulty struct {
	Ladder
	FailOn  map[int]bool
	PanicOn map[int]bool
}

// Refine implements widening.Refiner.
func (f Faulty) Refine(ctx context.Context, it *Item) (iter.Seq[*Item], error) {
	if f.PanicOn[it.ID] {
		panic("testutil: injected panic")
	}
	if f.FailOn[it.ID] {
		return nil, ErrInjected
	}
	return f.Ladder.Refine(ctx, it)
}
