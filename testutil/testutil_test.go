package testutil

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItems(t *testing.T) {
	items := Items(5, 3, 8)

	assert.Equal(t, []int{0, 1, 2}, IDs(items))
	assert.Equal(t, 0.0, items[0].Pos)
	assert.Equal(t, 1.0, items[2].Pos)
	assert.Equal(t, 1.0, Similarity(items[1], items[1]))
	assert.Equal(t, 0.0, Similarity(items[0], items[2]))
	assert.Negative(t, items[1].Score().Compare(items[0].Score()))
}

func TestScoreTieBreak(t *testing.T) {
	a := &Item{ID: 1, Cost: 4}
	b := &Item{ID: 2, Cost: 4}

	assert.Negative(t, a.Score().Compare(b.Score()))
	assert.Zero(t, a.Score().Compare(a.Score()))
}

func TestLadder(t *testing.T) {
	l := Ladder{Depth: 2, Branching: 3}
	root := &Item{}

	seq, err := l.Refine(context.Background(), root)
	require.NoError(t, err)
	children := slices.Collect(seq)
	assert.Equal(t, []int{1, 2, 3}, IDs(children))
	for _, c := range children {
		assert.False(t, c.IsComplete())
	}

	seq, err = l.Refine(context.Background(), children[2])
	require.NoError(t, err)
	grandchildren := slices.Collect(seq)
	assert.Equal(t, []int{10, 11, 12}, IDs(grandchildren))
	for _, c := range grandchildren {
		assert.True(t, c.IsComplete())
	}
}

func TestDwindle(t *testing.T) {
	seq, _ := Dwindle{}.Refine(context.Background(), &Item{Cost: 1})
	children := slices.Collect(seq)
	require.Len(t, children, 1)
	assert.Equal(t, 0, children[0].Cost)

	seq, _ = Dwindle{}.Refine(context.Background(), children[0])
	assert.Empty(t, slices.Collect(seq))
}

func TestFaulty(t *testing.T) {
	f := Faulty{Ladder: Ladder{Depth: 1, Branching: 1}, FailOn: map[int]bool{3: true}, PanicOn: map[int]bool{4: true}}

	_, err := f.Refine(context.Background(), &Item{ID: 3})
	assert.ErrorIs(t, err, ErrInjected)
	assert.Panics(t, func() { _, _ = f.Refine(context.Background(), &Item{ID: 4}) })
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.Items(10, 100)

	rng.Reset()
	v2 := rng.Items(10, 100)

	assert.Equal(t, v1, v2)
	assert.Equal(t, uint64(4711), rng.Seed())
}

func TestSets(t *testing.T) {
	rng := NewRNG(1)
	sets := rng.Sets(50, 6, 0.1)

	require.Len(t, sets, 6)
	seen := make(map[uint32]bool)
	for _, s := range sets {
		assert.True(t, slices.IsSorted(s))
		for _, e := range s {
			seen[e] = true
		}
	}
	assert.Len(t, seen, 50)
}
