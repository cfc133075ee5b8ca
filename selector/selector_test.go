package selector_test

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/widening"
	"github.com/hupe1980/widening/rng"
	"github.com/hupe1980/widening/selector"
	"github.com/hupe1980/widening/testutil"
)

type (
	score = testutil.Score
	item  = *testutil.Item
)

var (
	_ widening.Selector[score, item, item] = (*selector.TopK[score, item, item])(nil)
	_ widening.Selector[score, item, item] = (*selector.Greedy[score, item, item])(nil)
	_ widening.Selector[score, item, item] = (*selector.Bucket[score, item, item])(nil)
	_ widening.Selector[score, item, item] = (*selector.Reservoir[score, item, item])(nil)
	_ widening.Selector[score, item, item] = (*selector.DiverseTopK[score, item, item])(nil)
	_ widening.Selector[score, item, item] = (*selector.ScoreErosion[score, item, item])(nil)
	_ widening.Selector[score, item, item] = (*selector.Combined[score, item, item])(nil)
	_ widening.Selector[score, item, item] = (*selector.Sequence[score, item, item])(nil)
	_ widening.Selector[score, item, item] = (*selector.KMedoid[score, item, item])(nil)
)

func costs(items []item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Cost
	}
	return out
}

func shuffled(seed uint64, items []item) []item {
	out := slices.Clone(items)
	rng.Shuffle(rng.New(seed), out)
	return out
}

// counting wraps items in a sequence that records how many were pulled.
func counting(items []item, pulled *int) iter.Seq[item] {
	return func(yield func(item) bool) {
		for _, it := range items {
			*pulled++
			if !yield(it) {
				return
			}
		}
	}
}

func TestTopK(t *testing.T) {
	t.Run("InvalidK", func(t *testing.T) {
		_, err := selector.NewTopK[score, item, item](0)
		assert.ErrorIs(t, err, selector.ErrInvalidK)
	})

	sel, err := selector.NewTopK[score, item, item](3)
	require.NoError(t, err)
	assert.Equal(t, 3, sel.K())

	t.Run("BestFirst", func(t *testing.T) {
		got, err := sel.SelectLocal(slices.Values(testutil.Items(9, 4, 7, 1, 8, 2)))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 4}, costs(got))
	})

	t.Run("FewerThanK", func(t *testing.T) {
		got, err := sel.SelectGlobal(slices.Values(testutil.Items(5, 3)))
		require.NoError(t, err)
		assert.Equal(t, []int{3, 5}, costs(got))
	})

	t.Run("Empty", func(t *testing.T) {
		got, err := sel.SelectLocal(slices.Values([]item(nil)))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("OrderIndependent", func(t *testing.T) {
		items := testutil.NewRNG(3).Items(200, 20)
		want, err := sel.SelectLocal(slices.Values(items))
		require.NoError(t, err)
		for seed := range uint64(10) {
			got, err := sel.SelectLocal(slices.Values(shuffled(seed, items)))
			require.NoError(t, err)
			assert.Equal(t, testutil.IDs(want), testutil.IDs(got))
		}
	})

	t.Run("CompleteShortCircuits", func(t *testing.T) {
		items := testutil.Items(5, 9, 1, 4)
		items[1].Done = true
		pulled := 0

		got, err := sel.SelectGlobal(counting(items, &pulled))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Same(t, items[1], got[0])
		assert.Equal(t, 2, pulled)
	})
}

func TestGreedy(t *testing.T) {
	sel := selector.NewGreedy[score, item, item]()

	t.Run("Best", func(t *testing.T) {
		got, err := sel.SelectGlobal(slices.Values(testutil.Items(3, 1, 2, 1)))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].ID, "lowest ID wins ties")
	})

	t.Run("CompletionBeatsScore", func(t *testing.T) {
		items := testutil.Items(0, 7)
		items[1].Done = true
		got, err := sel.SelectLocal(slices.Values(items))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].ID)
	})

	t.Run("Empty", func(t *testing.T) {
		got, err := sel.SelectGlobal(slices.Values([]item(nil)))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestReservoir(t *testing.T) {
	t.Run("InvalidK", func(t *testing.T) {
		_, err := selector.NewReservoir[score, item, item](-1, nil)
		assert.ErrorIs(t, err, selector.ErrInvalidK)
	})

	t.Run("KeepsAllWhenShort", func(t *testing.T) {
		sel, err := selector.NewReservoir[score, item, item](5, rng.New(1))
		require.NoError(t, err)
		got, err := sel.SelectLocal(slices.Values(testutil.Items(1, 2, 3)))
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, testutil.IDs(got))
	})

	t.Run("Reproducible", func(t *testing.T) {
		items := testutil.NewRNG(9).Items(50, 10)
		a, _ := selector.NewReservoir[score, item, item](5, rng.New(77))
		b, _ := selector.NewReservoir[score, item, item](5, rng.New(77))
		ga, _ := a.SelectLocal(slices.Values(items))
		gb, _ := b.SelectLocal(slices.Values(items))
		assert.Equal(t, testutil.IDs(ga), testutil.IDs(gb))
	})

	t.Run("Uniform", func(t *testing.T) {
		const (
			n      = 10
			k      = 3
			trials = 20000
		)
		items := testutil.Items(make([]int, n)...)
		sel, err := selector.NewReservoir[score, item, item](k, rng.New(2024))
		require.NoError(t, err)

		hits := make([]int, n)
		for range trials {
			got, err := sel.SelectLocal(slices.Values(items))
			require.NoError(t, err)
			require.Len(t, got, k)
			for _, it := range got {
				hits[it.ID]++
			}
		}
		expected := float64(trials) * k / n
		for id, h := range hits {
			assert.InEpsilon(t, expected, float64(h), 0.06, "item %d", id)
		}
	})

	t.Run("CompleteShortCircuits", func(t *testing.T) {
		sel, _ := selector.NewReservoir[score, item, item](2, rng.New(1))
		items := testutil.Items(1, 2, 3, 4)
		items[3].Done = true
		got, err := sel.SelectGlobal(slices.Values(items))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].ID)
	})
}
