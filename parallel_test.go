package widening_test

import (
	"context"
	"errors"
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/widening"
	"github.com/hupe1980/widening/selector"
	"github.com/hupe1980/widening/testutil"
	"github.com/hupe1980/widening/workpool"
)

// scripted keeps every candidate locally and answers the first global
// selection with a fixed generation.
type scripted struct {
	next []item
}

func (s scripted) SelectLocal(seq iter.Seq[item]) ([]item, error) {
	return slices.Collect(seq), nil
}

func (s scripted) SelectGlobal(iter.Seq[item]) ([]item, error) {
	return s.next, nil
}

func newParallel(t *testing.T, r widening.Refiner[score, item, item], s widening.Selector[score, item, item], pool *workpool.Pool, opts ...widening.Option) *widening.ParallelCalculator[score, item, item] {
	t.Helper()
	calc, err := widening.NewParallelCalculator(r, s, pool, opts...)
	require.NoError(t, err)
	return calc
}

func TestNewParallelCalculator(t *testing.T) {
	ladder := testutil.Ladder{Depth: 1, Branching: 1}
	pool := workpool.New(workpool.Config{Workers: 1})

	_, err := widening.NewParallelCalculator[score, item, item](ladder, topK(t, 1), nil)
	assert.ErrorIs(t, err, widening.ErrNilPool)

	_, err = widening.NewParallelCalculator[score, item, item](nil, topK(t, 1), pool)
	assert.ErrorIs(t, err, widening.ErrNilRefiner)

	_, err = widening.NewParallelCalculator[score, item, item](ladder, nil, pool)
	assert.ErrorIs(t, err, widening.ErrNilSelector)
}

func TestParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	ladder := testutil.Ladder{Depth: 5, Branching: 4}

	buckets, err := selector.NewBucket[score, item, item](3, selector.HashAssigner(testutil.Hash))
	require.NoError(t, err)
	diverse, err := selector.NewDiverseTopK[score, item](3,
		selector.Threshold[item]{Min: 0.2, Similarity: testutil.Similarity},
		selector.Threshold[item]{Min: 0.1, Similarity: testutil.Similarity},
	)
	require.NoError(t, err)
	erosion, err := selector.NewScoreErosion[score, item, item](3, 0.3, testutil.Similarity)
	require.NoError(t, err)

	for name, sel := range map[string]widening.Selector[score, item, item]{
		"TopK":    topK(t, 3),
		"Greedy":  selector.NewGreedy[score, item, item](),
		"Bucket":  buckets,
		"Diverse": diverse,
		"Erosion": erosion,
	} {
		t.Run(name, func(t *testing.T) {
			want, wantFound, err := newCalculator(t, ladder, sel).Run(ctx, &testutil.Item{})
			require.NoError(t, err)

			for _, workers := range []int{1, 2, 8} {
				pool := workpool.New(workpool.Config{Workers: workers})
				got, found, err := newParallel(t, ladder, sel, pool).Run(ctx, &testutil.Item{})
				require.NoError(t, err)
				assert.Equal(t, wantFound, found)
				assert.Equal(t, want.ID, got.ID, "workers=%d", workers)
				assert.Positive(t, pool.Completed())
				assert.Zero(t, pool.Active())
			}
		})
	}
}

func TestParallelCalculator(t *testing.T) {
	ctx := context.Background()
	pool := workpool.New(workpool.Config{Workers: 4})

	t.Run("EmptyFrontier", func(t *testing.T) {
		metrics := &widening.BasicMetricsCollector{}
		m, found, err := newParallel(t, testutil.Dwindle{}, topK(t, 2), pool, widening.WithMetricsCollector(metrics)).
			Run(ctx, &testutil.Item{Cost: 3})
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, m)
		assert.Equal(t, int64(3), metrics.GetStats().RoundCount)
	})

	t.Run("CompleteStart", func(t *testing.T) {
		start := &testutil.Item{Done: true}
		m, found, err := newParallel(t, testutil.Ladder{Depth: 2, Branching: 2}, topK(t, 2), pool).Run(ctx, start)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Same(t, start, m)
	})

	t.Run("CompleteLaterInGeneration", func(t *testing.T) {
		slow := &testutil.Item{ID: 10, Cost: 1}
		done := &testutil.Item{ID: 11, Done: true}
		started := make(chan struct{})
		release := make(chan struct{})
		defer close(release)

		refiner := widening.RefinerFunc[score, item, item](func(_ context.Context, m item) (iter.Seq[item], error) {
			if m.ID == slow.ID {
				close(started)
				<-release
			}
			return slices.Values([]item{{ID: m.ID + 1, Cost: 1}}), nil
		})
		calc := newParallel(t, refiner, scripted{next: []item{slow, done}}, workpool.New(workpool.Config{Workers: 2}))

		type result struct {
			m     item
			found bool
			err   error
		}
		results := make(chan result, 1)
		go func() {
			m, found, err := calc.Run(ctx, &testutil.Item{})
			results <- result{m, found, err}
		}()

		select {
		case r := <-results:
			require.NoError(t, r.err)
			assert.True(t, r.found)
			assert.Same(t, done, r.m)
		case <-time.After(5 * time.Second):
			t.Fatal("run waited for the unit refining an earlier model")
		}

		select {
		case <-started:
		case <-time.After(5 * time.Second):
			t.Fatal("earlier model was never refined")
		}
	})

	t.Run("AggregatesFailures", func(t *testing.T) {
		// Round 2 refines IDs 1, 2 and 3.
		faulty := testutil.Faulty{
			Ladder: testutil.Ladder{Depth: 3, Branching: 3},
			FailOn: map[int]bool{1: true, 3: true},
		}
		metrics := &widening.BasicMetricsCollector{}
		m, found, err := newParallel(t, faulty, topK(t, 3), pool, widening.WithMetricsCollector(metrics)).Run(ctx, &testutil.Item{})
		assert.Nil(t, m)
		assert.False(t, found)
		require.ErrorIs(t, err, testutil.ErrInjected)

		var re *widening.RoundError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, 2, re.Round)
		assert.Equal(t, 2, re.Failed)

		var de *widening.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, widening.StageRefine, de.Stage)

		stats := metrics.GetStats()
		assert.Equal(t, int64(4), stats.TaskCount)
		assert.Equal(t, int64(2), stats.TaskErrors)
		assert.Equal(t, int64(1), stats.RunErrors)
	})

	t.Run("RecoversPanics", func(t *testing.T) {
		faulty := testutil.Faulty{
			Ladder:  testutil.Ladder{Depth: 3, Branching: 2},
			PanicOn: map[int]bool{2: true},
		}
		_, _, err := newParallel(t, faulty, topK(t, 2), pool).Run(ctx, &testutil.Item{})

		var pe *workpool.PanicError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "testutil: injected panic", pe.Value)
		assert.NotEmpty(t, pe.Stack)

		var re *widening.RoundError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, 1, re.Failed)
		assert.Zero(t, pool.Active())
	})

	t.Run("SelectGlobalError", func(t *testing.T) {
		_, _, err := newParallel(t, testutil.Ladder{Depth: 2, Branching: 2}, stageFailure{global: true}, pool).Run(ctx, &testutil.Item{})

		var de *widening.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, widening.StageSelectGlobal, de.Stage)

		var re *widening.RoundError
		assert.False(t, errors.As(err, &re))
	})
}
