package prom_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/widening"
	"github.com/hupe1980/widening/prom"
	"github.com/hupe1980/widening/selector"
	"github.com/hupe1980/widening/testutil"
)

func TestCollector(t *testing.T) {
	t.Run("Records", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		c, err := prom.New(reg)
		require.NoError(t, err)

		c.RecordTask(time.Millisecond, nil)
		c.RecordTask(time.Millisecond, errors.New("boom"))
		c.RecordRound(2, 5, 3, time.Millisecond)
		c.RecordRun(4, true, time.Second, nil)

		assert.Equal(t, 12, promtest.CollectAndCount(reg))
		assert.Equal(t, 1.0, promtest.ToFloat64(c.RunsCounter("success", "found")))
		assert.Equal(t, 3.0, promtest.ToFloat64(c.GenerationGauge()))
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := prom.New(reg)
		require.NoError(t, err)
		_, err = prom.New(reg)
		assert.Error(t, err)
	})
}

func TestCollectorWithCalculator(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := prom.New(reg)
	require.NoError(t, err)

	sel, err := selector.NewTopK[testutil.Score, *testutil.Item, *testutil.Item](2)
	require.NoError(t, err)
	calc, err := widening.NewCalculator[testutil.Score, *testutil.Item, *testutil.Item](
		testutil.Ladder{Depth: 3, Branching: 3}, sel, widening.WithMetricsCollector(c))
	require.NoError(t, err)

	_, found, err := calc.Run(context.Background(), &testutil.Item{})
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, 1.0, promtest.ToFloat64(c.RunsCounter("success", "found")))
	assert.Equal(t, 0.0, promtest.ToFloat64(c.RunsCounter("error", "exhausted")))

	families, err := reg.Gather()
	require.NoError(t, err)
	byName := make(map[string]float64)
	for _, f := range families {
		if m := f.GetMetric(); len(m) == 1 && m[0].GetCounter() != nil {
			byName[f.GetName()] = m[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, 3.0, byName["widening_rounds_total"])
	assert.Equal(t, 5.0, byName["widening_models_refined_total"])
	assert.Equal(t, 5.0, byName["widening_models_selected_total"])
}
