// Package prom exports widening run metrics to Prometheus.
//
//	c, err := prom.New(prometheus.DefaultRegisterer)
//	calc, _ := widening.NewCalculator(refiner, sel, widening.WithMetricsCollector(c))
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/widening"
)

const namespace = "widening"

var _ widening.MetricsCollector = (*Collector)(nil)

// Collector implements widening.MetricsCollector with Prometheus metrics.
type Collector struct {
	runs          *prometheus.CounterVec
	runDuration   prometheus.Histogram
	runRounds     prometheus.Histogram
	rounds        prometheus.Counter
	roundDuration prometheus.Histogram
	refined       prometheus.Counter
	kept          prometheus.Counter
	selected      prometheus.Counter
	generation    prometheus.Gauge
	tasks         *prometheus.CounterVec
	taskDuration  prometheus.Histogram
}

// New creates a collector and registers its metrics with reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total calculator runs by status and outcome",
		}, []string{"status", "outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of calculator runs",
			Buckets:   prometheus.DefBuckets,
		}),
		runRounds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_rounds",
			Help:      "Completed rounds per run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		rounds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_total",
			Help:      "Total completed rounds",
		}),
		roundDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "round_duration_seconds",
			Help:      "Wall time of rounds",
			Buckets:   prometheus.DefBuckets,
		}),
		refined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "models_refined_total",
			Help:      "Total models refined",
		}),
		kept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_kept_total",
			Help:      "Total candidates that survived local selection",
		}),
		selected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "models_selected_total",
			Help:      "Total models chosen by global selection",
		}),
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generation_size",
			Help:      "Size of the most recently selected generation",
		}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_total",
			Help:      "Total refine and local select units by status",
		}, []string{"status"}),
		taskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Wall time of refine and local select units",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}

	for _, m := range []prometheus.Collector{
		c.runs, c.runDuration, c.runRounds,
		c.rounds, c.roundDuration,
		c.refined, c.kept, c.selected, c.generation,
		c.tasks, c.taskDuration,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordRun implements widening.MetricsCollector.
func (c *Collector) RecordRun(rounds int, found bool, duration time.Duration, err error) {
	outcome := "exhausted"
	if found {
		outcome = "found"
	}
	c.runs.WithLabelValues(status(err), outcome).Inc()
	c.runDuration.Observe(duration.Seconds())
	c.runRounds.Observe(float64(rounds))
}

// RecordRound implements widening.MetricsCollector.
func (c *Collector) RecordRound(generation, candidates, next int, duration time.Duration) {
	c.rounds.Inc()
	c.roundDuration.Observe(duration.Seconds())
	c.refined.Add(float64(generation))
	c.kept.Add(float64(candidates))
	c.selected.Add(float64(next))
	c.generation.Set(float64(next))
}

// RecordTask implements widening.MetricsCollector.
func (c *Collector) RecordTask(duration time.Duration, err error) {
	c.tasks.WithLabelValues(status(err)).Inc()
	c.taskDuration.Observe(duration.Seconds())
}

// RunsCounter returns the run counter for a status ("success", "error")
// and outcome ("found", "exhausted").
func (c *Collector) RunsCounter(status, outcome string) prometheus.Counter {
	return c.runs.WithLabelValues(status, outcome)
}

// GenerationGauge returns the gauge tracking the latest generation size.
func (c *Collector) GenerationGauge() prometheus.Gauge {
	return c.generation
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
