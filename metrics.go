package widening

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the prom
// package ships a Prometheus implementation.
//
// Implementations must be safe for concurrent use: the parallel calculator
// reports tasks from worker goroutines.
type MetricsCollector interface {
	// RecordRun is called once per Run with the number of completed rounds,
	// whether a complete model was found and the total time taken.
	RecordRun(rounds int, found bool, duration time.Duration, err error)

	// RecordRound is called after each round's global selection.
	// generation is the number of models refined, candidates the number of
	// candidates that survived local selection, next the size of the new
	// generation.
	RecordRound(generation, candidates, next int, duration time.Duration)

	// RecordTask is called after each unit of refine+selectLocal work.
	RecordTask(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordRound(int, int, int, time.Duration)  {}
func (NoopMetricsCollector) RecordTask(time.Duration, error)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount        atomic.Int64
	RunErrors       atomic.Int64
	RunsFound       atomic.Int64
	RunTotalNanos   atomic.Int64
	RoundCount      atomic.Int64
	RoundTotalNanos atomic.Int64
	ModelsRefined   atomic.Int64
	CandidatesKept  atomic.Int64
	ModelsSelected  atomic.Int64
	TaskCount       atomic.Int64
	TaskErrors      atomic.Int64
	TaskTotalNanos  atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(rounds int, found bool, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
	if found {
		b.RunsFound.Add(1)
	}
}

// RecordRound implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRound(generation, candidates, next int, duration time.Duration) {
	b.RoundCount.Add(1)
	b.RoundTotalNanos.Add(duration.Nanoseconds())
	b.ModelsRefined.Add(int64(generation))
	b.CandidatesKept.Add(int64(candidates))
	b.ModelsSelected.Add(int64(next))
}

// RecordTask implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTask(duration time.Duration, err error) {
	b.TaskCount.Add(1)
	b.TaskTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.TaskErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:       b.RunCount.Load(),
		RunErrors:      b.RunErrors.Load(),
		RunsFound:      b.RunsFound.Load(),
		RunAvgNanos:    avgNanos(b.RunTotalNanos.Load(), b.RunCount.Load()),
		RoundCount:     b.RoundCount.Load(),
		RoundAvgNanos:  avgNanos(b.RoundTotalNanos.Load(), b.RoundCount.Load()),
		ModelsRefined:  b.ModelsRefined.Load(),
		CandidatesKept: b.CandidatesKept.Load(),
		ModelsSelected: b.ModelsSelected.Load(),
		TaskCount:      b.TaskCount.Load(),
		TaskErrors:     b.TaskErrors.Load(),
		TaskAvgNanos:   avgNanos(b.TaskTotalNanos.Load(), b.TaskCount.Load()),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount       int64
	RunErrors      int64
	RunsFound      int64
	RunAvgNanos    int64
	RoundCount     int64
	RoundAvgNanos  int64
	ModelsRefined  int64
	CandidatesKept int64
	ModelsSelected int64
	TaskCount      int64
	TaskErrors     int64
	TaskAvgNanos   int64
}
