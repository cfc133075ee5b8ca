// Package workpool provides the bounded worker pool handed to the parallel
// calculator.
//
// A Pool limits how many units of work run at the same time and, optionally,
// how fast new units may start. It never cancels work: a unit that has been
// submitted always runs to completion.
package workpool

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds pool limits.
type Config struct {
	// Workers is the maximum number of units running concurrently.
	// If 0, defaults to runtime.GOMAXPROCS(0).
	Workers int

	// TasksPerSecond caps the rate at which units start.
	// If 0, unlimited.
	TasksPerSecond float64
}

// Pool limits the concurrency of submitted work.
// A single Pool may be shared by several calculators and runs.
type Pool struct {
	cfg Config

	slots   *semaphore.Weighted
	limiter *rate.Limiter // nil if unlimited

	active    atomic.Int64
	completed atomic.Int64
	panics    atomic.Int64
}

// New creates a new pool.
func New(cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		cfg:   cfg,
		slots: semaphore.NewWeighted(int64(cfg.Workers)),
	}

	if cfg.TasksPerSecond > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(cfg.TasksPerSecond), 1)
	}

	return p
}

// Workers returns the configured pool size.
func (p *Pool) Workers() int {
	return p.cfg.Workers
}

// Active returns the number of units currently running.
func (p *Pool) Active() int64 {
	return p.active.Load()
}

// Completed returns the number of units that have finished, successfully or not.
func (p *Pool) Completed() int64 {
	return p.completed.Load()
}

// Panics returns the number of units that panicked.
func (p *Pool) Panics() int64 {
	return p.panics.Load()
}

// Do blocks until a worker slot is free, then runs fn on the calling
// goroutine. A panic inside fn is converted into a *PanicError.
//
// ctx only carries values: cancellation is ignored, so a submitted unit
// always runs.
func (p *Pool) Do(ctx context.Context, fn func() error) (err error) {
	ctx = context.WithoutCancel(ctx)

	if err := p.slots.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.slots.Release(1)

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	p.active.Add(1)
	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
		p.active.Add(-1)
		p.completed.Add(1)
	}()

	return fn()
}

// PanicError wraps a value recovered from a panicking unit of work.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("workpool: task panicked: %v", e.Value)
}
