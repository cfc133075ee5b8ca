package widening

import (
	"context"
	"runtime/debug"
	"slices"
	"sync/atomic"
	"time"

	"github.com/hupe1980/widening/internal/merge"
	"github.com/hupe1980/widening/workpool"
)

var runSeq atomic.Uint64

// Calculator drives refine → selectLocal → merge → selectGlobal rounds on
// the calling goroutine.
//
// A run keeps one generation of models. Each round refines every incomplete
// model, filters its candidates locally, merges all survivors and selects the
// next generation globally. The run ends when a complete model is reached or
// a generation produces no candidates.
type Calculator[S Score[S], M Model[S], C Candidate[S, M]] struct {
	refiner  Refiner[S, M, C]
	selector Selector[S, M, C]
	opts     options
	tracer   tracer
}

// NewCalculator creates a sequential calculator.
func NewCalculator[S Score[S], M Model[S], C Candidate[S, M]](
	refiner Refiner[S, M, C],
	selector Selector[S, M, C],
	optFns ...Option,
) (*Calculator[S, M, C], error) {
	if refiner == nil {
		return nil, ErrNilRefiner
	}
	if selector == nil {
		return nil, ErrNilSelector
	}
	o := applyOptions(optFns)
	return &Calculator[S, M, C]{
		refiner:  refiner,
		selector: selector,
		opts:     o,
		tracer:   newTracer(o.tracerProvider),
	}, nil
}

// Run searches from start until a complete model appears or the frontier
// runs dry. The boolean result reports whether a complete model was found.
//
// Models of a generation are visited in the order the selector returned
// them; if several complete models appear in the same generation, the first
// one wins.
//
// A panic in Refine or SelectLocal is returned as a *workpool.PanicError,
// as with the parallel calculator. A panic in SelectGlobal is not recovered
// by either calculator.
func (c *Calculator[S, M, C]) Run(ctx context.Context, start M) (M, bool, error) {
	began := time.Now()
	log := c.opts.logger.WithRunID(runSeq.Add(1))

	ctx, span := c.tracer.startRun(ctx, "sequential")
	log.LogRunStart(ctx, "sequential")

	model, found, rounds, err := c.run(ctx, log, start)

	elapsed := time.Since(began)
	c.tracer.endRun(span, rounds, found, err)
	log.LogRunEnd(ctx, rounds, found, elapsed, err)
	c.opts.metricsCollector.RecordRun(rounds, found, elapsed, err)
	return model, found, err
}

// run returns the result together with the number of completed rounds.
func (c *Calculator[S, M, C]) run(ctx context.Context, log *Logger, start M) (M, bool, int, error) {
	var zero M
	generation := []M{start}

	for round := 1; ; round++ {
		began := time.Now()
		rctx, span := c.tracer.startRound(ctx, round, len(generation))

		merged := merge.New[C](len(generation))
		kept := 0
		for _, m := range generation {
			if m.IsComplete() {
				c.tracer.endRound(span, kept, 0, true, nil)
				return m, true, round - 1, nil
			}

			taskStart := time.Now()
			local, err := guardedRefineLocal(rctx, c.refiner, c.selector, round, m)
			c.opts.metricsCollector.RecordTask(time.Since(taskStart), err)
			if err != nil {
				c.tracer.endRound(span, kept, 0, false, err)
				return zero, false, round - 1, err
			}
			kept += len(local)
			merged.Add(slices.Values(local))
		}

		if kept == 0 {
			log.LogEmptyFrontier(rctx, round, len(generation))
			c.tracer.endRound(span, 0, 0, false, nil)
			return zero, false, round - 1, nil
		}

		next, err := c.selector.SelectGlobal(merged.All())
		if err != nil {
			err = domainError(round, StageSelectGlobal, err)
			c.tracer.endRound(span, kept, 0, false, err)
			return zero, false, round - 1, err
		}

		c.tracer.endRound(span, kept, len(next), false, nil)
		log.LogRound(rctx, round, len(generation), kept, len(next))
		c.opts.metricsCollector.RecordRound(len(generation), kept, len(next), time.Since(began))
		generation = next
	}
}

// refineLocal is one unit of work: refine a model and bound its branching.
func refineLocal[S Score[S], M Model[S], C Candidate[S, M]](
	ctx context.Context,
	refiner Refiner[S, M, C],
	selector Selector[S, M, C],
	round int,
	model M,
) ([]C, error) {
	candidates, err := refiner.Refine(ctx, model)
	if err != nil {
		return nil, domainError(round, StageRefine, err)
	}
	if candidates == nil {
		candidates = empty[C]
	}
	local, err := selector.SelectLocal(candidates)
	if err != nil {
		return nil, domainError(round, StageSelectLocal, err)
	}
	return local, nil
}

// guardedRefineLocal is refineLocal with panics converted into a
// *workpool.PanicError.
func guardedRefineLocal[S Score[S], M Model[S], C Candidate[S, M]](
	ctx context.Context,
	refiner Refiner[S, M, C],
	selector Selector[S, M, C],
	round int,
	model M,
) (local []C, err error) {
	defer func() {
		if r := recover(); r != nil {
			local, err = nil, &workpool.PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return refineLocal(ctx, refiner, selector, round, model)
}

func empty[C any](func(C) bool) {}
