package widening

import (
	"context"
	"errors"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/widening/internal/merge"
	"github.com/hupe1980/widening/workpool"
)

// ParallelCalculator runs the same rounds as Calculator but refines and
// locally selects every model of a generation as an independent unit of
// work on a worker pool.
//
// Rounds never overlap: global selection waits until every unit of the
// current generation has finished. Survivors are merged in the order of the
// models they came from, never in completion order, so with a deterministic
// refiner and selector the result equals that of the sequential Calculator.
//
// The refiner and selector must tolerate concurrent calls on distinct models.
type ParallelCalculator[S Score[S], M Model[S], C Candidate[S, M]] struct {
	refiner  Refiner[S, M, C]
	selector Selector[S, M, C]
	pool     *workpool.Pool
	opts     options
	tracer   tracer
}

// NewParallelCalculator creates a calculator that schedules work on pool.
func NewParallelCalculator[S Score[S], M Model[S], C Candidate[S, M]](
	refiner Refiner[S, M, C],
	selector Selector[S, M, C],
	pool *workpool.Pool,
	optFns ...Option,
) (*ParallelCalculator[S, M, C], error) {
	if refiner == nil {
		return nil, ErrNilRefiner
	}
	if selector == nil {
		return nil, ErrNilSelector
	}
	if pool == nil {
		return nil, ErrNilPool
	}
	o := applyOptions(optFns)
	return &ParallelCalculator[S, M, C]{
		refiner:  refiner,
		selector: selector,
		pool:     pool,
		opts:     o,
		tracer:   newTracer(o.tracerProvider),
	}, nil
}

// Run searches from start until a complete model appears or the frontier
// runs dry.
//
// A failing unit of work aborts the run after the round barrier with a
// *RoundError that joins every failure of that round. No partial result is
// returned.
func (p *ParallelCalculator[S, M, C]) Run(ctx context.Context, start M) (M, bool, error) {
	began := time.Now()
	log := p.opts.logger.WithRunID(runSeq.Add(1)).WithWorkers(p.pool.Workers())

	ctx, span := p.tracer.startRun(ctx, "parallel")
	log.LogRunStart(ctx, "parallel")

	model, found, rounds, err := p.run(ctx, log, start)

	elapsed := time.Since(began)
	p.tracer.endRun(span, rounds, found, err)
	log.LogRunEnd(ctx, rounds, found, elapsed, err)
	p.opts.metricsCollector.RecordRun(rounds, found, elapsed, err)
	return model, found, err
}

func (p *ParallelCalculator[S, M, C]) run(ctx context.Context, log *Logger, start M) (M, bool, int, error) {
	var zero M
	generation := []M{start}

	for round := 1; ; round++ {
		began := time.Now()
		rctx, span := p.tracer.startRound(ctx, round, len(generation))

		// One slot per model; slot i is only written by the unit for model i.
		results := make([][]C, len(generation))
		errs := make([]error, len(generation))

		var g errgroup.Group
		for i, m := range generation {
			if m.IsComplete() {
				// Units already submitted finish on their own; their
				// results are discarded.
				p.tracer.endRound(span, 0, 0, true, nil)
				return m, true, round - 1, nil
			}
			g.Go(func() error {
				taskStart := time.Now()
				err := p.pool.Do(rctx, func() error {
					local, err := refineLocal(rctx, p.refiner, p.selector, round, m)
					results[i] = local
					return err
				})
				p.opts.metricsCollector.RecordTask(time.Since(taskStart), err)
				errs[i] = err
				return err
			})
		}

		if err := g.Wait(); err != nil {
			err = roundError(round, errs)
			p.tracer.endRound(span, 0, 0, false, err)
			return zero, false, round - 1, err
		}

		merged := merge.New[C](len(results))
		kept := 0
		for _, local := range results {
			kept += len(local)
			merged.Add(slices.Values(local))
		}

		if kept == 0 {
			log.LogEmptyFrontier(rctx, round, len(generation))
			p.tracer.endRound(span, 0, 0, false, nil)
			return zero, false, round - 1, nil
		}

		next, err := p.selector.SelectGlobal(merged.All())
		if err != nil {
			err = domainError(round, StageSelectGlobal, err)
			p.tracer.endRound(span, kept, 0, false, err)
			return zero, false, round - 1, err
		}

		p.tracer.endRound(span, kept, len(next), false, nil)
		log.LogRound(rctx, round, len(generation), kept, len(next))
		p.opts.metricsCollector.RecordRound(len(generation), kept, len(next), time.Since(began))
		generation = next
	}
}

func roundError(round int, errs []error) error {
	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	return &RoundError{Round: round, Failed: failed, cause: errors.Join(errs...)}
}
