// Package widening provides a generic engine for widening search: an anytime
// local search that keeps a bounded frontier of partial solutions instead of
// exploring every refinement.
//
// The domain supplies four things: a Score with a total order, a Model (a
// possibly partial solution), a Candidate (a refinement that has not been
// built yet) and a Refiner that expands a model into candidates. A Selector
// from the selector package decides which candidates survive.
//
// # Rounds
//
// Each round refines every model of the current generation, bounds the
// branching of each model with SelectLocal, merges the survivors of all
// models and picks the next generation with SelectGlobal:
//
//	generation ──Refine──▶ candidates ──SelectLocal──▶ merge ──SelectGlobal──▶ next generation
//
// The run ends when a complete model shows up at the start of a round, or
// when a round produces no candidates at all.
//
// # Quick Start
//
//	in, _ := setcover.NewInstance(4, [][]uint32{{0, 1}, {1, 2}, {2, 3}, {0, 3}})
//	sel, _ := selector.NewTopK[setcover.Score, *setcover.Model, *setcover.Candidate](4)
//	calc, _ := widening.NewCalculator[setcover.Score, *setcover.Model, *setcover.Candidate](setcover.Refiner{}, sel)
//	cover, found, err := calc.Run(ctx, in.Empty())
//
// # Parallel Rounds
//
// ParallelCalculator refines and locally selects the models of a generation
// on a workpool.Pool. Global selection waits for all of them, and survivors
// are merged by model index, so deterministic domains get the same result as
// with Calculator:
//
//	pool := workpool.New(workpool.Config{Workers: 8})
//	calc, _ := widening.NewParallelCalculator[S, M, C](refiner, sel, pool)
//
// # Deferred Materialization
//
// Candidates only become models after surviving both selection stages, and
// the merge of per-model survivors is a lazy cursor. Expensive model
// construction is paid for the next generation only.
//
// # Observability
//
//   - Structured logging via WithLogger (log/slog)
//   - Metrics via WithMetricsCollector (BasicMetricsCollector, prom.Collector)
//   - OpenTelemetry spans per run and per round via WithTracerProvider
package widening
