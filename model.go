package widening

import (
	"context"
	"iter"
)

// Score is a domain-defined quality measure. Lower is better.
//
// Compare must describe a total order: two scores compare equal only when
// their contents are indistinguishable, so the domain has to fold a
// deterministic, content-derived tie-break into it. Selectors rely on this to
// produce results that do not depend on arrival order.
type Score[S any] interface {
	// Compare returns a negative value if the receiver is better than o,
	// a positive value if it is worse, and zero if both are equal.
	Compare(o S) int

	// Value is the primary magnitude of the score. It must be non-negative,
	// and strictly positive for incomplete models when score erosion is
	// used. Weighted selectors scale it; ranking selectors ignore it.
	Value() float64
}

// Model is an immutable, possibly partial, solution.
type Model[S Score[S]] interface {
	Score() S
	IsComplete() bool
}

// Candidate is a refinement result that has not been turned into a Model yet.
// Materialize is only called for candidates that survive both selection stages.
type Candidate[S Score[S], M Model[S]] interface {
	Score() S
	// IsComplete mirrors the completion status of the Model it would produce.
	IsComplete() bool
	Materialize() M
}

// Refiner expands an incomplete Model into a finite sequence of candidates.
//
// Refine must be a pure function of the model's content. The engine never
// refines a complete model. The parallel calculator invokes Refine
// concurrently on distinct models.
type Refiner[S Score[S], M Model[S], C Candidate[S, M]] interface {
	Refine(ctx context.Context, model M) (iter.Seq[C], error)
}

// RefinerFunc adapts a plain function to the Refiner interface.
type RefinerFunc[S Score[S], M Model[S], C Candidate[S, M]] func(ctx context.Context, model M) (iter.Seq[C], error)

// Refine implements Refiner.
func (f RefinerFunc[S, M, C]) Refine(ctx context.Context, model M) (iter.Seq[C], error) {
	return f(ctx, model)
}

// Selector decides which candidates survive a round.
//
// SelectLocal bounds the branching of a single model before the merge.
// SelectGlobal bounds the width of the next generation across all models.
// Both must accept an empty sequence and both must return a complete
// candidate alone as soon as they see one.
type Selector[S Score[S], M Model[S], C Candidate[S, M]] interface {
	SelectLocal(candidates iter.Seq[C]) ([]C, error)
	SelectGlobal(candidates iter.Seq[C]) ([]M, error)
}
