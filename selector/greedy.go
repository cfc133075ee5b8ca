package selector

import (
	"iter"

	"github.com/hupe1980/widening"
)

// Greedy keeps the single best candidate. A complete candidate wins over any
// score.
type Greedy[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]] struct{}

// NewGreedy creates a greedy selector.
func NewGreedy[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]]() *Greedy[S, M, C] {
	return &Greedy[S, M, C]{}
}

// SelectLocal implements widening.Selector.
func (g *Greedy[S, M, C]) SelectLocal(candidates iter.Seq[C]) ([]C, error) {
	best, ok := g.pick(candidates)
	if !ok {
		return nil, nil
	}
	return []C{best}, nil
}

// SelectGlobal implements widening.Selector.
func (g *Greedy[S, M, C]) SelectGlobal(candidates iter.Seq[C]) ([]M, error) {
	best, ok := g.pick(candidates)
	if !ok {
		return nil, nil
	}
	return []M{best.Materialize()}, nil
}

func (g *Greedy[S, M, C]) pick(candidates iter.Seq[C]) (best C, ok bool) {
	for c := range candidates {
		if c.IsComplete() {
			return c, true
		}
		if !ok || compare[S, M](c, best) < 0 {
			best, ok = c, true
		}
	}
	return best, ok
}
