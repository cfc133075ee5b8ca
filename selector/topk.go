package selector

import (
	"iter"

	"github.com/hupe1980/widening"
	"github.com/hupe1980/widening/internal/queue"
)

// TopK keeps the k best candidates by score, best first.
//
// The result is independent of arrival order: a bounded max-heap holds the
// k best seen so far and a newcomer only evicts the worst kept candidate if
// it is strictly better.
type TopK[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]] struct {
	k int
}

// NewTopK creates a top-k selector.
func NewTopK[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](k int) (*TopK[S, M, C], error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	return &TopK[S, M, C]{k: k}, nil
}

// K returns the selection width.
func (t *TopK[S, M, C]) K() int { return t.k }

// SelectLocal implements widening.Selector.
func (t *TopK[S, M, C]) SelectLocal(candidates iter.Seq[C]) ([]C, error) {
	return t.pick(candidates), nil
}

// SelectGlobal implements widening.Selector.
func (t *TopK[S, M, C]) SelectGlobal(candidates iter.Seq[C]) ([]M, error) {
	return materialize[S, M](t.pick(candidates)), nil
}

func (t *TopK[S, M, C]) pick(candidates iter.Seq[C]) []C {
	pq := queue.NewBounded(t.k, compare[S, M, C])
	for c := range candidates {
		if c.IsComplete() {
			return []C{c}
		}
		pq.Offer(c)
	}
	return pq.Drain()
}
