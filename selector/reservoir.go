package selector

import (
	"iter"

	"github.com/hupe1980/widening"
	"github.com/hupe1980/widening/rng"
)

// Reservoir keeps a uniform random subset of k candidates from a stream of
// unknown length (Algorithm R). Scores are ignored.
type Reservoir[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]] struct {
	k   int
	src rng.Source
}

// NewReservoir creates a reservoir selector drawing from src. A nil src
// uses rng.Global.
func NewReservoir[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](k int, src rng.Source) (*Reservoir[S, M, C], error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	return &Reservoir[S, M, C]{k: k, src: rng.OrDefault(src)}, nil
}

// K returns the sample size.
func (r *Reservoir[S, M, C]) K() int { return r.k }

// SelectLocal implements widening.Selector.
func (r *Reservoir[S, M, C]) SelectLocal(candidates iter.Seq[C]) ([]C, error) {
	return r.pick(candidates), nil
}

// SelectGlobal implements widening.Selector.
func (r *Reservoir[S, M, C]) SelectGlobal(candidates iter.Seq[C]) ([]M, error) {
	return materialize[S, M](r.pick(candidates)), nil
}

func (r *Reservoir[S, M, C]) pick(candidates iter.Seq[C]) []C {
	sample := make([]C, 0, min(r.k, 64))
	seen := 0
	for c := range candidates {
		if c.IsComplete() {
			return []C{c}
		}
		seen++
		if len(sample) < r.k {
			sample = append(sample, c)
			continue
		}
		// The seen-th candidate replaces a random slot with probability k/seen.
		if j := r.src.IntN(seen); j < r.k {
			sample[j] = c
		}
	}
	return sample
}
