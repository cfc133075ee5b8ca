package selector

import (
	"iter"
	"math"

	"github.com/hupe1980/widening"
)

// Similarity returns how alike two candidates are, in [0, 1].
// It must be safe for concurrent use.
type Similarity[C any] func(a, b C) float64

// clamp maps a similarity into [0, 1]; domain code may be off by rounding.
func (s Similarity[C]) clamp(a, b C) float64 {
	v := s(a, b)
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func compare[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](a, b C) int {
	return a.Score().Compare(b.Score())
}

func materialize[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](cs []C) []M {
	out := make([]M, len(cs))
	for i, c := range cs {
		out[i] = c.Materialize()
	}
	return out
}

// buffer collects seq for selectors that need several passes. If a complete
// candidate shows up, buffering stops and it is returned with ok == true.
func buffer[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](seq iter.Seq[C]) (buf []C, done C, ok bool) {
	for c := range seq {
		if c.IsComplete() {
			return nil, c, true
		}
		buf = append(buf, c)
	}
	return buf, done, false
}
