package selector

import (
	"iter"
	"math"

	"github.com/hupe1980/widening"
)

// ScoreErosion trades quality for diversity without a hard threshold.
//
// Every candidate starts with a penalty of 1. Each step picks the candidate
// with the lowest Score.Value() * penalty, then divides the penalty of every
// remaining candidate x by
//
//	1 - exp((sim(chosen, x) - 1) / beta)
//
// which is close to 0 for near-duplicates of the chosen candidate and close
// to 1 for unrelated ones. A factor of 0 makes the penalty infinite. Beta
// is the erosion radius: larger values penalize a wider neighbourhood.
//
// Erosion scales Score.Value(), so it needs values above zero: a candidate
// whose value is 0 keeps an eroded value of 0 however similar it is to the
// chosen ones, unless its penalty became infinite.
//
// Exactly min(k, n) distinct candidates are returned. Ties on the eroded
// value, including between infinitely penalized candidates, are broken by
// score and then by arrival order.
type ScoreErosion[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]] struct {
	k    int
	beta float64
	sim  Similarity[C]
}

// NewScoreErosion creates a score erosion selector.
func NewScoreErosion[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](
	k int,
	beta float64,
	sim Similarity[C],
) (*ScoreErosion[S, M, C], error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if !(beta > 0) || math.IsInf(beta, 1) {
		return nil, ErrInvalidBeta
	}
	if sim == nil {
		return nil, ErrNilSimilarity
	}
	return &ScoreErosion[S, M, C]{k: k, beta: beta, sim: sim}, nil
}

// K returns the selection width.
func (e *ScoreErosion[S, M, C]) K() int { return e.k }

// SelectLocal implements widening.Selector.
func (e *ScoreErosion[S, M, C]) SelectLocal(candidates iter.Seq[C]) ([]C, error) {
	return e.pick(candidates), nil
}

// SelectGlobal implements widening.Selector.
func (e *ScoreErosion[S, M, C]) SelectGlobal(candidates iter.Seq[C]) ([]M, error) {
	return materialize[S, M](e.pick(candidates)), nil
}

func (e *ScoreErosion[S, M, C]) pick(candidates iter.Seq[C]) []C {
	buf, done, ok := buffer[S, M](candidates)
	if ok {
		return []C{done}
	}
	want := min(e.k, len(buf))
	if want == 0 {
		return nil
	}

	penalty := make([]float64, len(buf))
	for i := range penalty {
		penalty[i] = 1
	}
	taken := make([]bool, len(buf))
	selected := make([]C, 0, want)

	for {
		best := e.next(buf, penalty, taken)
		taken[best] = true
		selected = append(selected, buf[best])
		if len(selected) == want {
			return selected
		}
		for i, c := range buf {
			if taken[i] {
				continue
			}
			f := 1 - math.Exp((e.sim.clamp(buf[best], c)-1)/e.beta)
			if f <= 0 {
				penalty[i] = math.Inf(1)
				continue
			}
			penalty[i] /= f
		}
	}
}

// next returns the index of the untaken candidate with the lowest eroded
// value. At least one candidate must be untaken.
func (e *ScoreErosion[S, M, C]) next(buf []C, penalty []float64, taken []bool) int {
	best := -1
	bestVal := 0.0
	for i, c := range buf {
		if taken[i] {
			continue
		}
		v := eroded(c.Score().Value(), penalty[i])
		if best < 0 || v < bestVal || (v == bestVal && compare[S, M](c, buf[best]) < 0) {
			best, bestVal = i, v
		}
	}
	return best
}

func eroded(value, penalty float64) float64 {
	if math.IsInf(penalty, 1) {
		return math.Inf(1)
	}
	v := value * penalty
	if math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}
