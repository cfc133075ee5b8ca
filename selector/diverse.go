package selector

import (
	"iter"
	"slices"

	"github.com/hupe1980/widening"
)

// Threshold is a minimum pairwise dissimilarity, 1 - Similarity, that
// selected candidates must keep from each other.
type Threshold[C any] struct {
	Min        float64
	Similarity Similarity[C]
}

func (t Threshold[C]) validate() error {
	if t.Similarity == nil {
		return ErrNilSimilarity
	}
	if !(t.Min >= 0 && t.Min <= 1) {
		return ErrInvalidThreshold
	}
	return nil
}

// DiverseTopK walks candidates best first and accepts one only if it is at
// least Min away from everything accepted so far, until k are accepted.
//
// Local and global selection take separate thresholds so that a cheap
// approximate similarity can prune per model and the exact one decides
// across models.
type DiverseTopK[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]] struct {
	k      int
	local  Threshold[C]
	global Threshold[C]
}

// NewDiverseTopK creates a diversity-filtered top-k selector.
func NewDiverseTopK[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](
	k int,
	local, global Threshold[C],
) (*DiverseTopK[S, M, C], error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if err := local.validate(); err != nil {
		return nil, err
	}
	if err := global.validate(); err != nil {
		return nil, err
	}
	return &DiverseTopK[S, M, C]{k: k, local: local, global: global}, nil
}

// K returns the selection width.
func (d *DiverseTopK[S, M, C]) K() int { return d.k }

// SelectLocal implements widening.Selector using the local threshold.
func (d *DiverseTopK[S, M, C]) SelectLocal(candidates iter.Seq[C]) ([]C, error) {
	return d.pick(candidates, d.local), nil
}

// SelectGlobal implements widening.Selector using the global threshold.
func (d *DiverseTopK[S, M, C]) SelectGlobal(candidates iter.Seq[C]) ([]M, error) {
	return materialize[S, M](d.pick(candidates, d.global)), nil
}

func (d *DiverseTopK[S, M, C]) pick(candidates iter.Seq[C], th Threshold[C]) []C {
	buf, done, ok := buffer[S, M](candidates)
	if ok {
		return []C{done}
	}
	slices.SortStableFunc(buf, compare[S, M, C])

	selected := make([]C, 0, min(d.k, len(buf)))
	for _, c := range buf {
		if d.farFromAll(selected, c, th) {
			selected = append(selected, c)
			if len(selected) == d.k {
				break
			}
		}
	}
	return selected
}

func (d *DiverseTopK[S, M, C]) farFromAll(selected []C, c C, th Threshold[C]) bool {
	for _, s := range selected {
		if 1-th.Similarity.clamp(s, c) < th.Min {
			return false
		}
	}
	return true
}
