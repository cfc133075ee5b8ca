package selector

import (
	"iter"

	"github.com/hupe1980/widening"
	"github.com/hupe1980/widening/rng"
)

const (
	// medoidTolerance stops the iteration once the centers moved less than
	// this in total.
	medoidTolerance = 0.01
	medoidMaxIter   = 100
)

// KMedoid clusters candidates around k medoids and keeps the best candidate
// of every cluster.
//
// The distance between two candidates is 1 - sim(a, b). Initial centers are
// the first k mutually distinct candidates of a shuffled copy of the input.
// Each iteration assigns every candidate to its nearest center (ties go to
// the lower center) and moves every center to the cluster member with the
// smallest distance sum. Empty clusters are dropped, so fewer than k
// candidates may be returned.
type KMedoid[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]] struct {
	k   int
	sim Similarity[C]
	src rng.Source
}

// NewKMedoid creates a k-medoid selector. A nil src uses rng.Global.
func NewKMedoid[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](
	k int,
	sim Similarity[C],
	src rng.Source,
) (*KMedoid[S, M, C], error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if sim == nil {
		return nil, ErrNilSimilarity
	}
	return &KMedoid[S, M, C]{k: k, sim: sim, src: rng.OrDefault(src)}, nil
}

// K returns the number of clusters.
func (km *KMedoid[S, M, C]) K() int { return km.k }

// SelectLocal implements widening.Selector.
func (km *KMedoid[S, M, C]) SelectLocal(candidates iter.Seq[C]) ([]C, error) {
	return km.pick(candidates), nil
}

// SelectGlobal implements widening.Selector.
func (km *KMedoid[S, M, C]) SelectGlobal(candidates iter.Seq[C]) ([]M, error) {
	return materialize[S, M](km.pick(candidates)), nil
}

func (km *KMedoid[S, M, C]) pick(candidates iter.Seq[C]) []C {
	buf, done, ok := buffer[S, M](candidates)
	if ok {
		return []C{done}
	}
	if len(buf) == 0 {
		return nil
	}
	rng.Shuffle(km.src, buf)

	dist := func(i, j int) float64 { return 1 - km.sim.clamp(buf[i], buf[j]) }

	centers := make([]int, 0, km.k)
	for i := range buf {
		if len(centers) == km.k {
			break
		}
		distinct := true
		for _, c := range centers {
			if dist(c, i) == 0 {
				distinct = false
				break
			}
		}
		if distinct {
			centers = append(centers, i)
		}
	}

	var clusters [][]int
	for range medoidMaxIter {
		clusters = make([][]int, len(centers))
		for i := range buf {
			nearest, best := 0, dist(centers[0], i)
			for ci := 1; ci < len(centers); ci++ {
				if d := dist(centers[ci], i); d < best {
					nearest, best = ci, d
				}
			}
			clusters[nearest] = append(clusters[nearest], i)
		}

		moved := 0.0
		for ci, members := range clusters {
			if len(members) == 0 {
				continue
			}
			m := medoid(members, dist)
			moved += dist(centers[ci], m)
			centers[ci] = m
		}
		if moved < medoidTolerance {
			break
		}
	}

	out := make([]C, 0, len(clusters))
	for _, members := range clusters {
		if len(members) == 0 {
			continue
		}
		best := members[0]
		for _, i := range members[1:] {
			if compare[S, M](buf[i], buf[best]) < 0 {
				best = i
			}
		}
		out = append(out, buf[best])
	}
	return out
}

// medoid returns the member with the smallest distance sum to all others.
func medoid(members []int, dist func(i, j int) float64) int {
	best, bestSum := members[0], -1.0
	for _, i := range members {
		sum := 0.0
		for _, j := range members {
			sum += dist(i, j)
		}
		if bestSum < 0 || sum < bestSum {
			best, bestSum = i, sum
		}
	}
	return best
}
