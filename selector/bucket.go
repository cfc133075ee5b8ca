package selector

import (
	"fmt"
	"iter"
	"slices"

	"github.com/hupe1980/widening"
	"github.com/hupe1980/widening/rng"
)

// Assigner maps a candidate to one of k buckets.
type Assigner[C any] interface {
	// Assign returns the bucket of the i-th candidate of a selection call,
	// in [0, k).
	Assign(c C, i, k int) int
}

// AssignerFunc adapts a plain function to the Assigner interface.
type AssignerFunc[C any] func(c C, i, k int) int

// Assign implements Assigner.
func (f AssignerFunc[C]) Assign(c C, i, k int) int { return f(c, i, k) }

// RandomAssigner draws a bucket uniformly per candidate.
func RandomAssigner[C any](src rng.Source) Assigner[C] {
	src = rng.OrDefault(src)
	return AssignerFunc[C](func(_ C, _, k int) int {
		return src.IntN(k)
	})
}

// HashAssigner puts a candidate into bucket hash(c) mod k. Equal content
// lands in the same bucket, so the result does not depend on arrival order.
func HashAssigner[C any](hash func(C) uint64) Assigner[C] {
	return AssignerFunc[C](func(c C, _, k int) int {
		return int(hash(c) % uint64(k))
	})
}

// RoundRobinAssigner fills buckets in turn. Combined with WithShuffle it
// spreads candidates evenly over buckets at random.
func RoundRobinAssigner[C any]() Assigner[C] {
	return AssignerFunc[C](func(_ C, i, k int) int {
		return i % k
	})
}

type bucketOptions[C any] struct {
	equal    func(a, b C) bool
	shuffle  rng.Source
	onShrink ShrinkHandler
	fillUp   bool
	fanout   int
}

// BucketOption configures a Bucket selector.
type BucketOption[C any] func(*bucketOptions[C])

// WithDedup rejects a candidate that is equal to one already kept in any
// bucket.
func WithDedup[C any](equal func(a, b C) bool) BucketOption[C] {
	return func(o *bucketOptions[C]) {
		o.equal = equal
	}
}

// WithShuffle buffers the input and shuffles it before assigning buckets.
func WithShuffle[C any](src rng.Source) BucketOption[C] {
	return func(o *bucketOptions[C]) {
		o.shuffle = rng.OrDefault(src)
	}
}

// WithShrinkHandler installs a handler that is called when fewer than
// min(n, k) candidates survive. Without one, shrinkage is silent.
func WithShrinkHandler[C any](h ShrinkHandler) BucketOption[C] {
	return func(o *bucketOptions[C]) {
		o.onShrink = h
	}
}

// WithFanout assigns candidates to f*k buckets instead of k. The least
// populated buckets are then merged pairwise, keeping the better champion,
// until k remain. Values below 2 disable it.
func WithFanout[C any](f int) BucketOption[C] {
	return func(o *bucketOptions[C]) {
		o.fanout = f
	}
}

// Bucket partitions candidates into k buckets and keeps the best candidate
// of each. Within a bucket a newcomer replaces the champion only if it is
// strictly better, so the first of several equal candidates wins. Empty
// buckets are dropped from the result, which is ordered by bucket.
type Bucket[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]] struct {
	k        int
	assigner Assigner[C]
	opts     bucketOptions[C]
}

// NewBucket creates a bucket selector.
func NewBucket[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](
	k int,
	assigner Assigner[C],
	optFns ...BucketOption[C],
) (*Bucket[S, M, C], error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if assigner == nil {
		return nil, ErrNilAssigner
	}
	b := &Bucket[S, M, C]{k: k, assigner: assigner}
	for _, fn := range optFns {
		fn(&b.opts)
	}
	return b, nil
}

// NewBalancedBucket creates a bucket selector that shuffles its input and
// deals it round-robin, so every bucket receives the same number of
// candidates up to one.
func NewBalancedBucket[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](
	k int,
	src rng.Source,
	optFns ...BucketOption[C],
) (*Bucket[S, M, C], error) {
	return NewBucket[S, M](k, RoundRobinAssigner[C](), append([]BucketOption[C]{WithShuffle[C](src)}, optFns...)...)
}

// K returns the number of buckets.
func (b *Bucket[S, M, C]) K() int { return b.k }

// SelectLocal implements widening.Selector.
func (b *Bucket[S, M, C]) SelectLocal(candidates iter.Seq[C]) ([]C, error) {
	return b.pick(candidates)
}

// SelectGlobal implements widening.Selector.
func (b *Bucket[S, M, C]) SelectGlobal(candidates iter.Seq[C]) ([]M, error) {
	kept, err := b.pick(candidates)
	if err != nil {
		return nil, err
	}
	return materialize[S, M](kept), nil
}

// slot is one bucket during selection. idx is the arrival index of the
// champion, count the number of candidates assigned to the bucket.
type slot[C any] struct {
	champion C
	filled   bool
	idx      int
	count    int
	order    int
}

func (b *Bucket[S, M, C]) pick(candidates iter.Seq[C]) ([]C, error) {
	var buf []C
	if b.opts.shuffle != nil || b.opts.fillUp {
		var done C
		var ok bool
		buf, done, ok = buffer[S, M](candidates)
		if ok {
			return []C{done}, nil
		}
		if b.opts.shuffle != nil {
			rng.Shuffle(b.opts.shuffle, buf)
		}
		candidates = slices.Values(buf)
	}

	width := b.k
	if b.opts.fanout > 1 {
		width *= b.opts.fanout
	}

	slots := make([]slot[C], width)
	n := 0
	for c := range candidates {
		if c.IsComplete() {
			return []C{c}, nil
		}
		bucket := b.assigner.Assign(c, n, width)
		i := n
		n++
		if bucket < 0 || bucket >= width {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrBucketRange, bucket, width)
		}
		s := &slots[bucket]
		s.count++
		if s.filled && compare[S, M](c, s.champion) >= 0 {
			continue
		}
		if b.opts.equal != nil && b.duplicate(slots, c) {
			continue
		}
		*s = slot[C]{champion: c, filled: true, idx: i, count: s.count, order: bucket}
	}

	filled := slices.DeleteFunc(slots, func(s slot[C]) bool { return !s.filled })
	if len(filled) > b.k {
		filled = b.merge(filled)
	}

	kept := make([]C, 0, b.k)
	for _, s := range filled {
		kept = append(kept, s.champion)
	}

	want := min(n, b.k)
	if b.opts.fillUp && len(kept) < want {
		kept = b.fill(kept, filled, buf, want)
	}
	if len(kept) < want && b.opts.onShrink != nil {
		if err := b.opts.onShrink(len(kept), want); err != nil {
			return nil, err
		}
	}
	return kept, nil
}

// merge folds the two least populated buckets into one until k remain. The
// result is ordered by the lowest bucket index of each merged group.
func (b *Bucket[S, M, C]) merge(filled []slot[C]) []slot[C] {
	for len(filled) > b.k {
		slices.SortStableFunc(filled, func(x, y slot[C]) int {
			if x.count != y.count {
				return x.count - y.count
			}
			return x.order - y.order
		})
		x, y := filled[0], filled[1]
		if compare[S, M](y.champion, x.champion) < 0 {
			x.champion, x.idx = y.champion, y.idx
		}
		x.count += y.count
		x.order = min(x.order, y.order)
		filled[1] = x
		filled = filled[1:]
	}
	slices.SortFunc(filled, func(x, y slot[C]) int { return x.order - y.order })
	return filled
}

// fill tops kept up to want with the best candidates that lost their
// bucket, skipping duplicates when dedup is on.
func (b *Bucket[S, M, C]) fill(kept []C, filled []slot[C], buf []C, want int) []C {
	taken := make([]bool, len(buf))
	for _, s := range filled {
		taken[s.idx] = true
	}
	rest := make([]C, 0, len(buf)-len(filled))
	for i, c := range buf {
		if !taken[i] {
			rest = append(rest, c)
		}
	}
	slices.SortStableFunc(rest, compare[S, M, C])

	for _, c := range rest {
		if len(kept) == want {
			break
		}
		if b.opts.equal != nil && slices.ContainsFunc(kept, func(k C) bool { return b.opts.equal(k, c) }) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func (b *Bucket[S, M, C]) duplicate(slots []slot[C], c C) bool {
	for _, s := range slots {
		if s.filled && b.opts.equal(s.champion, c) {
			return true
		}
	}
	return false
}
