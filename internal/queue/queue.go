// Package queue implements the bounded heap behind exact top-k selection.
package queue

// Bounded keeps the best capacity items seen so far.
//
// Items are ranked by cmp (negative means "better"). The heap is a max-heap
// on that order, so the worst kept item sits at the root and can be compared
// and evicted in O(log k).
type Bounded[T any] struct {
	cmp      func(a, b T) int
	capacity int
	items    []T
}

// NewBounded creates a bounded heap. capacity must be positive.
func NewBounded[T any](capacity int, cmp func(a, b T) int) *Bounded[T] {
	return &Bounded[T]{
		cmp:      cmp,
		capacity: capacity,
		items:    make([]T, 0, min(capacity, 1024)),
	}
}

// Len returns the number of kept items.
func (pq *Bounded[T]) Len() int {
	return len(pq.items)
}

// Full reports whether the heap holds capacity items.
func (pq *Bounded[T]) Full() bool {
	return len(pq.items) >= pq.capacity
}

// Worst returns the worst kept item.
func (pq *Bounded[T]) Worst() (T, bool) {
	if len(pq.items) == 0 {
		var zero T
		return zero, false
	}
	return pq.items[0], true
}

// Offer adds item while the heap is not full. Once full, item replaces the
// worst kept item only if it is strictly better. It reports whether item was
// kept.
func (pq *Bounded[T]) Offer(item T) bool {
	if len(pq.items) < pq.capacity {
		pq.items = append(pq.items, item)
		pq.siftUp(len(pq.items) - 1)
		return true
	}
	if pq.cmp(item, pq.items[0]) >= 0 {
		return false
	}
	pq.items[0] = item
	pq.siftDown(0)
	return true
}

// PopWorst removes and returns the worst kept item.
func (pq *Bounded[T]) PopWorst() (T, bool) {
	var zero T
	n := len(pq.items)
	if n == 0 {
		return zero, false
	}
	root := pq.items[0]
	last := pq.items[n-1]
	pq.items[n-1] = zero
	pq.items = pq.items[:n-1]
	if n-1 > 0 {
		pq.items[0] = last
		pq.siftDown(0)
	}
	return root, true
}

// Drain empties the heap and returns its items ordered best first.
func (pq *Bounded[T]) Drain() []T {
	out := make([]T, len(pq.items))
	for i := len(out) - 1; i >= 0; i-- {
		out[i], _ = pq.PopWorst()
	}
	return out
}

// less orders the max-heap: i sits above j when it is worse.
func (pq *Bounded[T]) less(i, j int) bool {
	return pq.cmp(pq.items[i], pq.items[j]) > 0
}

func (pq *Bounded[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(i, p) {
			return
		}
		pq.items[i], pq.items[p] = pq.items[p], pq.items[i]
		i = p
	}
}

func (pq *Bounded[T]) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		worst := l
		r := l + 1
		if r < n && pq.less(r, l) {
			worst = r
		}
		if !pq.less(worst, i) {
			return
		}
		pq.items[i], pq.items[worst] = pq.items[worst], pq.items[i]
		i = worst
	}
}
