// Package merge combines candidate streams without materializing them.
package merge

import "iter"

// Cursor merges several finite sequences into one.
//
// All interleaves the sources round-robin: it pulls one element from the
// source at the head of its queue, re-queues that source at the tail and
// drops sources as soon as they are exhausted. The output order is a pure
// function of the order in which sources were added.
type Cursor[T any] struct {
	sources []iter.Seq[T]
}

// New creates a cursor with room for capacity sources.
func New[T any](capacity int) *Cursor[T] {
	return &Cursor[T]{sources: make([]iter.Seq[T], 0, capacity)}
}

// Add appends a source. Nil sources are ignored.
func (c *Cursor[T]) Add(seq iter.Seq[T]) {
	if seq == nil {
		return
	}
	c.sources = append(c.sources, seq)
}

// Len returns the number of sources.
func (c *Cursor[T]) Len() int {
	return len(c.sources)
}

// All returns the merged sequence. Elements are pulled lazily; a consumer
// that stops early leaves the remaining elements unevaluated.
func (c *Cursor[T]) All() iter.Seq[T] {
	switch len(c.sources) {
	case 0:
		return func(func(T) bool) {}
	case 1:
		return c.sources[0]
	}

	sources := c.sources
	return func(yield func(T) bool) {
		queue := make([]puller[T], 0, len(sources))
		for _, s := range sources {
			next, stop := iter.Pull(s)
			queue = append(queue, puller[T]{next: next, stop: stop})
		}
		defer func() {
			for _, p := range queue {
				p.stop()
			}
		}()

		for len(queue) > 0 {
			head := queue[0]
			v, ok := head.next()
			if !ok {
				head.stop()
				queue = queue[1:]
				continue
			}
			queue = append(queue[1:], head)
			if !yield(v) {
				return
			}
		}
	}
}

type puller[T any] struct {
	next func() (T, bool)
	stop func()
}
