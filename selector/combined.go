package selector

import (
	"iter"
	"slices"
	"sync/atomic"

	"github.com/hupe1980/widening"
)

// Combined lets every member select independently from the same buffered
// input and concatenates their results in member order.
//
// If equal is non-nil, a candidate picked by several members during local
// selection is kept once.
type Combined[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]] struct {
	members []widening.Selector[S, M, C]
	equal   func(a, b C) bool
}

// NewCombined creates a composite selector. equal may be nil.
func NewCombined[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](
	equal func(a, b C) bool,
	members ...widening.Selector[S, M, C],
) (*Combined[S, M, C], error) {
	if len(members) == 0 {
		return nil, ErrNoSelectors
	}
	return &Combined[S, M, C]{members: slices.Clone(members), equal: equal}, nil
}

// SelectLocal implements widening.Selector.
func (c *Combined[S, M, C]) SelectLocal(candidates iter.Seq[C]) ([]C, error) {
	buf, done, ok := buffer[S, M](candidates)
	if ok {
		return []C{done}, nil
	}
	var out []C
	for _, m := range c.members {
		picked, err := m.SelectLocal(slices.Values(buf))
		if err != nil {
			return nil, err
		}
		out = c.appendUnique(out, picked)
	}
	return out, nil
}

// SelectGlobal implements widening.Selector. Each member runs its own
// global stage; models are not deduplicated.
func (c *Combined[S, M, C]) SelectGlobal(candidates iter.Seq[C]) ([]M, error) {
	buf, done, ok := buffer[S, M](candidates)
	if ok {
		return []M{done.Materialize()}, nil
	}
	var out []M
	for _, m := range c.members {
		picked, err := m.SelectGlobal(slices.Values(buf))
		if err != nil {
			return nil, err
		}
		out = append(out, picked...)
	}
	return out, nil
}

func (c *Combined[S, M, C]) appendUnique(out, picked []C) []C {
	if c.equal == nil {
		return append(out, picked...)
	}
	for _, p := range picked {
		if !slices.ContainsFunc(out, func(o C) bool { return c.equal(o, p) }) {
			out = append(out, p)
		}
	}
	return out
}

// Step is one entry of a Sequence plan.
type Step[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]] struct {
	Selector widening.Selector[S, M, C]
	// Rounds is how many consecutive rounds the selector is used for.
	// Values below 1 count as 1.
	Rounds int
}

// Sequence switches between selectors from round to round and starts over
// after the last step.
//
// A round ends with SelectGlobal, so only SelectGlobal advances the
// position. Unlike every other selector, a Sequence carries mutable state:
// it must not be shared by concurrent runs, whose rounds would interleave
// on one position. Use one Sequence per run, or Reset it between runs.
type Sequence[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]] struct {
	schedule []widening.Selector[S, M, C]
	round    atomic.Uint64
}

// NewSequence creates a rotating selector from plan.
func NewSequence[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](plan ...Step[S, M, C]) (*Sequence[S, M, C], error) {
	var schedule []widening.Selector[S, M, C]
	for _, step := range plan {
		if step.Selector == nil {
			return nil, widening.ErrNilSelector
		}
		for range max(step.Rounds, 1) {
			schedule = append(schedule, step.Selector)
		}
	}
	if len(schedule) == 0 {
		return nil, ErrNoSelectors
	}
	return &Sequence[S, M, C]{schedule: schedule}, nil
}

// Reset rewinds the sequence to its first step.
func (s *Sequence[S, M, C]) Reset() { s.round.Store(0) }

func (s *Sequence[S, M, C]) current() widening.Selector[S, M, C] {
	return s.schedule[s.round.Load()%uint64(len(s.schedule))]
}

// SelectLocal implements widening.Selector with the current step.
func (s *Sequence[S, M, C]) SelectLocal(candidates iter.Seq[C]) ([]C, error) {
	return s.current().SelectLocal(candidates)
}

// SelectGlobal implements widening.Selector with the current step and then
// moves to the next one.
func (s *Sequence[S, M, C]) SelectGlobal(candidates iter.Seq[C]) ([]M, error) {
	defer s.round.Add(1)
	return s.current().SelectGlobal(candidates)
}
