package selector

import (
	"fmt"

	"github.com/hupe1980/widening"
	"github.com/hupe1980/widening/codec"
	"github.com/hupe1980/widening/rng"
)

// Selector kinds understood by Build.
const (
	KindTopK      = "topk"
	KindGreedy    = "greedy"
	KindBucket    = "bucket"
	KindReservoir = "reservoir"
	KindDiverse   = "diverse"
	KindErosion   = "erosion"
	KindCombined  = "combined"
	KindSequence  = "sequence"
	KindKMedoid   = "kmedoid"
)

// Bucket assignment modes.
const (
	AssignRandom   = "random"
	AssignHash     = "hash"
	AssignBalanced = "balanced"
)

// Shrink policies.
const (
	ShrinkSilent = "silent"
	ShrinkError  = "fail"
	ShrinkWarn   = "log"
	ShrinkFill   = "fill"
)

// Spec describes a selector declaratively, for example
//
//	{"kind":"bucket","k":8,"assign":"hash","dedup":true,"on_shrink":"log"}
//
// Fields that do not apply to Kind are ignored.
type Spec struct {
	Kind string `json:"kind" yaml:"kind"`
	K    int    `json:"k,omitempty" yaml:"k,omitempty"`

	// Seed makes randomized selectors reproducible. Unset means rng.Global.
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// Bucket options.
	Assign   string `json:"assign,omitempty" yaml:"assign,omitempty"`
	Dedup    bool   `json:"dedup,omitempty" yaml:"dedup,omitempty"`
	OnShrink string `json:"on_shrink,omitempty" yaml:"on_shrink,omitempty"`
	Fanout   int    `json:"fanout,omitempty" yaml:"fanout,omitempty"`

	// Diversity thresholds for local and global selection.
	Local  float64 `json:"local,omitempty" yaml:"local,omitempty"`
	Global float64 `json:"global,omitempty" yaml:"global,omitempty"`

	// Erosion radius.
	Beta float64 `json:"beta,omitempty" yaml:"beta,omitempty"`

	// Members of combined and sequence selectors.
	Members []Spec `json:"members,omitempty" yaml:"members,omitempty"`

	// Rounds is the length of this member's turn inside a sequence.
	Rounds int `json:"rounds,omitempty" yaml:"rounds,omitempty"`
}

// Domain supplies the domain functions a Spec may refer to.
type Domain[C any] struct {
	// Similarity is the exact similarity, used globally.
	Similarity Similarity[C]
	// LocalSimilarity is a cheaper approximation used for local diversity.
	// It defaults to Similarity.
	LocalSimilarity Similarity[C]
	// Hash is the content hash used by hash buckets.
	Hash func(C) uint64
	// Equal is content equality, used for dedup.
	Equal func(a, b C) bool
	// Logger receives shrink warnings.
	Logger *widening.Logger
}

// Decode parses a Spec with c. A nil c uses codec.Default.
func Decode(c codec.Codec, data []byte) (Spec, error) {
	if c == nil {
		c = codec.Default
	}
	var s Spec
	if err := c.Unmarshal(data, &s); err != nil {
		return Spec{}, fmt.Errorf("selector: decode %s spec: %w", c.Name(), err)
	}
	return s, nil
}

// Build creates the selector described by spec.
func Build[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](spec Spec, d Domain[C]) (widening.Selector[S, M, C], error) {
	switch spec.Kind {
	case KindTopK:
		return asSelector[S, M, C](NewTopK[S, M, C](spec.K))
	case KindGreedy:
		return NewGreedy[S, M, C](), nil
	case KindBucket:
		return buildBucket[S, M](spec, d)
	case KindReservoir:
		return asSelector[S, M, C](NewReservoir[S, M, C](spec.K, spec.source()))
	case KindDiverse:
		if d.Similarity == nil {
			return nil, fmt.Errorf("%w: %s needs a similarity", ErrMissingDomainFunc, spec.Kind)
		}
		local := d.LocalSimilarity
		if local == nil {
			local = d.Similarity
		}
		return asSelector[S, M, C](NewDiverseTopK[S, M](spec.K,
			Threshold[C]{Min: spec.Local, Similarity: local},
			Threshold[C]{Min: spec.Global, Similarity: d.Similarity},
		))
	case KindErosion:
		if d.Similarity == nil {
			return nil, fmt.Errorf("%w: %s needs a similarity", ErrMissingDomainFunc, spec.Kind)
		}
		return asSelector[S, M, C](NewScoreErosion[S, M](spec.K, spec.Beta, d.Similarity))
	case KindKMedoid:
		if d.Similarity == nil {
			return nil, fmt.Errorf("%w: %s needs a similarity", ErrMissingDomainFunc, spec.Kind)
		}
		return asSelector[S, M, C](NewKMedoid[S, M](spec.K, d.Similarity, spec.source()))
	case KindCombined:
		members, err := buildMembers[S, M](spec.Members, d)
		if err != nil {
			return nil, err
		}
		var equal func(a, b C) bool
		if spec.Dedup {
			equal = d.Equal
		}
		return asSelector[S, M, C](NewCombined(equal, members...))
	case KindSequence:
		members, err := buildMembers[S, M](spec.Members, d)
		if err != nil {
			return nil, err
		}
		plan := make([]Step[S, M, C], len(members))
		for i, m := range members {
			plan[i] = Step[S, M, C]{Selector: m, Rounds: spec.Members[i].Rounds}
		}
		return asSelector[S, M, C](NewSequence(plan...))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSelector, spec.Kind)
	}
}

func buildMembers[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](specs []Spec, d Domain[C]) ([]widening.Selector[S, M, C], error) {
	members := make([]widening.Selector[S, M, C], 0, len(specs))
	for i, s := range specs {
		m, err := Build[S, M](s, d)
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		members = append(members, m)
	}
	return members, nil
}

func buildBucket[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M]](spec Spec, d Domain[C]) (widening.Selector[S, M, C], error) {
	var opts []BucketOption[C]
	if spec.Dedup {
		if d.Equal == nil {
			return nil, fmt.Errorf("%w: dedup needs an equality", ErrMissingDomainFunc)
		}
		opts = append(opts, WithDedup(d.Equal))
	}
	switch spec.OnShrink {
	case "", ShrinkSilent:
	case ShrinkError:
		opts = append(opts, WithShrinkHandler[C](ShrinkFail))
	case ShrinkWarn:
		opts = append(opts, WithShrinkHandler[C](ShrinkLog(d.Logger)))
	case ShrinkFill:
		opts = append(opts, WithFillUp[C]())
	default:
		return nil, fmt.Errorf("selector: unknown shrink policy %q", spec.OnShrink)
	}

	if spec.Fanout > 1 {
		opts = append(opts, WithFanout[C](spec.Fanout))
	}

	switch spec.Assign {
	case "", AssignRandom:
		return asSelector[S, M, C](NewBucket[S, M](spec.K, RandomAssigner[C](spec.source()), opts...))
	case AssignHash:
		if d.Hash == nil {
			return nil, fmt.Errorf("%w: hash buckets need a hash", ErrMissingDomainFunc)
		}
		return asSelector[S, M, C](NewBucket[S, M](spec.K, HashAssigner(d.Hash), opts...))
	case AssignBalanced:
		return asSelector[S, M, C](NewBalancedBucket[S, M](spec.K, spec.source(), opts...))
	default:
		return nil, fmt.Errorf("selector: unknown bucket assignment %q", spec.Assign)
	}
}

// asSelector keeps a failed constructor from leaking a typed nil.
func asSelector[S widening.Score[S], M widening.Model[S], C widening.Candidate[S, M], T widening.Selector[S, M, C]](sel T, err error) (widening.Selector[S, M, C], error) {
	if err != nil {
		return nil, err
	}
	return sel, nil
}

func (s Spec) source() rng.Source {
	if s.Seed == nil {
		return rng.Global()
	}
	return rng.New(*s.Seed)
}
