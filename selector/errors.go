package selector

import "errors"

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("selector: k must be positive")

	// ErrInvalidBeta is returned when the erosion radius is not a positive finite number.
	ErrInvalidBeta = errors.New("selector: beta must be positive")

	// ErrInvalidThreshold is returned when a dissimilarity threshold is outside [0, 1].
	ErrInvalidThreshold = errors.New("selector: threshold must be within [0, 1]")

	// ErrNilSimilarity is returned when a diversity-aware selector has no similarity function.
	ErrNilSimilarity = errors.New("selector: similarity function must not be nil")

	// ErrNilAssigner is returned when a bucket selector has no bucket assigner.
	ErrNilAssigner = errors.New("selector: bucket assigner must not be nil")

	// ErrBucketRange is returned when an assigner maps a candidate outside [0, k).
	ErrBucketRange = errors.New("selector: bucket out of range")

	// ErrNoSelectors is returned when a composite selector has no members.
	ErrNoSelectors = errors.New("selector: at least one member selector is required")

	// ErrFrontierShrunk is returned by ShrinkFail when fewer candidates
	// survive than the selector could have kept.
	ErrFrontierShrunk = errors.New("selector: frontier shrunk below width")

	// ErrUnknownSelector is returned when a Spec names an unknown kind.
	ErrUnknownSelector = errors.New("selector: unknown selector kind")

	// ErrMissingDomainFunc is returned when a Spec needs a domain function
	// (similarity, hash) that the Domain does not provide.
	ErrMissingDomainFunc = errors.New("selector: missing domain function")
)
