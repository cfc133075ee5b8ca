package widening

import (
	"errors"
	"fmt"
)

var (
	// ErrNilPool is returned when a parallel calculator is built without a worker pool.
	ErrNilPool = errors.New("worker pool must not be nil")

	// ErrNilRefiner is returned when a calculator is built without a refiner.
	ErrNilRefiner = errors.New("refiner must not be nil")

	// ErrNilSelector is returned when a calculator is built without a selector.
	ErrNilSelector = errors.New("selector must not be nil")
)

// Stage identifies the part of a round in which domain code failed.
type Stage string

const (
	StageRefine       Stage = "refine"
	StageSelectLocal  Stage = "select-local"
	StageSelectGlobal Stage = "select-global"
)

// DomainError reports a failure raised by refiner or selector code.
// The run is aborted and no partial result is returned.
//
// The original error can be accessed via errors.Unwrap.
type DomainError struct {
	Round int
	Stage Stage
	cause error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("round %d: %s failed: %v", e.Round, e.Stage, e.cause)
}

func (e *DomainError) Unwrap() error { return e.cause }

// RoundError aggregates the failures of all units of work of one parallel round.
// Each failed unit contributes a *DomainError (or a panic converted to an
// error) to the joined cause.
type RoundError struct {
	Round  int
	Failed int
	cause  error
}

func (e *RoundError) Error() string {
	return fmt.Sprintf("round %d: %d task(s) failed: %v", e.Round, e.Failed, e.cause)
}

func (e *RoundError) Unwrap() error { return e.cause }

func domainError(round int, stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &DomainError{Round: round, Stage: stage, cause: err}
}
