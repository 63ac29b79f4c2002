package framework

import "errors"

// Sentinel errors shared by the core packages. Callers match them with errors.Is;
// the core wraps them with the offending index or value where that helps.
var (
	// ErrObjectiveCount is returned when a solution's objective vector does not
	// have the length the caller (archive, ranking) expects.
	ErrObjectiveCount = errors.New("moea: objective vector length mismatch")

	// ErrInvalidObjectives is returned when the number of objectives is not positive.
	ErrInvalidObjectives = errors.New("moea: number of objectives must be positive")

	// ErrInvalidCapacity is returned when an archive is built with a capacity below 1.
	ErrInvalidCapacity = errors.New("moea: archive capacity must be at least 1")

	// ErrInvalidBisections is returned when an adaptive grid is built with fewer than 1 bisection.
	ErrInvalidBisections = errors.New("moea: grid bisections must be at least 1")

	// ErrGridTooLarge is returned when bisections*objectives does not fit a hypercube index.
	ErrGridTooLarge = errors.New("moea: grid has too many hypercubes")

	// ErrNilSolution is returned when a nil solution is passed where one is required.
	ErrNilSolution = errors.New("moea: nil solution")

	// ErrEmptyFront is returned by quality indicators given an empty front.
	ErrEmptyFront = errors.New("moea: empty front")
)
