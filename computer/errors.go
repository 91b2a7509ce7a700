package computer

import "errors"

var (
	// ErrComputeFault is returned when a vertex program fails or panics
	// while executing a superstep. The run is aborted.
	ErrComputeFault = errors.New("vertex program fault")

	// ErrInvalidMessageDestination is returned when a message destination
	// does not resolve to a vertex of the run.
	ErrInvalidMessageDestination = errors.New("invalid message destination")

	// ErrUnknownMemoryKey is returned when a vertex program aggregates
	// into a global memory key that has no registered aggregator while
	// the run has no combiner.
	ErrUnknownMemoryKey = errors.New("unknown global memory key")
)
