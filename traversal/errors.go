package traversal

import "errors"

var (
	// ErrUndefinedLabel is returned when select, where, back or addE
	// references a step label that no path entry carries.
	ErrUndefinedLabel = errors.New("undefined step label")

	// ErrUndefinedSideEffectKey is returned when a side-effect key is read
	// before anything declared it.
	ErrUndefinedSideEffectKey = errors.New("undefined side-effect key")

	// ErrIncomparableTypes is returned when an ordering predicate or
	// comparator is evaluated against values of incompatible types.
	ErrIncomparableTypes = errors.New("incomparable types")

	// ErrTimeLimitExceeded is returned by the pull that crosses a
	// traversal's time limit.
	ErrTimeLimitExceeded = errors.New("traversal time limit exceeded")

	// ErrTraversalLocked is returned when steps are added to a traversal
	// that has already been optimized for iteration.
	ErrTraversalLocked = errors.New("traversal is locked")

	// ErrInvalidArgument is returned for malformed step arguments at
	// construction time and for values a step cannot operate on.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoSuchElement is returned by Next when the traversal is exhausted.
	ErrNoSuchElement = errors.New("no such element")
)
