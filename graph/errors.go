package graph

import "errors"

var (
	// ErrNotFound is returned when an element lookup fails or when a
	// removed element handle is used.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateIdentifier is returned when an element is inserted with
	// an explicit id that is already used by another element of the same
	// kind.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrUnknownEdgeVertices is returned when an edge endpoint does not
	// resolve to a live vertex of the same graph.
	ErrUnknownEdgeVertices = errors.New("unknown out and / or in vertex")

	// ErrIndexInconsistency signals that a key index disagrees with the
	// property values it caches. It is a defect, never a retryable state.
	ErrIndexInconsistency = errors.New("key index inconsistency")

	// ErrInvalidKey is returned for empty or reserved property keys.
	ErrInvalidKey = errors.New("invalid property key")

	// ErrUnknownKind is returned for element kinds other than vertex and
	// edge.
	ErrUnknownKind = errors.New("unknown element kind")
)
