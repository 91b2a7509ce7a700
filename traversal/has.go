package traversal

import (
	"fmt"

	"github.com/mycok/uGraph/graph"
)

// Accessor selects what part of an element a HasContainer tests.
type Accessor int

const (
	// PropertyAccessor tests the value of a property key.
	PropertyAccessor Accessor = iota
	// IDAccessor tests the element id.
	IDAccessor
	// LabelAccessor tests the element label.
	LabelAccessor
	// KeyExistsAccessor tests that a property key is present.
	KeyExistsAccessor
	// KeyAbsentAccessor tests that a property key is absent.
	KeyAbsentAccessor
)

// HasContainer is one condition of a has step.
type HasContainer struct {
	Accessor  Accessor
	Key       string
	Predicate P
}

// String returns the condition, e.g. name.eq(marko).
func (h HasContainer) String() string {
	switch h.Accessor {
	case IDAccessor:
		return "~id." + h.Predicate.String()
	case LabelAccessor:
		return "~label." + h.Predicate.String()
	case KeyExistsAccessor:
		return h.Key
	case KeyAbsentAccessor:
		return "!" + h.Key
	default:
		return h.Key + "." + h.Predicate.String()
	}
}

// isIndexable reports whether the container is an equality test on a
// property key, returning the tested value.
func (h HasContainer) isIndexable() (interface{}, bool) {
	if h.Accessor != PropertyAccessor {
		return nil, false
	}

	return h.Predicate.IsEq()
}

// Test evaluates the condition against an element. Values that are not
// elements never match.
func (h HasContainer) Test(v interface{}) (bool, error) {
	el, ok := v.(graph.Element)
	if !ok {
		return false, nil
	}

	switch h.Accessor {
	case IDAccessor:
		return h.Predicate.Test(el.ID())
	case LabelAccessor:
		return h.Predicate.Test(el.Label())
	case KeyExistsAccessor:
		_, exists := el.Property(h.Key)

		return exists, nil
	case KeyAbsentAccessor:
		_, exists := el.Property(h.Key)

		return !exists, nil
	case PropertyAccessor:
		val, exists := el.Property(h.Key)
		if !exists {
			return false, nil
		}

		ok, err := h.Predicate.Test(val)
		if err != nil {
			return false, fmt.Errorf("has(%s): %w", h, err)
		}

		return ok, nil
	default:
		return false, fmt.Errorf("has accessor %d: %w", h.Accessor, ErrInvalidArgument)
	}
}

func testAll(containers []HasContainer, v interface{}) (bool, error) {
	for _, h := range containers {
		ok, err := h.Test(v)
		if err != nil || !ok {
			return false, err
		}
	}

	return true, nil
}
