package memory

import "github.com/mycok/uGraph/graph"

// Static and compile-time check to ensure elementIterator implements
// graph.ElementIterator interface.
var _ graph.ElementIterator = (*elementIterator)(nil)

// elementIterator is a graph.ElementIterator implementation for the
// in-memory graph. It walks a snapshot of element handles taken under the
// graph's read lock; the handles themselves stay live.
type elementIterator struct {
	elements     []graph.Element
	currentIndex int
}

// Next loads the next item, returns false when no more elements
// are available.
func (i *elementIterator) Next() bool {
	if i.currentIndex >= len(i.elements) {
		return false
	}

	i.currentIndex++

	return true
}

// Error returns the last error encountered by the iterator.
func (i *elementIterator) Error() error {
	return nil
}

// Close releases any resources allocated to the iterator.
func (i *elementIterator) Close() error {
	return nil
}

// Element returns the currently fetched element.
func (i *elementIterator) Element() graph.Element {
	return i.elements[i.currentIndex-1]
}
