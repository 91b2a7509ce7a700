package traversal

// TraverserIterator is the pull interface shared by steps and the start
// feeds of nested traversals. HasNext reports whether Next will return a
// traverser; errors raised while producing it surface from HasNext.
type TraverserIterator interface {
	HasNext() (bool, error)
	Next() (*Traverser, error)
}

// expandableIterator is the start feed of a nested traversal. The parent
// step pushes traversers into it before pulling from the nested end step.
type expandableIterator struct {
	queue []*Traverser
}

func (it *expandableIterator) add(t *Traverser) {
	it.queue = append(it.queue, t)
}

func (it *expandableIterator) clear() {
	it.queue = it.queue[:0]
}

func (it *expandableIterator) HasNext() (bool, error) {
	return len(it.queue) > 0, nil
}

func (it *expandableIterator) Next() (*Traverser, error) {
	if len(it.queue) == 0 {
		return nil, ErrNoSuchElement
	}

	t := it.queue[0]
	it.queue[0] = nil
	it.queue = it.queue[1:]

	return t, nil
}
