package traversal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Step is one stage of a traversal. A step pulls traversers from its
// starts only when it needs input to produce its own next traverser.
type Step interface {
	TraverserIterator

	// ID returns the unique id of this step instance.
	ID() string

	// Labels returns the labels attached with As.
	Labels() []string

	// AddLabel attaches a label to the step.
	AddLabel(label string)

	// Traversal returns the traversal owning the step.
	Traversal() *Traversal

	// SetTraversal records the owning traversal.
	SetTraversal(t *Traversal)

	// SetStarts wires the upstream iterator.
	SetStarts(starts TraverserIterator)

	// Reset drops any buffered traverser and per-run state.
	Reset()

	String() string
}

// parentStep is implemented by steps holding nested traversals.
type parentStep interface {
	children() []*Traversal
}

// pathRequirer is implemented by steps that read traverser paths.
type pathRequirer interface {
	requiresPath() bool
}

// Scope selects whether a windowing or reducing step operates across all
// traversers it sees or within the collection held by each traverser.
type Scope int

const (
	// Global operates across the traverser stream.
	Global Scope = iota
	// Local operates within a single traverser's collection value.
	Local
)

// String returns the scope name.
func (s Scope) String() string {
	if s == Local {
		return "local"
	}

	return "global"
}

// baseStep implements the bookkeeping shared by every step. Concrete
// steps embed it and install processNext, which returns the next
// traverser or nil once the step is exhausted.
type baseStep struct {
	id        string
	name      string
	labels    []string
	traversal *Traversal
	starts    TraverserIterator

	next        *Traverser
	processNext func() (*Traverser, error)
	onReset     func()
}

func newBaseStep(name string) *baseStep {
	return &baseStep{
		id:   uuid.NewString(),
		name: name,
	}
}

func (s *baseStep) ID() string                         { return s.id }
func (s *baseStep) Labels() []string                   { return append([]string(nil), s.labels...) }
func (s *baseStep) Traversal() *Traversal              { return s.traversal }
func (s *baseStep) SetTraversal(t *Traversal)          { s.traversal = t }
func (s *baseStep) SetStarts(starts TraverserIterator) { s.starts = starts }

func (s *baseStep) AddLabel(label string) {
	for _, l := range s.labels {
		if l == label {
			return
		}
	}

	s.labels = append(s.labels, label)
}

func (s *baseStep) HasNext() (bool, error) {
	if s.next != nil {
		return true, nil
	}

	t, err := s.processNext()
	if err != nil {
		return false, err
	}

	if t == nil {
		return false, nil
	}

	s.next = t

	return true, nil
}

func (s *baseStep) Next() (*Traverser, error) {
	has, err := s.HasNext()
	if err != nil {
		return nil, err
	}

	if !has {
		return nil, ErrNoSuchElement
	}

	t := s.next
	s.next = nil

	return t, nil
}

func (s *baseStep) Reset() {
	s.next = nil
	if s.onReset != nil {
		s.onReset()
	}
}

func (s *baseStep) String() string {
	if len(s.labels) == 0 {
		return s.name
	}

	return s.name + "@[" + strings.Join(s.labels, ",") + "]"
}

// pull returns the next upstream traverser, or nil when the upstream is
// exhausted.
func (s *baseStep) pull() (*Traverser, error) {
	if s.starts == nil {
		return nil, nil
	}

	has, err := s.starts.HasNext()
	if err != nil || !has {
		return nil, err
	}

	return s.starts.Next()
}

func (s *baseStep) memory() *Memory { return s.traversal.Memory() }

// emit derives a traverser carrying value from t.
func (s *baseStep) emit(t *Traverser, value interface{}) *Traverser {
	return t.split(value, s.labels, s.memory())
}

// pass forwards t unchanged apart from this step's labels.
func (s *baseStep) pass(t *Traverser) *Traverser {
	return t.labeled(s.labels)
}

// generate creates a fresh traverser for a value that does not derive
// from a single upstream traverser (start and reducing steps).
func (s *baseStep) generate(value interface{}, bulk int64) *Traverser {
	t := newTraverser(value, bulk)
	root := s.traversal.root()

	if root.pathTracking {
		t.path = NewPath().extend(value, s.labels)
	}

	t.sack = root.memory.initialSack()

	return t
}

// resolve returns the value tagged with label on t's path, falling back
// to the side effect of the same name.
func (s *baseStep) resolve(t *Traverser, label string) (interface{}, error) {
	if t.path != nil {
		if val, exists := t.path.Get(label); exists {
			return val, nil
		}
	}

	if s.memory().Exists(label) {
		return s.memory().Get(label)
	}

	return nil, fmt.Errorf("%s: label %q: %w", s.name, label, ErrUndefinedLabel)
}

// predicateFailed decides whether an evaluation error drops the current
// traverser or fails the traversal.
func (s *baseStep) predicateFailed(t *Traverser, err error) (bool, error) {
	handler := s.traversal.root().predicateErrorHandler
	if handler != nil && errors.Is(err, ErrIncomparableTypes) && handler(err, t) {
		return true, nil
	}

	return false, fmt.Errorf("%s: %w", s.name, err)
}

// test evaluates fn for t and routes evaluation errors through
// predicateFailed. A handled error reports false so that t is dropped.
func (s *baseStep) test(t *Traverser, fn func() (bool, error)) (bool, error) {
	ok, err := fn()
	if err == nil {
		return ok, nil
	}

	if _, err = s.predicateFailed(t, err); err != nil {
		return false, err
	}

	return false, nil
}
