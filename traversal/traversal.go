package traversal

import (
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/mycok/uGraph/graph"
)

// ExecutionMode selects the environment a traversal is prepared for.
type ExecutionMode int

const (
	// ModeStandard evaluates the traversal against the embedded store and
	// registers the index optimizer.
	ModeStandard ExecutionMode = iota
	// ModeComputer prepares the traversal for the graph computer, whose
	// vertices are not enumerated through the store's scan, so no
	// index-based rewrite is registered.
	ModeComputer
)

// String returns the mode name.
func (m ExecutionMode) String() string {
	if m == ModeComputer {
		return "computer"
	}

	return "standard"
}

// PredicateErrorHandler decides what happens when a predicate fails to
// evaluate for a traverser. Returning true drops the traverser and keeps
// iterating; returning false fails the traversal.
type PredicateErrorHandler func(err error, t *Traverser) bool

// Option configures a root traversal.
type Option func(*Traversal)

// WithLogger sets the logger used by the traversal and its optimizers.
func WithLogger(logger *logrus.Entry) Option {
	return func(t *Traversal) { t.logger = logger }
}

// WithClock sets the clock used by time-limited traversals.
func WithClock(clk clock.Clock) Option {
	return func(t *Traversal) { t.clock = clk }
}

// WithMode selects the execution mode.
func WithMode(mode ExecutionMode) Option {
	return func(t *Traversal) { t.mode = mode }
}

// WithPredicateErrorHandler installs a per-traverser predicate error
// handler.
func WithPredicateErrorHandler(handler PredicateErrorHandler) Option {
	return func(t *Traversal) { t.predicateErrorHandler = handler }
}

// WithRandom sets the random source used by coin and sample.
func WithRandom(rnd *rand.Rand) Option {
	return func(t *Traversal) { t.rnd = rnd }
}

// Traversal is an ordered chain of steps plus the memory they share.
// Optimizers rewrite the chain once, before the first pull; iteration then
// proceeds by demand from the last step. A Traversal must be iterated by
// one goroutine at a time.
type Traversal struct {
	id     string
	g      graph.Graph
	parent *Traversal
	steps  []Step
	starts *expandableIterator
	memory *Memory

	optimizers            *Optimizers
	mode                  ExecutionMode
	logger                *logrus.Entry
	clock                 clock.Clock
	rnd                   *rand.Rand
	predicateErrorHandler PredicateErrorHandler

	forcePath    bool
	pathTracking bool
	prepared     bool

	// pendingRepeat holds a repeat whose until or emit was declared
	// ahead of its body.
	pendingRepeat *RepeatStep

	// err holds the first construction error; failure holds the first
	// evaluation error, after which every pull returns it.
	err     error
	failure error

	pending     *Traverser
	pendingLeft int64
}

// New returns an empty root traversal over g. Add a start step (V, E or
// Inject) before iterating it.
func New(g graph.Graph, opts ...Option) *Traversal {
	t := &Traversal{
		id:         uuid.NewString(),
		g:          g,
		starts:     &expandableIterator{},
		memory:     newMemory(),
		optimizers: NewOptimizers(),
		mode:       ModeStandard,
		clock:      clock.WallClock,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.logger == nil {
		t.logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	if t.rnd == nil {
		t.rnd = rand.New(rand.NewSource(t.clock.Now().UnixNano()))
	}

	if t.mode == ModeStandard {
		t.optimizers.Register(NewIndexOptimizer())
	}

	t.logger = t.logger.WithField("traversal_id", t.id)

	return t
}

// Anon returns an anonymous traversal to be nested inside a step of
// another traversal. Its starts are fed by the enclosing step and its
// graph, memory and configuration are those of the enclosing root.
func Anon() *Traversal {
	return &Traversal{
		id:         uuid.NewString(),
		starts:     &expandableIterator{},
		optimizers: NewOptimizers(),
	}
}

// TraversalID returns the unique id of the traversal.
func (t *Traversal) TraversalID() string { return t.id }

// Graph returns the graph the root traversal runs against.
func (t *Traversal) Graph() graph.Graph { return t.root().g }

// Memory returns the side effects shared by the whole traversal tree.
func (t *Traversal) Memory() *Memory { return t.root().memory }

// Mode returns the execution mode of the root traversal.
func (t *Traversal) Mode() ExecutionMode { return t.root().mode }

// Logger returns the root traversal's logger.
func (t *Traversal) Logger() *logrus.Entry { return t.root().logger }

// Optimizers returns the optimizer registry applied before the first pull.
func (t *Traversal) Optimizers() *Optimizers { return t.optimizers }

// Err returns the first construction error, if any.
func (t *Traversal) Err() error { return t.err }

// Steps returns a copy of the current step list.
func (t *Traversal) Steps() []Step {
	return append([]Step(nil), t.steps...)
}

// String returns the step list.
func (t *Traversal) String() string {
	parts := make([]string, len(t.steps))
	for i, s := range t.steps {
		parts[i] = s.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func (t *Traversal) root() *Traversal {
	r := t
	for r.parent != nil {
		r = r.parent
	}

	return r
}

func (t *Traversal) fail(err error) error {
	if t.failure == nil {
		t.failure = err
	}

	return t.failure
}

// invalid records a construction error.
func (t *Traversal) invalid(format string, args ...interface{}) *Traversal {
	if t.err == nil {
		t.err = fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
	}

	return t
}

// AddStep appends a step. Steps cannot be added once the traversal has
// been prepared for iteration.
func (t *Traversal) AddStep(step Step) error {
	if t.prepared {
		return fmt.Errorf("add step %s: %w", step, ErrTraversalLocked)
	}

	if t.err != nil {
		return t.err
	}

	if t.pendingRepeat != nil {
		if _, ok := step.(*RepeatStep); !ok {
			return fmt.Errorf("%s declared without a following repeat: %w", t.pendingRepeat, ErrInvalidArgument)
		}
	}

	step.SetTraversal(t)

	if p, ok := step.(parentStep); ok {
		for _, child := range p.children() {
			child.parent = t
			if child.err != nil {
				t.err = child.err

				return child.err
			}
		}
	}

	t.steps = append(t.steps, step)

	return nil
}

// ReplaceSteps replaces steps[start:end] with replacement. It is meant for
// optimizers and is rejected once the traversal is prepared.
func (t *Traversal) ReplaceSteps(start, end int, replacement ...Step) error {
	if t.prepared {
		return ErrTraversalLocked
	}

	if start < 0 || end > len(t.steps) || start > end {
		return fmt.Errorf("replace steps [%d:%d] of %d: %w", start, end, len(t.steps), ErrInvalidArgument)
	}

	for _, step := range replacement {
		step.SetTraversal(t)
	}

	steps := make([]Step, 0, len(t.steps)-(end-start)+len(replacement))
	steps = append(steps, t.steps[:start]...)
	steps = append(steps, replacement...)
	steps = append(steps, t.steps[end:]...)
	t.steps = steps

	return nil
}

// Prepare applies the registered optimizers, decides whether paths are
// tracked, wires the steps together and locks the traversal. It runs at
// most once and is invoked by the first pull.
func (t *Traversal) Prepare() error {
	if t.prepared {
		return nil
	}

	if t.err != nil {
		return t.err
	}

	if t.pendingRepeat != nil {
		return fmt.Errorf("%s declared without a following repeat: %w", t.pendingRepeat, ErrInvalidArgument)
	}

	if t.parent == nil {
		for _, opt := range t.optimizers.List() {
			if err := opt.Optimize(t); err != nil {
				return fmt.Errorf("optimizer %s: %w", opt.Name(), err)
			}
		}

		t.pathTracking = t.forcePath || t.needsPath()
		t.registerMemory(t.memory)
	}

	if len(t.steps) == 0 {
		_ = t.AddStep(newIdentityStep())
	}

	t.prepared = true
	t.steps[0].SetStarts(t.starts)

	for i := 1; i < len(t.steps); i++ {
		t.steps[i].SetStarts(t.steps[i-1])
	}

	for _, step := range t.steps {
		if p, ok := step.(parentStep); ok {
			for _, child := range p.children() {
				child.parent = t
				if err := child.Prepare(); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (t *Traversal) needsPath() bool {
	for _, step := range t.steps {
		if len(step.Labels()) > 0 {
			return true
		}

		if p, ok := step.(pathRequirer); ok && p.requiresPath() {
			return true
		}

		if p, ok := step.(parentStep); ok {
			for _, child := range p.children() {
				if child.forcePath || child.needsPath() {
					return true
				}
			}
		}
	}

	return false
}

func (t *Traversal) registerMemory(m *Memory) {
	for _, step := range t.steps {
		if r, ok := step.(memoryRegistrar); ok {
			r.registerMemory(m)
		}

		if p, ok := step.(parentStep); ok {
			for _, child := range p.children() {
				child.registerMemory(m)
			}
		}
	}
}

func (t *Traversal) end() Step {
	return t.steps[len(t.steps)-1]
}

// feed resets a nested traversal and seeds it with a single traverser.
func (t *Traversal) feed(tr *Traverser) {
	for _, step := range t.steps {
		step.Reset()
	}

	t.starts.clear()
	t.starts.add(tr)
}

// HasNext reports whether another value is available.
func (t *Traversal) HasNext() (bool, error) {
	if t.failure != nil {
		return false, t.failure
	}

	if t.pendingLeft > 0 {
		return true, nil
	}

	if err := t.Prepare(); err != nil {
		return false, t.fail(err)
	}

	has, err := t.end().HasNext()
	if err != nil {
		return false, t.fail(err)
	}

	return has, nil
}

// NextTraverser returns the next traverser with its full bulk.
func (t *Traversal) NextTraverser() (*Traverser, error) {
	if t.pendingLeft > 0 {
		tr := t.pending.clone()
		tr.bulk = t.pendingLeft
		t.pending, t.pendingLeft = nil, 0

		return tr, nil
	}

	has, err := t.HasNext()
	if err != nil {
		return nil, err
	}

	if !has {
		return nil, ErrNoSuchElement
	}

	tr, err := t.end().Next()
	if err != nil {
		return nil, t.fail(err)
	}

	return tr, nil
}

// Next returns the next value. A traverser with bulk n yields its value n
// times.
func (t *Traversal) Next() (interface{}, error) {
	if t.pendingLeft > 0 {
		val := t.pending.value
		t.pendingLeft--

		if t.pendingLeft == 0 {
			t.pending = nil
		}

		return val, nil
	}

	tr, err := t.NextTraverser()
	if err != nil {
		return nil, err
	}

	if tr.bulk > 1 {
		t.pending, t.pendingLeft = tr, tr.bulk-1
	}

	return tr.value, nil
}

// ToList drains the traversal into a slice of values.
func (t *Traversal) ToList() ([]interface{}, error) {
	var list []interface{}

	for {
		has, err := t.HasNext()
		if err != nil {
			return list, err
		}

		if !has {
			return list, nil
		}

		val, err := t.Next()
		if err != nil {
			return list, err
		}

		list = append(list, val)
	}
}

// Iterate drains the traversal for its side effects, retaining no result.
func (t *Traversal) Iterate() error {
	t.pending, t.pendingLeft = nil, 0

	for {
		has, err := t.HasNext()
		if err != nil {
			return err
		}

		if !has {
			return nil
		}

		if _, err = t.end().Next(); err != nil {
			return t.fail(err)
		}
	}
}
