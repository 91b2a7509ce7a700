package traversal

import (
	"time"

	"github.com/mycok/uGraph/graph"
)

// add appends step, recording the first failure as a construction error.
func (t *Traversal) add(step Step) *Traversal {
	if err := t.AddStep(step); err != nil && t.err == nil {
		t.err = err
	}

	return t
}

// adopt attaches a nested traversal built outside a step constructor.
func (t *Traversal) adopt(sub *Traversal) bool {
	if sub == nil {
		t.invalid("nil nested traversal")

		return false
	}

	sub.parent = t
	if sub.err != nil && t.err == nil {
		t.err = sub.err
	}

	return t.err == nil
}

func (t *Traversal) lastStep() Step {
	if len(t.steps) == 0 {
		return nil
	}

	return t.end()
}

func (t *Traversal) requireSubs(name string, subs []*Traversal) bool {
	if len(subs) == 0 {
		t.invalid("%s requires at least one traversal", name)

		return false
	}

	for _, sub := range subs {
		if sub == nil {
			t.invalid("%s: nil traversal", name)

			return false
		}
	}

	return true
}

// V starts the traversal from the vertices with the given ids, or from
// every vertex when no id is given.
func (t *Traversal) V(ids ...string) *Traversal {
	if len(t.steps) > 0 {
		return t.invalid("V must be the first step")
	}

	return t.add(newGraphStep(graph.VertexKind, ids...))
}

// E starts the traversal from the edges with the given ids, or from every
// edge when no id is given.
func (t *Traversal) E(ids ...string) *Traversal {
	if len(t.steps) > 0 {
		return t.invalid("E must be the first step")
	}

	return t.add(newGraphStep(graph.EdgeKind, ids...))
}

// Inject emits values ahead of the traversers arriving from upstream.
func (t *Traversal) Inject(values ...interface{}) *Traversal {
	return t.add(newInjectStep(values...))
}

// Map replaces each value with the result of fn.
func (t *Traversal) Map(fn func(*Traverser) (interface{}, error)) *Traversal {
	if fn == nil {
		return t.invalid("map: nil function")
	}

	return t.add(newMapStep("MapStep", fn))
}

// FlatMap replaces each value with every value returned by fn.
func (t *Traversal) FlatMap(fn func(*Traverser) ([]interface{}, error)) *Traversal {
	if fn == nil {
		return t.invalid("flatMap: nil function")
	}

	return t.add(newFlatMapStep("FlatMapStep", fn))
}

func (t *Traversal) Identity() *Traversal { return t.add(newIdentityStep()) }

func (t *Traversal) Out(labels ...string) *Traversal  { return t.To(graph.Out, labels...) }
func (t *Traversal) In(labels ...string) *Traversal   { return t.To(graph.In, labels...) }
func (t *Traversal) Both(labels ...string) *Traversal { return t.To(graph.Both, labels...) }

// To moves to the adjacent vertices in dir, one per incident edge.
func (t *Traversal) To(dir graph.Direction, labels ...string) *Traversal {
	return t.add(newVertexStep(dir, false, labels...))
}

func (t *Traversal) OutE(labels ...string) *Traversal  { return t.ToE(graph.Out, labels...) }
func (t *Traversal) InE(labels ...string) *Traversal   { return t.ToE(graph.In, labels...) }
func (t *Traversal) BothE(labels ...string) *Traversal { return t.ToE(graph.Both, labels...) }

// ToE moves to the incident edges in dir.
func (t *Traversal) ToE(dir graph.Direction, labels ...string) *Traversal {
	return t.add(newVertexStep(dir, true, labels...))
}

func (t *Traversal) OutV() *Traversal  { return t.add(newEdgeVertexStep(graph.Out)) }
func (t *Traversal) InV() *Traversal   { return t.add(newEdgeVertexStep(graph.In)) }
func (t *Traversal) BothV() *Traversal { return t.add(newEdgeVertexStep(graph.Both)) }

// OtherV moves from an edge to the endpoint the traverser did not arrive
// from.
func (t *Traversal) OtherV() *Traversal { return t.add(newOtherVStep()) }

// Properties emits the properties with the given keys, or all of them.
func (t *Traversal) Properties(keys ...string) *Traversal {
	return t.add(newPropertiesStep(false, keys...))
}

// Values emits the property values with the given keys, or all of them.
func (t *Traversal) Values(keys ...string) *Traversal {
	return t.add(newPropertiesStep(true, keys...))
}

func (t *Traversal) ID() *Traversal    { return t.add(newIDStep()) }
func (t *Traversal) Label() *Traversal { return t.add(newLabelStep()) }
func (t *Traversal) Path() *Traversal  { return t.add(newPathStep()) }
func (t *Traversal) Sack() *Traversal  { return t.add(newSackStep()) }

// Back returns to the value tagged with label.
func (t *Traversal) Back(label string) *Traversal {
	if label == "" {
		return t.invalid("back: empty label")
	}

	return t.add(newBackStep(label))
}

// Select emits the value tagged with one label, or a map of the values
// tagged with several.
func (t *Traversal) Select(labels ...string) *Traversal {
	if len(labels) == 0 {
		return t.invalid("select requires at least one label")
	}

	return t.add(newSelectStep(labels...))
}

func (t *Traversal) Unfold() *Traversal { return t.add(newUnfoldStep()) }
func (t *Traversal) Fold() *Traversal   { return t.add(newFoldStep()) }

// FoldWith reduces every value into seed with fn.
func (t *Traversal) FoldWith(seed interface{}, fn func(acc, value interface{}) interface{}) *Traversal {
	if fn == nil {
		return t.invalid("fold: nil function")
	}

	return t.add(newFoldWithStep(seed, fn))
}

func (t *Traversal) Count() *Traversal { return t.add(newCountStep()) }
func (t *Traversal) Sum() *Traversal   { return t.add(newSumStep()) }
func (t *Traversal) Mean() *Traversal  { return t.add(newMeanStep()) }
func (t *Traversal) Min() *Traversal   { return t.add(newExtremeStep("MinGlobalStep", -1)) }
func (t *Traversal) Max() *Traversal   { return t.add(newExtremeStep("MaxGlobalStep", 1)) }

func (t *Traversal) CountLocal() *Traversal {
	return t.add(newLocalReduceStep("CountLocalStep", localCount))
}

func (t *Traversal) SumLocal() *Traversal {
	return t.add(newLocalReduceStep("SumLocalStep", localSum))
}

func (t *Traversal) MeanLocal() *Traversal {
	return t.add(newLocalReduceStep("MeanLocalStep", localMean))
}

func (t *Traversal) MinLocal() *Traversal {
	return t.add(newLocalReduceStep("MinLocalStep", localExtreme(-1)))
}

func (t *Traversal) MaxLocal() *Traversal {
	return t.add(newLocalReduceStep("MaxLocalStep", localExtreme(1)))
}

// Order sorts the stream by natural order.
func (t *Traversal) Order() *Traversal { return t.add(newOrderStep(Global, nil)) }

// OrderBy sorts the stream with comparator.
func (t *Traversal) OrderBy(comparator Comparator) *Traversal {
	return t.add(newOrderStep(Global, comparator))
}

// OrderLocal sorts the collection held by each traverser. A nil comparator
// selects natural order.
func (t *Traversal) OrderLocal(comparator Comparator) *Traversal {
	return t.add(newOrderStep(Local, comparator))
}

// Local runs sub against each traverser in isolation.
func (t *Traversal) Local(sub *Traversal) *Traversal {
	if !t.requireSubs("local", []*Traversal{sub}) {
		return t
	}

	return t.add(newLocalStep(sub))
}

// Filter keeps the traversers for which fn reports true.
func (t *Traversal) Filter(fn func(*Traverser) (bool, error)) *Traversal {
	if fn == nil {
		return t.invalid("filter: nil function")
	}

	return t.add(newFilterStep("FilterStep", fn))
}

// Has keeps elements whose key property equals value.
func (t *Traversal) Has(key string, value interface{}) *Traversal {
	return t.HasP(key, Eq(value))
}

// HasP keeps elements whose key property satisfies p.
func (t *Traversal) HasP(key string, p P) *Traversal {
	if key == "" {
		return t.invalid("has: empty key")
	}

	return t.add(newHasStep(HasContainer{Accessor: PropertyAccessor, Key: key, Predicate: p}))
}

// HasLabel keeps elements carrying one of the labels.
func (t *Traversal) HasLabel(labels ...string) *Traversal {
	if len(labels) == 0 {
		return t.invalid("hasLabel requires at least one label")
	}

	return t.add(newHasStep(HasContainer{Accessor: LabelAccessor, Predicate: Within(stringsToValues(labels)...)}))
}

// HasID keeps elements with one of the ids.
func (t *Traversal) HasID(ids ...string) *Traversal {
	if len(ids) == 0 {
		return t.invalid("hasId requires at least one id")
	}

	return t.add(newHasStep(HasContainer{Accessor: IDAccessor, Predicate: Within(stringsToValues(ids)...)}))
}

// HasNot keeps elements without the key.
func (t *Traversal) HasNot(key string) *Traversal {
	if key == "" {
		return t.invalid("hasNot: empty key")
	}

	return t.add(newHasStep(HasContainer{Accessor: KeyAbsentAccessor, Key: key}))
}

// HasKey keeps properties with one of the keys, or elements holding any of
// them.
func (t *Traversal) HasKey(keys ...string) *Traversal {
	if len(keys) == 0 {
		return t.invalid("hasKey requires at least one key")
	}

	return t.add(newPropertyKeyStep(keys...))
}

// HasValue keeps properties with one of the values, or elements holding any
// of them.
func (t *Traversal) HasValue(values ...interface{}) *Traversal {
	if len(values) == 0 {
		return t.invalid("hasValue requires at least one value")
	}

	return t.add(newPropertyValueStep(values...))
}

// HasTraversal keeps traversers for which sub yields a result.
func (t *Traversal) HasTraversal(sub *Traversal) *Traversal {
	if !t.requireSubs("has", []*Traversal{sub}) {
		return t
	}

	return t.add(newTraversalFilterStep(filterAnd, sub))
}

// HasNotTraversal keeps traversers for which sub yields nothing.
func (t *Traversal) HasNotTraversal(sub *Traversal) *Traversal {
	if !t.requireSubs("hasNot", []*Traversal{sub}) {
		return t
	}

	return t.add(newTraversalFilterStep(filterNot, sub))
}

// Is keeps values equal to value.
func (t *Traversal) Is(value interface{}) *Traversal { return t.IsP(Eq(value)) }

// IsP keeps values satisfying p.
func (t *Traversal) IsP(p P) *Traversal { return t.add(newIsStep(p)) }

// Where tests the value tagged with startLabel, or the current value when
// startLabel is empty, against p. Every string argument of p names a label
// and is replaced by the value tagged with it, so Where("a", Eq("marko"))
// fails with ErrUndefinedLabel unless a step is labeled "marko". Compare
// against string literals with IsP or Has instead.
func (t *Traversal) Where(startLabel string, p P) *Traversal {
	return t.add(newWhereStep(startLabel, p))
}

// WhereTraversal keeps traversers for which sub yields a result.
func (t *Traversal) WhereTraversal(sub *Traversal) *Traversal {
	if !t.requireSubs("where", []*Traversal{sub}) {
		return t
	}

	return t.add(newTraversalFilterStep(filterAnd, sub))
}

// And keeps traversers for which every sub yields a result.
func (t *Traversal) And(subs ...*Traversal) *Traversal {
	if !t.requireSubs("and", subs) {
		return t
	}

	return t.add(newTraversalFilterStep(filterAnd, subs...))
}

// Or keeps traversers for which some sub yields a result.
func (t *Traversal) Or(subs ...*Traversal) *Traversal {
	if !t.requireSubs("or", subs) {
		return t
	}

	return t.add(newTraversalFilterStep(filterOr, subs...))
}

func (t *Traversal) Dedup() *Traversal      { return t.add(newDedupStep(Global)) }
func (t *Traversal) DedupLocal() *Traversal { return t.add(newDedupStep(Local)) }

// Except drops values contained in values.
func (t *Traversal) Except(values ...interface{}) *Traversal {
	return t.add(newCollectionFilterStep(false, "", values...))
}

// ExceptKey drops values contained in the collection tagged with key, as
// a path label or a side effect.
func (t *Traversal) ExceptKey(key string) *Traversal {
	if key == "" {
		return t.invalid("except: empty key")
	}

	return t.add(newCollectionFilterStep(false, key))
}

// Retain keeps values contained in values.
func (t *Traversal) Retain(values ...interface{}) *Traversal {
	return t.add(newCollectionFilterStep(true, "", values...))
}

// RetainKey keeps values contained in the collection tagged with key.
func (t *Traversal) RetainKey(key string) *Traversal {
	if key == "" {
		return t.invalid("retain: empty key")
	}

	return t.add(newCollectionFilterStep(true, key))
}

// Range keeps the stream positions [low, high). A negative high leaves
// the window open.
func (t *Traversal) Range(low, high int64) *Traversal { return t.rangeStep(Global, low, high) }

// RangeLocal windows the collection held by each traverser.
func (t *Traversal) RangeLocal(low, high int64) *Traversal { return t.rangeStep(Local, low, high) }

// Limit keeps the first n positions. A negative n keeps everything.
func (t *Traversal) Limit(n int64) *Traversal { return t.rangeStep(Global, 0, n) }

// LimitLocal keeps the first n items of each traverser's collection.
func (t *Traversal) LimitLocal(n int64) *Traversal { return t.rangeStep(Local, 0, n) }

func (t *Traversal) rangeStep(scope Scope, low, high int64) *Traversal {
	if low < 0 {
		return t.invalid("range: negative low bound %d", low)
	}

	if high >= 0 && high < low {
		return t.invalid("range: high bound %d below low bound %d", high, low)
	}

	return t.add(newRangeStep(scope, low, high))
}

func (t *Traversal) SimplePath() *Traversal { return t.add(newPathFilterStep(true)) }
func (t *Traversal) CyclicPath() *Traversal { return t.add(newPathFilterStep(false)) }

// Coin keeps each traverser with the given probability.
func (t *Traversal) Coin(probability float64) *Traversal {
	if probability < 0 || probability > 1 {
		return t.invalid("coin: probability %v outside [0,1]", probability)
	}

	return t.add(newCoinStep(probability))
}

// Sample keeps a uniform random sample of n traversers.
func (t *Traversal) Sample(n int) *Traversal { return t.sample(Global, n) }

// SampleLocal samples n items from each traverser's collection.
func (t *Traversal) SampleLocal(n int) *Traversal { return t.sample(Local, n) }

func (t *Traversal) sample(scope Scope, n int) *Traversal {
	if n < 0 {
		return t.invalid("sample: negative amount %d", n)
	}

	return t.add(newSampleStep(scope, n))
}

// TimeLimit fails the traversal once the step has been pulling for longer
// than limit.
func (t *Traversal) TimeLimit(limit time.Duration) *Traversal {
	if limit <= 0 {
		return t.invalid("timeLimit: non-positive limit %s", limit)
	}

	return t.add(newTimeLimitStep(limit))
}

// SideEffect calls fn for each traverser and forwards it unchanged.
func (t *Traversal) SideEffect(fn func(*Traverser) error) *Traversal {
	if fn == nil {
		return t.invalid("sideEffect: nil function")
	}

	return t.add(newSideEffectStep("SideEffectStep", fn))
}

// Aggregate collects every upstream value into the list side effect key
// before forwarding anything.
func (t *Traversal) Aggregate(key string) *Traversal {
	if key == "" {
		return t.invalid("aggregate: empty key")
	}

	return t.add(newAggregateStep(key))
}

// Store appends each value to the list side effect key as it passes.
func (t *Traversal) Store(key string) *Traversal {
	if key == "" {
		return t.invalid("store: empty key")
	}

	return t.add(newStoreStep(key))
}

// Group groups traversers with grouping. With an empty key it is a barrier
// emitting the group map; otherwise it fills the side effect key and
// forwards every traverser.
func (t *Traversal) Group(key string, grouping Grouping) *Traversal {
	if key == "" {
		return t.add(newGroupMapStep(grouping))
	}

	return t.add(newGroupStep(key, grouping))
}

// GroupCount counts traversers per keyFn result, or per value when keyFn
// is nil. The key selects the side effect form as for Group.
func (t *Traversal) GroupCount(key string, keyFn func(*Traverser) (interface{}, error)) *Traversal {
	if key == "" {
		return t.add(newGroupCountMapStep(keyFn))
	}

	return t.add(newGroupCountStep(key, keyFn))
}

// Tree builds a prefix tree of traverser paths. The key selects the side
// effect form as for Group.
func (t *Traversal) Tree(key string) *Traversal {
	if key == "" {
		return t.add(newTreeMapStep())
	}

	return t.add(newTreeStep(key))
}

// SackUpdate folds each value into the traverser's sack with fn.
func (t *Traversal) SackUpdate(fn func(sack, value interface{}) interface{}) *Traversal {
	if fn == nil {
		return t.invalid("sack: nil operator")
	}

	return t.add(newSackUpdateStep(fn, ""))
}

// SackFromProperty folds the key property of each element into the sack.
func (t *Traversal) SackFromProperty(fn func(sack, value interface{}) interface{}, key string) *Traversal {
	if fn == nil || key == "" {
		return t.invalid("sack: nil operator or empty key")
	}

	return t.add(newSackUpdateStep(fn, key))
}

// AddE adds an edge labeled edgeLabel between each vertex and the vertex
// tagged with stepLabel, in dir from the current vertex's point of view.
func (t *Traversal) AddE(dir graph.Direction, edgeLabel, stepLabel string, props graph.Properties) *Traversal {
	if stepLabel == "" {
		return t.invalid("addE: empty step label")
	}

	return t.add(newAddEdgeStep(dir, edgeLabel, stepLabel, props))
}

func (t *Traversal) AddOutE(edgeLabel, stepLabel string, props graph.Properties) *Traversal {
	return t.AddE(graph.Out, edgeLabel, stepLabel, props)
}

func (t *Traversal) AddInE(edgeLabel, stepLabel string, props graph.Properties) *Traversal {
	return t.AddE(graph.In, edgeLabel, stepLabel, props)
}

func (t *Traversal) AddBothE(edgeLabel, stepLabel string, props graph.Properties) *Traversal {
	return t.AddE(graph.Both, edgeLabel, stepLabel, props)
}

// Cap drains the traversal and emits the side effect key, or a map of the
// side effects when several keys are given.
func (t *Traversal) Cap(keys ...string) *Traversal {
	if len(keys) == 0 {
		return t.invalid("cap requires at least one key")
	}

	return t.add(newCapStep(keys...))
}

// Branch routes each traverser to the options registered with Option for
// the key fn returns.
func (t *Traversal) Branch(fn func(*Traverser) (interface{}, error)) *Traversal {
	if fn == nil {
		return t.invalid("branch: nil function")
	}

	return t.add(newBranchStep(fn))
}

// ChooseOptions routes each traverser to the options registered with
// Option for the first value branch yields.
func (t *Traversal) ChooseOptions(branch *Traversal) *Traversal {
	if !t.requireSubs("choose", []*Traversal{branch}) {
		return t
	}

	return t.add(newTraversalBranchStep(branch))
}

// Choose routes traversers for which cond yields a result into ifTrue and
// the others into ifFalse.
func (t *Traversal) Choose(cond, ifTrue, ifFalse *Traversal) *Traversal {
	if !t.requireSubs("choose", []*Traversal{cond, ifTrue, ifFalse}) {
		return t
	}

	return t.add(newChooseStep(cond, ifTrue, ifFalse))
}

// Option registers sub for key on the preceding Branch or ChooseOptions.
func (t *Traversal) Option(key interface{}, sub *Traversal) *Traversal {
	if t.prepared {
		if t.err == nil {
			t.err = ErrTraversalLocked
		}

		return t
	}

	branch, ok := t.lastStep().(*BranchStep)
	if !ok {
		return t.invalid("option must follow branch or choose")
	}

	if !t.adopt(sub) {
		return t
	}

	branch.AddOption(key, sub)

	return t
}

// Union emits the results of every sub for each traverser.
func (t *Traversal) Union(subs ...*Traversal) *Traversal {
	if !t.requireSubs("union", subs) {
		return t
	}

	return t.add(newUnionStep(subs...))
}

// Coalesce emits the results of the first sub yielding anything.
func (t *Traversal) Coalesce(subs ...*Traversal) *Traversal {
	if !t.requireSubs("coalesce", subs) {
		return t
	}

	return t.add(newCoalesceStep(subs...))
}

// Repeat loops each traverser through body. Until, Emit and Times declared
// right before Repeat are checked before each pass; declared right after,
// they are checked on the body's output.
func (t *Traversal) Repeat(body *Traversal) *Traversal {
	if body == nil {
		return t.invalid("repeat: nil body")
	}

	s := t.pendingRepeat
	t.pendingRepeat = nil

	if s == nil {
		s = newRepeatStep()
	}

	s.body = body

	return t.add(s)
}

// repeatModulator returns the repeat an until, emit or times applies to and
// whether it precedes the body.
func (t *Traversal) repeatModulator() (*RepeatStep, bool) {
	if t.pendingRepeat == nil {
		if last, ok := t.lastStep().(*RepeatStep); ok {
			return last, false
		}

		t.pendingRepeat = newRepeatStep()
	}

	return t.pendingRepeat, true
}

// Until stops looping once cond yields a result.
func (t *Traversal) Until(cond *Traversal) *Traversal {
	if t.prepared || !t.adopt(cond) {
		return t
	}

	s, first := t.repeatModulator()
	s.untilTraversal, s.untilFn, s.untilFirst = cond, nil, first

	return t
}

// UntilFunc stops looping once fn reports true.
func (t *Traversal) UntilFunc(fn func(*Traverser) bool) *Traversal {
	if fn == nil {
		return t.invalid("until: nil function")
	}

	if t.prepared {
		return t
	}

	s, first := t.repeatModulator()
	s.untilTraversal, s.untilFn, s.untilFirst = nil, fn, first

	return t
}

// Times bounds the loop at n passes through the body, overriding until.
func (t *Traversal) Times(n int) *Traversal {
	if n < 0 {
		return t.invalid("times: negative count %d", n)
	}

	if t.prepared {
		return t
	}

	s, _ := t.repeatModulator()
	s.times = n

	return t
}

// Emit emits every traverser the loop produces.
func (t *Traversal) Emit() *Traversal {
	if t.prepared {
		return t
	}

	s, first := t.repeatModulator()
	s.emitSet, s.emitFirst = true, first
	s.emitTraversal, s.emitFn = nil, nil

	return t
}

// EmitIf emits the loop traversers for which cond yields a result.
func (t *Traversal) EmitIf(cond *Traversal) *Traversal {
	if t.prepared || !t.adopt(cond) {
		return t
	}

	s, first := t.repeatModulator()
	s.emitSet, s.emitFirst = true, first
	s.emitTraversal, s.emitFn = cond, nil

	return t
}

// EmitFunc emits the loop traversers for which fn reports true.
func (t *Traversal) EmitFunc(fn func(*Traverser) bool) *Traversal {
	if fn == nil {
		return t.invalid("emit: nil function")
	}

	if t.prepared {
		return t
	}

	s, first := t.repeatModulator()
	s.emitSet, s.emitFirst = true, first
	s.emitTraversal, s.emitFn = nil, fn

	return t
}

// As labels the previous step. Labeling an empty traversal labels its
// start.
func (t *Traversal) As(label string) *Traversal {
	if label == "" {
		return t.invalid("as: empty label")
	}

	if t.prepared {
		if t.err == nil {
			t.err = ErrTraversalLocked
		}

		return t
	}

	if len(t.steps) == 0 {
		if t.add(newIdentityStep()); t.err != nil {
			return t
		}
	}

	t.end().AddLabel(label)

	return t
}

// WithSideEffect declares a side effect with its initial value and merge
// function.
func (t *Traversal) WithSideEffect(key string, initial interface{}, merge MergeFunc) *Traversal {
	if key == "" {
		return t.invalid("withSideEffect: empty key")
	}

	if t.parent != nil || t.memory == nil {
		return t.invalid("withSideEffect on a nested traversal")
	}

	t.memory.Register(key, initial, merge)

	return t
}

// WithSack gives every traverser a sack created by initial. Split copies a
// sack for branching steps and merge combines sacks of merged traversers;
// both may be nil.
func (t *Traversal) WithSack(initial func() interface{}, split func(interface{}) interface{}, merge MergeFunc) *Traversal {
	if initial == nil {
		return t.invalid("withSack: nil initial value")
	}

	if t.parent != nil || t.memory == nil {
		return t.invalid("withSack on a nested traversal")
	}

	t.memory.SetSack(initial, split, merge)

	return t
}

// WithPath tracks traverser paths even when no step needs them.
func (t *Traversal) WithPath() *Traversal {
	t.forcePath = true

	return t
}

// Barrier drains the upstream and merges equivalent traversers into bulk.
func (t *Traversal) Barrier() *Traversal { return t.add(newBarrierStep()) }

func stringsToValues(list []string) []interface{} {
	values := make([]interface{}, len(list))
	for i, s := range list {
		values[i] = s
	}

	return values
}
