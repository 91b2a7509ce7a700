package traversal

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	check "gopkg.in/check.v1"

	"github.com/mycok/uGraph/graph"
	"github.com/mycok/uGraph/graph/store/memory"
	"github.com/mycok/uGraph/graph/toy"
)

var _ = check.Suite(new(TraversalTestSuite))

// Test registers the [check] library with the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

// TraversalTestSuite runs traversals against a fresh copy of the modern
// toy graph.
type TraversalTestSuite struct {
	g *memory.InMemoryGraph
}

func (s *TraversalTestSuite) SetUpTest(c *check.C) {
	s.g = memory.NewInMemoryGraph()
	c.Assert(toy.LoadModern(s.g), check.IsNil)
}

func (s *TraversalTestSuite) TestRepeatTimesPath(c *check.C) {
	g := memory.NewInMemoryGraph()
	c.Assert(toy.LoadKnowsChain(g, 3), check.IsNil)

	res, err := New(g).V("1").Repeat(Anon().Out("knows")).Times(2).Path().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 1)

	p, ok := res[0].(*Path)
	c.Assert(ok, check.Equals, true)
	c.Assert(elementIDs(c, p.Objects()), check.DeepEquals, []string{"1", "2", "3"})
}

func (s *TraversalTestSuite) TestLazyPull(c *check.C) {
	var pulled int

	tr := New(s.g).V().SideEffect(func(*Traverser) error {
		pulled++

		return nil
	})

	c.Assert(pulled, check.Equals, 0)

	_, err := tr.Next()
	c.Assert(err, check.IsNil)
	c.Assert(pulled, check.Equals, 1)

	_, err = tr.Next()
	c.Assert(err, check.IsNil)
	c.Assert(pulled, check.Equals, 2)
}

func (s *TraversalTestSuite) TestExhaustedTraversal(c *check.C) {
	tr := New(s.g).V("1")

	_, err := tr.Next()
	c.Assert(err, check.IsNil)

	has, err := tr.HasNext()
	c.Assert(err, check.IsNil)
	c.Assert(has, check.Equals, false)

	_, err = tr.Next()
	c.Assert(errors.Is(err, ErrNoSuchElement), check.Equals, true)
}

func (s *TraversalTestSuite) TestUnknownIDsProduceNothing(c *check.C) {
	res, err := New(s.g).V("1", "nope", "2").ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"1", "2"})
}

func (s *TraversalTestSuite) TestLockedAfterPrepare(c *check.C) {
	tr := New(s.g).V().ID()
	_, err := tr.ToList()
	c.Assert(err, check.IsNil)

	err = tr.AddStep(newIdentityStep())
	c.Assert(errors.Is(err, ErrTraversalLocked), check.Equals, true)

	// Modulating a locked traversal records the failure without breaking
	// the steps already prepared.
	tr.As("late")
	c.Assert(errors.Is(tr.Err(), ErrTraversalLocked), check.Equals, true)
}

func (s *TraversalTestSuite) TestConstructionErrors(c *check.C) {
	specs := []struct {
		descr string
		build func() *Traversal
	}{
		{"negative range", func() *Traversal { return New(s.g).V().Range(-1, 2) }},
		{"inverted range", func() *Traversal { return New(s.g).V().Range(5, 2) }},
		{"V after another step", func() *Traversal { return New(s.g).Inject(1).V() }},
		{"empty select", func() *Traversal { return New(s.g).V().Select() }},
		{"coin probability", func() *Traversal { return New(s.g).V().Coin(1.5) }},
		{"option without branch", func() *Traversal { return New(s.g).V().Option("x", Anon()) }},
		{"dangling until", func() *Traversal { return New(s.g).V().UntilFunc(func(*Traverser) bool { return true }).ID() }},
		{"invalid nested traversal", func() *Traversal { return New(s.g).V().Local(Anon().Limit(1).Range(-3, 0)) }},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s", specIndex, spec.descr)

		tr := spec.build()
		c.Assert(errors.Is(tr.Err(), ErrInvalidArgument), check.Equals, true)

		_, err := tr.ToList()
		c.Assert(errors.Is(err, ErrInvalidArgument), check.Equals, true)
	}
}

func (s *TraversalTestSuite) TestUndefinedLabelIsTerminal(c *check.C) {
	tr := New(s.g).V("1").As("a").Select("b")

	_, err := tr.Next()
	c.Assert(errors.Is(err, ErrUndefinedLabel), check.Equals, true)

	has, err := tr.HasNext()
	c.Assert(has, check.Equals, false)
	c.Assert(errors.Is(err, ErrUndefinedLabel), check.Equals, true)
}

func (s *TraversalTestSuite) TestIncomparableTypesFailsPull(c *check.C) {
	_, err := s.g.AddVertex("x", "person", graph.Properties{"age": "old"})
	c.Assert(err, check.IsNil)

	res, err := New(s.g).V().HasP("age", Gt(30)).ID().ToList()
	c.Assert(errors.Is(err, ErrIncomparableTypes), check.Equals, true)
	c.Assert(res, check.DeepEquals, []interface{}{"4", "6"})
}

func (s *TraversalTestSuite) TestPredicateErrorHandlerDropsTraverser(c *check.C) {
	_, err := s.g.AddVertex("x", "person", graph.Properties{"age": "old"})
	c.Assert(err, check.IsNil)

	var dropped []string
	handler := func(err error, t *Traverser) bool {
		dropped = append(dropped, t.Get().(graph.Element).ID())

		return true
	}

	res, err := New(s.g, WithPredicateErrorHandler(handler)).V().HasP("age", Gt(30)).ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"4", "6"})
	c.Assert(dropped, check.DeepEquals, []string{"x"})
}

func (s *TraversalTestSuite) TestTimeLimit(c *check.C) {
	logger, hook := test.NewNullLogger()
	clk := testclock.NewClock(time.Now())

	tr := New(s.g, WithClock(clk), WithLogger(logrus.NewEntry(logger))).
		Inject(1, 2, 3).TimeLimit(time.Second)

	val, err := tr.Next()
	c.Assert(err, check.IsNil)
	c.Assert(val, check.Equals, 1)

	clk.Advance(2 * time.Second)

	_, err = tr.Next()
	c.Assert(errors.Is(err, ErrTimeLimitExceeded), check.Equals, true)

	_, err = tr.Next()
	c.Assert(errors.Is(err, ErrTimeLimitExceeded), check.Equals, true)

	c.Assert(hook.LastEntry(), check.NotNil)
	c.Assert(hook.LastEntry().Level, check.Equals, logrus.WarnLevel)
}

func (s *TraversalTestSuite) TestBulkExpansion(c *check.C) {
	tr := New(s.g).Inject("a", "b", "a").Barrier()

	first, err := tr.NextTraverser()
	c.Assert(err, check.IsNil)
	c.Assert(first.Get(), check.Equals, "a")
	c.Assert(first.Bulk(), check.Equals, int64(2))

	rest, err := tr.ToList()
	c.Assert(err, check.IsNil)
	c.Assert(rest, check.DeepEquals, []interface{}{"b"})

	res, err := New(s.g).Inject("a", "b", "a").Barrier().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"a", "a", "b"})

	count, err := New(s.g).Inject("a", "b", "a").Barrier().Count().Next()
	c.Assert(err, check.IsNil)
	c.Assert(count, check.Equals, int64(3))
}

func (s *TraversalTestSuite) TestIterateRunsSideEffects(c *check.C) {
	tr := New(s.g).V().Store("all")
	c.Assert(tr.Iterate(), check.IsNil)

	all, err := tr.Memory().Get("all")
	c.Assert(err, check.IsNil)
	c.Assert(all, check.HasLen, 6)
}

func (s *TraversalTestSuite) TestPathTrackingOnlyWhenNeeded(c *check.C) {
	tr := New(s.g).V("1").Out()
	t, err := tr.NextTraverser()
	c.Assert(err, check.IsNil)
	c.Assert(t.Path(), check.IsNil)

	tr = New(s.g).V("1").Out().WithPath()
	t, err = tr.NextTraverser()
	c.Assert(err, check.IsNil)
	c.Assert(t.Path(), check.NotNil)
	c.Assert(t.Path().Size(), check.Equals, 2)
}

func (s *TraversalTestSuite) TestStringListsSteps(c *check.C) {
	tr := New(s.g).V().As("a").Out("knows")
	c.Assert(tr.String(), check.Equals, "[GraphStep(vertex)@[a], VertexStep(OUT,[knows],vertex)]")
}

// elementIDs maps element values to their ids.
func elementIDs(c *check.C, values []interface{}) []string {
	ids := make([]string, len(values))
	for i, v := range values {
		el, ok := v.(graph.Element)
		c.Assert(ok, check.Equals, true, check.Commentf("value %v is not an element", v))
		ids[i] = el.ID()
	}

	return ids
}

// sortedStrings returns string values in ascending order.
func sortedStrings(c *check.C, values []interface{}) []string {
	list := make([]string, len(values))
	for i, v := range values {
		str, ok := v.(string)
		c.Assert(ok, check.Equals, true, check.Commentf("value %v is not a string", v))
		list[i] = str
	}

	sort.Strings(list)

	return list
}
