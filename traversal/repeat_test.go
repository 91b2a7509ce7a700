package traversal

import (
	check "gopkg.in/check.v1"

	"github.com/mycok/uGraph/graph/store/memory"
	"github.com/mycok/uGraph/graph/toy"
)

var _ = check.Suite(new(RepeatTestSuite))

// RepeatTestSuite runs loops over a five-vertex knows chain.
type RepeatTestSuite struct {
	g *memory.InMemoryGraph
}

func (s *RepeatTestSuite) SetUpTest(c *check.C) {
	s.g = memory.NewInMemoryGraph()
	c.Assert(toy.LoadKnowsChain(s.g, 5), check.IsNil)
}

// countingBody returns a body traversal that moves along knows edges and
// counts its executions.
func countingBody(runs *int) *Traversal {
	return Anon().SideEffect(func(*Traverser) error {
		*runs++

		return nil
	}).Out("knows")
}

func (s *RepeatTestSuite) TestTimesBoundsBodyExecutions(c *check.C) {
	specs := []struct {
		descr  string
		modify func(*Traversal) *Traversal
		expIDs []string
	}{
		{"times only", func(t *Traversal) *Traversal { return t.Times(3) }, []string{"4"}},
		{"times with emit", func(t *Traversal) *Traversal { return t.Times(3).Emit() }, []string{"2", "3", "4"}},
		{"times overrides until", func(t *Traversal) *Traversal {
			return t.Times(3).UntilFunc(func(*Traverser) bool { return true })
		}, []string{"4"}},
		{"times overrides never-true until", func(t *Traversal) *Traversal {
			return t.UntilFunc(func(*Traverser) bool { return false }).Times(3).Emit()
		}, []string{"2", "3", "4"}},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s", specIndex, spec.descr)

		var runs int
		tr := spec.modify(New(s.g).V("1").Repeat(countingBody(&runs))).ID()

		res, err := tr.ToList()
		c.Assert(err, check.IsNil)
		c.Assert(runs, check.Equals, 3)
		c.Assert(sortedStrings(c, res), check.DeepEquals, spec.expIDs)
	}
}

func (s *RepeatTestSuite) TestTimesZeroSkipsBody(c *check.C) {
	var runs int

	res, err := New(s.g).V("1").Repeat(countingBody(&runs)).Times(0).ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(runs, check.Equals, 0)
	c.Assert(res, check.DeepEquals, []interface{}{"1"})
}

func (s *RepeatTestSuite) TestUntilPlacement(c *check.C) {
	specs := []struct {
		descr string
		build func() *Traversal
		exp   []interface{}
	}{
		{"post-test", func() *Traversal {
			return New(s.g).V("1").Repeat(Anon().Out("knows")).Until(Anon().Has("name", "p3")).ID()
		}, []interface{}{"3"}},
		{"pre-test", func() *Traversal {
			return New(s.g).V("1").Until(Anon().Has("name", "p3")).Repeat(Anon().Out("knows")).ID()
		}, []interface{}{"3"}},
		{"pre-test holds on entry", func() *Traversal {
			return New(s.g).V("3").Until(Anon().Has("name", "p3")).Repeat(Anon().Out("knows")).ID()
		}, []interface{}{"3"}},
		{"post-test runs the body first", func() *Traversal {
			return New(s.g).V("3").Repeat(Anon().Out("knows")).Until(Anon().Has("name", "p3")).ID()
		}, nil},
		{"until on loop counter", func() *Traversal {
			return New(s.g).V("1").Repeat(Anon().Out("knows")).
				UntilFunc(func(t *Traverser) bool { return t.Loops() == 2 }).ID()
		}, []interface{}{"3"}},
		{"body runs dry", func() *Traversal {
			return New(s.g).V("4").Repeat(Anon().Out("knows")).Until(Anon().Has("name", "p1")).ID()
		}, nil},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s", specIndex, spec.descr)

		res, err := spec.build().ToList()
		c.Assert(err, check.IsNil)
		c.Assert(res, check.DeepEquals, spec.exp)
	}
}

func (s *RepeatTestSuite) TestEmitPlacement(c *check.C) {
	res, err := New(s.g).V("1").Emit().Repeat(Anon().Out("knows")).Times(2).ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"1", "2", "3"})

	res, err = New(s.g).V("1").Repeat(Anon().Out("knows")).Times(2).Emit().ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"2", "3"})

	res, err = New(s.g).V("1").Repeat(Anon().Out("knows")).Emit().ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"2", "3", "4", "5"})

	res, err = New(s.g).V("1").Repeat(Anon().Out("knows")).Times(4).EmitIf(Anon().Has("name", "p3")).ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"3", "5"})

	res, err = New(s.g).V("1").Repeat(Anon().Out("knows")).Times(4).
		EmitFunc(func(t *Traverser) bool { return t.Loops()%2 == 1 }).ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"2", "4", "5"})
}

func (s *RepeatTestSuite) TestLoopsResetOnExit(c *check.C) {
	tr := New(s.g).V("1").Repeat(Anon().Out("knows")).Times(2)

	t, err := tr.NextTraverser()
	c.Assert(err, check.IsNil)
	c.Assert(t.Loops(), check.Equals, 0)
}

func (s *RepeatTestSuite) TestRepeatWithoutBodyFails(c *check.C) {
	tr := New(s.g).V("1").Times(2)
	c.Assert(tr.Err(), check.IsNil)

	_, err := tr.ToList()
	c.Assert(err, check.ErrorMatches, ".*declared without a following repeat.*")
}
