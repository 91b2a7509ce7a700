package traversal

import (
	check "gopkg.in/check.v1"

	"github.com/mycok/uGraph/graph"
	"github.com/mycok/uGraph/graph/store/memory"
	"github.com/mycok/uGraph/graph/toy"
)

var _ = check.Suite(new(IndexOptimizerTestSuite))

type IndexOptimizerTestSuite struct {
	g *memory.InMemoryGraph
}

func (s *IndexOptimizerTestSuite) SetUpTest(c *check.C) {
	s.g = memory.NewInMemoryGraph()
	c.Assert(toy.LoadModern(s.g), check.IsNil)
	c.Assert(s.g.CreateKeyIndex(graph.VertexKind, "name"), check.IsNil)
}

func (s *IndexOptimizerTestSuite) TestRewriteKeepsResults(c *check.C) {
	specs := []struct {
		descr string
		build func(t *Traversal) *Traversal
	}{
		{"single equality", func(t *Traversal) *Traversal { return t.V().Has("name", "marko").ID() }},
		{"equality after label", func(t *Traversal) *Traversal {
			return t.V().HasLabel("person").Has("name", "josh").ID()
		}},
		{"label excludes match", func(t *Traversal) *Traversal {
			return t.V().HasLabel("software").Has("name", "josh").ID()
		}},
		{"trailing range condition", func(t *Traversal) *Traversal {
			return t.V().Has("name", "peter").HasP("age", Gt(40)).ID()
		}},
		{"unknown value", func(t *Traversal) *Traversal { return t.V().Has("name", "nobody").ID() }},
		{"continues past the lookup", func(t *Traversal) *Traversal {
			return t.V().Has("name", "marko").Out("created").Values("name")
		}},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s", specIndex, spec.descr)

		optimized := spec.build(New(s.g))
		c.Assert(optimized.Prepare(), check.IsNil)
		_, indexed := optimized.Steps()[0].(*IndexedGraphStep)
		c.Assert(indexed, check.Equals, true)

		plain := New(s.g)
		c.Assert(plain.Optimizers().Unregister(IndexOptimizerName), check.Equals, true)
		plain = spec.build(plain)

		got, err := optimized.ToList()
		c.Assert(err, check.IsNil)

		exp, err := plain.ToList()
		c.Assert(err, check.IsNil)
		c.Assert(got, check.DeepEquals, exp)
	}
}

func (s *IndexOptimizerTestSuite) TestRewriteFoldsEveryCondition(c *check.C) {
	tr := New(s.g).V().HasLabel("person").Has("name", "marko").HasP("age", Lt(30)).Out()
	c.Assert(tr.Prepare(), check.IsNil)

	steps := tr.Steps()
	c.Assert(steps, check.HasLen, 2)

	idx, ok := steps[0].(*IndexedGraphStep)
	c.Assert(ok, check.Equals, true)
	c.Assert(idx.Key(), check.Equals, "name")
	c.Assert(idx.Value(), check.Equals, "marko")
	c.Assert(idx.Containers(), check.HasLen, 3)
}

func (s *IndexOptimizerTestSuite) TestRewriteIsIdempotent(c *check.C) {
	tr := New(s.g).V().Has("name", "marko").Out()
	opt := NewIndexOptimizer()

	c.Assert(opt.Optimize(tr), check.IsNil)
	once := tr.String()

	c.Assert(opt.Optimize(tr), check.IsNil)
	c.Assert(tr.String(), check.Equals, once)
}

func (s *IndexOptimizerTestSuite) TestRewriteCarriesLabels(c *check.C) {
	tr := New(s.g).V().As("a").Has("name", "marko").As("b").Select("a", "b")
	c.Assert(tr.Prepare(), check.IsNil)

	labels := tr.Steps()[0].Labels()
	c.Assert(labels, check.DeepEquals, []string{"a", "b"})

	res, err := tr.ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 1)
}

func (s *IndexOptimizerTestSuite) TestNumericLookupNormalisesValue(c *check.C) {
	c.Assert(s.g.CreateKeyIndex(graph.VertexKind, "age"), check.IsNil)

	tr := New(s.g).V().Has("age", 29.0).Values("name")
	c.Assert(tr.Prepare(), check.IsNil)
	_, indexed := tr.Steps()[0].(*IndexedGraphStep)
	c.Assert(indexed, check.Equals, true)

	res, err := tr.ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"marko"})
}

func (s *IndexOptimizerTestSuite) TestNoRewrite(c *check.C) {
	specs := []struct {
		descr string
		build func() *Traversal
	}{
		{"key not indexed", func() *Traversal { return New(s.g).V().Has("age", 29) }},
		{"not an equality", func() *Traversal { return New(s.g).V().HasP("name", Within("marko", "josh")) }},
		{"start by id", func() *Traversal { return New(s.g).V("1").Has("name", "marko") }},
		{"label condition only", func() *Traversal { return New(s.g).V().HasLabel("person") }},
		{"edge scan", func() *Traversal { return New(s.g).E().Has("name", "marko") }},
		{"computer mode", func() *Traversal { return New(s.g, WithMode(ModeComputer)).V().Has("name", "marko") }},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s", specIndex, spec.descr)

		tr := spec.build()
		c.Assert(tr.Prepare(), check.IsNil)
		_, scan := tr.Steps()[0].(*GraphStep)
		c.Assert(scan, check.Equals, true)
	}

	c.Assert(New(s.g, WithMode(ModeComputer)).Optimizers().Has(IndexOptimizerName), check.Equals, false)
	c.Assert(New(s.g).Optimizers().Has(IndexOptimizerName), check.Equals, true)
}

func (s *IndexOptimizerTestSuite) TestNestedTraversalsAreNotRewritten(c *check.C) {
	inner := Anon().V().Has("name", "marko")
	tr := New(s.g).Inject(1).Local(inner)
	c.Assert(tr.Prepare(), check.IsNil)

	_, scan := inner.Steps()[0].(*GraphStep)
	c.Assert(scan, check.Equals, true)
}

func (s *IndexOptimizerTestSuite) TestRewriteSeesMutationsBetweenPulls(c *check.C) {
	specs := []struct {
		descr  string
		mutate func(g *memory.InMemoryGraph) error
		exp    []interface{}
	}{
		{
			descr:  "matching vertex renamed",
			mutate: func(g *memory.InMemoryGraph) error { return g.SetProperty(graph.VertexKind, "2", "name", "bob") },
			exp:    []interface{}{"3", "4"},
		},
		{
			descr:  "matching vertex removed",
			mutate: func(g *memory.InMemoryGraph) error { return g.RemoveElement(graph.VertexKind, "3") },
			exp:    []interface{}{"2", "4"},
		},
		{
			descr: "removed and re-added with another value",
			mutate: func(g *memory.InMemoryGraph) error {
				if err := g.RemoveElement(graph.VertexKind, "4"); err != nil {
					return err
				}

				_, err := g.AddVertex("4", "person", graph.Properties{"name": "carol"})

				return err
			},
			exp: []interface{}{"2", "3"},
		},
		{
			descr:  "unrelated property changed",
			mutate: func(g *memory.InMemoryGraph) error { return g.SetProperty(graph.VertexKind, "2", "age", 40) },
			exp:    []interface{}{"2", "3", "4"},
		},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s", specIndex, spec.descr)

		var results [2][]interface{}
		for i, optimize := range []bool{true, false} {
			g := memory.NewInMemoryGraph()
			c.Assert(g.CreateKeyIndex(graph.VertexKind, "name"), check.IsNil)
			for _, id := range []string{"1", "2", "3", "4"} {
				_, err := g.AddVertex(id, "person", graph.Properties{"name": "alice"})
				c.Assert(err, check.IsNil)
			}

			tr := New(g)
			if !optimize {
				c.Assert(tr.Optimizers().Unregister(IndexOptimizerName), check.Equals, true)
			}
			tr = tr.V().Has("name", "alice").ID()

			first, err := tr.Next()
			c.Assert(err, check.IsNil)
			c.Assert(first, check.Equals, "1")

			_, indexed := tr.Steps()[0].(*IndexedGraphStep)
			c.Assert(indexed, check.Equals, optimize)

			c.Assert(spec.mutate(g), check.IsNil)

			results[i], err = tr.ToList()
			c.Assert(err, check.IsNil)
		}

		c.Assert(results[0], check.DeepEquals, spec.exp)
		c.Assert(results[1], check.DeepEquals, spec.exp)
	}
}
