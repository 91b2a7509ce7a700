package traversal

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	check "gopkg.in/check.v1"

	"github.com/mycok/uGraph/graph"
)

func (s *TraversalTestSuite) TestAdjacencySteps(c *check.C) {
	specs := []struct {
		descr string
		build func() *Traversal
		exp   []string
	}{
		{"out", func() *Traversal { return New(s.g).V("1").Out().ID() }, []string{"2", "3", "4"}},
		{"out with label", func() *Traversal { return New(s.g).V("1").Out("knows").ID() }, []string{"2", "4"}},
		{"in", func() *Traversal { return New(s.g).V("3").In("created").ID() }, []string{"1", "4", "6"}},
		{"both", func() *Traversal { return New(s.g).V("4").Both().ID() }, []string{"1", "3", "5"}},
		{"outE", func() *Traversal { return New(s.g).V("1").OutE("created").ID() }, []string{"9"}},
		{"inE then outV", func() *Traversal { return New(s.g).V("3").InE().OutV().ID() }, []string{"1", "4", "6"}},
		{"edge endpoints", func() *Traversal { return New(s.g).E("7").BothV().ID() }, []string{"1", "2"}},
		{"otherV", func() *Traversal { return New(s.g).V("2").BothE().OtherV().ID() }, []string{"1"}},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s", specIndex, spec.descr)

		res, err := spec.build().ToList()
		c.Assert(err, check.IsNil)
		c.Assert(sortedStrings(c, res), check.DeepEquals, spec.exp)
	}
}

func (s *TraversalTestSuite) TestPropertySteps(c *check.C) {
	res, err := New(s.g).V("1").Values("name").ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"marko"})

	res, err = New(s.g).V("1").Properties().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 2)
	c.Assert(res[0].(graph.Property).Key, check.Equals, "age")

	res, err = New(s.g).V("1").Properties().HasKey("name").ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 1)

	res, err = New(s.g).V().Properties("lang").HasValue("java").Count().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{int64(2)})

	res, err = New(s.g).V().Label().Dedup().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"person", "software"})
}

func (s *TraversalTestSuite) TestHasFamily(c *check.C) {
	specs := []struct {
		descr string
		build func() *Traversal
		exp   []string
	}{
		{"has", func() *Traversal { return New(s.g).V().Has("name", "josh").ID() }, []string{"4"}},
		{"has normalises numbers", func() *Traversal { return New(s.g).V().Has("age", int64(27)).ID() }, []string{"2"}},
		{"hasP", func() *Traversal { return New(s.g).V().HasP("age", Between(27, 32)).ID() }, []string{"1", "2"}},
		{"hasLabel", func() *Traversal { return New(s.g).V().HasLabel("software").ID() }, []string{"3", "5"}},
		{"hasId", func() *Traversal { return New(s.g).V().HasID("2", "6").ID() }, []string{"2", "6"}},
		{"hasNot", func() *Traversal { return New(s.g).V().HasNot("age").ID() }, []string{"3", "5"}},
		{"hasKey", func() *Traversal { return New(s.g).V().HasKey("lang").ID() }, []string{"3", "5"}},
		{"has traversal", func() *Traversal {
			return New(s.g).V().HasTraversal(Anon().Out("created")).ID()
		}, []string{"1", "4", "6"}},
		{"hasNot traversal", func() *Traversal {
			return New(s.g).V().HasLabel("person").HasNotTraversal(Anon().Out("created")).ID()
		}, []string{"2"}},
		{"is", func() *Traversal { return New(s.g).V().Values("age").IsP(Gt(30)).Map(toString) }, []string{"32", "35"}},
		{"and", func() *Traversal {
			return New(s.g).V().And(Anon().Out("knows"), Anon().Out("created")).ID()
		}, []string{"1"}},
		{"or", func() *Traversal {
			return New(s.g).V().Or(Anon().Has("name", "vadas"), Anon().Has("lang", "java")).ID()
		}, []string{"2", "3", "5"}},
		{"filter", func() *Traversal {
			return New(s.g).V().Filter(func(t *Traverser) (bool, error) {
				return t.Get().(graph.Element).ID() == "5", nil
			}).ID()
		}, []string{"5"}},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s", specIndex, spec.descr)

		res, err := spec.build().ToList()
		c.Assert(err, check.IsNil)
		c.Assert(sortedStrings(c, res), check.DeepEquals, spec.exp)
	}
}

func (s *TraversalTestSuite) TestWhereAndSelect(c *check.C) {
	res, err := New(s.g).V("1").As("a").Out("knows").As("b").Where("a", Neq("b")).Select("b").ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(sortedStrings(c, res), check.DeepEquals, []string{"2", "4"})

	res, err = New(s.g).V("1").As("a").Out("knows").As("b").Where("a", Eq("b")).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 0)

	// String arguments always name labels, never literals.
	_, err = New(s.g).V("1").As("a").Values("name").Where("a", Eq("marko")).ToList()
	c.Assert(errors.Is(err, ErrUndefinedLabel), check.Equals, true)

	res, err = New(s.g).V("1").As("a").Out("knows").Has("name", "vadas").As("b").Select("a", "b").ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 1)

	selected := res[0].(map[string]interface{})
	c.Assert(selected["a"].(graph.Element).ID(), check.Equals, "1")
	c.Assert(selected["b"].(graph.Element).ID(), check.Equals, "2")

	res, err = New(s.g).V("1").As("start").Out().In().Back("start").Dedup().ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"1"})

	res, err = New(s.g).V().WhereTraversal(Anon().In("knows")).ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(sortedStrings(c, res), check.DeepEquals, []string{"2", "4"})
}

func (s *TraversalTestSuite) TestRangeWindow(c *check.C) {
	values := []interface{}{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	specs := []struct {
		low, high int64
		exp       []interface{}
	}{
		{2, 5, []interface{}{2, 3, 4}},
		{0, 0, nil},
		{8, -1, []interface{}{8, 9}},
		{7, 20, []interface{}{7, 8, 9}},
		{12, 15, nil},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] range(%d, %d)", specIndex, spec.low, spec.high)

		res, err := New(s.g).Inject(values...).Range(spec.low, spec.high).ToList()
		c.Assert(err, check.IsNil)
		c.Assert(res, check.DeepEquals, spec.exp)

		if spec.high >= 0 {
			c.Assert(int64(len(res)) <= max64(0, spec.high-spec.low), check.Equals, true)
		}
	}

	res, err := New(s.g).Inject("a", "a", "b", "c").Barrier().Range(1, 3).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"a", "b"})

	res, err = New(s.g).Inject(1, 2, 3).Limit(-1).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{1, 2, 3})

	res, err = New(s.g).Inject([]interface{}{"x", "y", "z"}).RangeLocal(1, 3).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{[]interface{}{"y", "z"}})

	res, err = New(s.g).Inject([]interface{}{"x", "y", "z"}).LimitLocal(1).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"x"})
}

func (s *TraversalTestSuite) TestDedup(c *check.C) {
	res, err := New(s.g).V().Out().ID().Dedup().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(sortedStrings(c, res), check.DeepEquals, []string{"2", "3", "4", "5"})

	res, err = New(s.g).Inject([]interface{}{1, 2, 1, 3, 2}).DedupLocal().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{[]interface{}{1, 2, 3}})
}

func (s *TraversalTestSuite) TestPathFilters(c *check.C) {
	res, err := New(s.g).V("1").Out("knows").In("knows").CyclicPath().ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"1", "1"})

	res, err = New(s.g).V("1").Out("knows").In("knows").SimplePath().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 0)
}

func (s *TraversalTestSuite) TestExceptAndRetain(c *check.C) {
	res, err := New(s.g).V("1").Out().ID().Except("2").ToList()
	c.Assert(err, check.IsNil)
	c.Assert(sortedStrings(c, res), check.DeepEquals, []string{"3", "4"})

	res, err = New(s.g).V("1").Out().ID().Retain("2", "9").ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"2"})

	count, err := New(s.g).V("4").Out("created").Aggregate("x").
		In("created").Out("created").RetainKey("x").Count().Next()
	c.Assert(err, check.IsNil)
	c.Assert(count, check.Equals, int64(6))

	count, err = New(s.g).V("4").Out("created").Aggregate("x").
		In("created").Out("created").ExceptKey("x").Count().Next()
	c.Assert(err, check.IsNil)
	c.Assert(count, check.Equals, int64(0))

	// Path labels work as collections too.
	res, err = New(s.g).V("1").As("me").Out("knows").In("knows").ExceptKey("me").ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 0)
}

func (s *TraversalTestSuite) TestReducingSteps(c *check.C) {
	specs := []struct {
		descr string
		build func() *Traversal
		exp   []interface{}
	}{
		{"count", func() *Traversal { return New(s.g).V().Count() }, []interface{}{int64(6)}},
		{"count empty", func() *Traversal { return New(s.g).V("99").Count() }, []interface{}{int64(0)}},
		{"sum", func() *Traversal { return New(s.g).V().Values("age").Sum() }, []interface{}{123.0}},
		{"sum empty", func() *Traversal { return New(s.g).V("99").Values("age").Sum() }, []interface{}{0.0}},
		{"mean", func() *Traversal { return New(s.g).V().Values("age").Mean() }, []interface{}{30.75}},
		{"mean empty", func() *Traversal { return New(s.g).V("99").Values("age").Mean() }, nil},
		{"min", func() *Traversal { return New(s.g).V().Values("age").Min() }, []interface{}{27}},
		{"max", func() *Traversal { return New(s.g).V().Values("age").Max() }, []interface{}{35}},
		{"max empty", func() *Traversal { return New(s.g).V("99").Values("age").Max() }, nil},
		{"fold", func() *Traversal { return New(s.g).V("1", "2").ID().Fold() }, []interface{}{[]interface{}{"1", "2"}}},
		{"foldWith", func() *Traversal {
			return New(s.g).V().Values("age").FoldWith(0, func(acc, v interface{}) interface{} {
				return acc.(int) + v.(int)
			})
		}, []interface{}{123}},
		{"unfold", func() *Traversal { return New(s.g).V("1", "2").ID().Fold().Unfold() }, []interface{}{"1", "2"}},
		{"count local", func() *Traversal { return New(s.g).V("1").Out().Fold().CountLocal() }, []interface{}{int64(3)}},
		{"sum local", func() *Traversal { return New(s.g).Inject([]interface{}{1, 2, 3.5}).SumLocal() }, []interface{}{6.5}},
		{"mean local", func() *Traversal { return New(s.g).Inject([]interface{}{1, 2, 3}).MeanLocal() }, []interface{}{2.0}},
		{"min local", func() *Traversal { return New(s.g).Inject([]interface{}{3, 1, 2}).MinLocal() }, []interface{}{1}},
		{"max local", func() *Traversal { return New(s.g).Inject([]interface{}{3, 1, 2}).MaxLocal() }, []interface{}{3}},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s", specIndex, spec.descr)

		res, err := spec.build().ToList()
		c.Assert(err, check.IsNil)
		c.Assert(res, check.DeepEquals, spec.exp)
	}
}

func (s *TraversalTestSuite) TestOrder(c *check.C) {
	res, err := New(s.g).V().Values("name").Order().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"josh", "lop", "marko", "peter", "ripple", "vadas"})

	desc := func(a, b interface{}) (int, error) {
		cmp, err := Compare(a, b)

		return -cmp, err
	}

	res, err = New(s.g).V().Values("age").OrderBy(desc).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{35, 32, 29, 27})

	res, err = New(s.g).Inject([]interface{}{"b", "c", "a"}).OrderLocal(nil).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{[]interface{}{"a", "b", "c"}})

	_, err = New(s.g).Inject(1, "a").Order().ToList()
	c.Assert(errors.Is(err, ErrIncomparableTypes), check.Equals, true)
}

func (s *TraversalTestSuite) TestSideEffectsAndCap(c *check.C) {
	res, err := New(s.g).V().Store("x").Cap("x").ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 1)
	c.Assert(res[0], check.HasLen, 6)

	res, err = New(s.g).V("1").Out().Aggregate("x").Cap("x").ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res[0], check.HasLen, 3)

	// Cap reports declared side effects even when nothing reached them.
	res, err = New(s.g).V("99").Store("x").Cap("x").ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{[]interface{}{}})

	_, err = New(s.g).V().Cap("missing").ToList()
	c.Assert(errors.Is(err, ErrUndefinedSideEffectKey), check.Equals, true)

	res, err = New(s.g).V().Label().GroupCount("", nil).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{map[interface{}]int64{"person": 4, "software": 2}})

	res, err = New(s.g).V().GroupCount("labels", labelOf).Store("all").Cap("labels", "all").ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 1)

	capped := res[0].(map[string]interface{})
	c.Assert(capped["labels"], check.DeepEquals, map[interface{}]int64{"person": 4, "software": 2})
	c.Assert(capped["all"], check.HasLen, 6)

	res, err = New(s.g).V().Group("", Grouping{Key: labelOf, Value: nameOf}).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{map[interface{}]interface{}{
		"person":   []interface{}{"marko", "vadas", "josh", "peter"},
		"software": []interface{}{"lop", "ripple"},
	}})

	counted := Grouping{Key: labelOf, Reduce: func(items []interface{}) interface{} { return len(items) }}
	res, err = New(s.g).V().Group("g", counted).Cap("g").ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{map[interface{}]interface{}{"person": 4, "software": 2}})

	var seen []string
	res, err = New(s.g).V("1").SideEffect(func(t *Traverser) error {
		seen = append(seen, t.Get().(graph.Element).ID())

		return nil
	}).ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"1"})
	c.Assert(seen, check.DeepEquals, []string{"1"})
}

func (s *TraversalTestSuite) TestWithSideEffect(c *check.C) {
	tr := New(s.g).WithSideEffect("total", 0, func(acc, v interface{}) interface{} { return acc.(int) + v.(int) })
	tr.V().Values("age").SideEffect(func(t *Traverser) error {
		tr.Memory().Add("total", t.Get())

		return nil
	})

	c.Assert(tr.Iterate(), check.IsNil)

	total, err := tr.Memory().Get("total")
	c.Assert(err, check.IsNil)
	c.Assert(total, check.Equals, 123)

	nested := Anon().WithSideEffect("x", 0, nil)
	c.Assert(errors.Is(nested.Err(), ErrInvalidArgument), check.Equals, true)
}

func (s *TraversalTestSuite) TestTree(c *check.C) {
	v1, err := s.g.Vertex("1")
	c.Assert(err, check.IsNil)

	res, err := New(s.g).V("1").Out("knows").Tree("").ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 1)

	tree := res[0].(Tree)
	c.Assert(tree, check.HasLen, 1)
	c.Assert(tree[v1], check.HasLen, 2)

	res, err = New(s.g).V("1").Out().Tree("t").Cap("t").ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res[0].(Tree)[v1], check.HasLen, 3)
}

func (s *TraversalTestSuite) TestBranchSteps(c *check.C) {
	res, err := New(s.g).V("1").Union(Anon().Out("knows"), Anon().Out("created")).ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 3)
	c.Assert(res[2], check.Equals, "3")
	c.Assert(sortedStrings(c, res), check.DeepEquals, []string{"2", "3", "4"})

	res, err = New(s.g).V("1").Coalesce(Anon().Out("likes"), Anon().Out("created"), Anon().Out("knows")).ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"3"})

	res, err = New(s.g).V("2").Coalesce(Anon().Out("created")).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 0)

	res, err = New(s.g).V().Choose(Anon().HasLabel("person"), Anon().Values("age"), Anon().Values("lang")).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{29, 27, "java", 32, "java", 35})

	res, err = New(s.g).V().Branch(labelOf).
		Option("software", Anon().Values("name")).
		Option("software", Anon().Values("lang")).
		ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"lop", "java", "ripple", "java"})

	res, err = New(s.g).V().ChooseOptions(Anon().Values("age").IsP(Gt(30))).
		Option(32, Anon().Values("name")).
		Option(35, Anon().Label()).
		ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"josh", "person"})
}

func (s *TraversalTestSuite) TestLocal(c *check.C) {
	count, err := New(s.g).V().Local(Anon().OutE().Limit(1)).Count().Next()
	c.Assert(err, check.IsNil)
	c.Assert(count, check.Equals, int64(3))

	count, err = New(s.g).V().OutE().Limit(1).Count().Next()
	c.Assert(err, check.IsNil)
	c.Assert(count, check.Equals, int64(1))
}

func (s *TraversalTestSuite) TestSack(c *check.C) {
	mult := func(sack, v interface{}) interface{} { return sack.(float64) * v.(float64) }

	res, err := New(s.g).WithSack(func() interface{} { return 1.0 }, nil, nil).
		V("1").OutE("knows").SackFromProperty(mult, "weight").InV().Sack().ToList()
	c.Assert(err, check.IsNil)

	sacks := []float64{res[0].(float64), res[1].(float64)}
	sort.Float64s(sacks)
	c.Assert(sacks, check.DeepEquals, []float64{0.5, 1.0})

	add := func(sack, v interface{}) interface{} { return sack.(int) + v.(int) }
	res, err = New(s.g).WithSack(func() interface{} { return 0 }, nil, nil).
		Inject(1, 2).SackUpdate(add).Sack().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{1, 2})
}

func (s *TraversalTestSuite) TestSackMergesOnBarrier(c *check.C) {
	add := func(acc, v interface{}) interface{} { return acc.(int) + v.(int) }

	tr := New(s.g).WithSack(func() interface{} { return 1 }, nil, add).
		Inject("a", "a", "a").Barrier()

	t, err := tr.NextTraverser()
	c.Assert(err, check.IsNil)
	c.Assert(t.Bulk(), check.Equals, int64(3))
	c.Assert(t.Sack(), check.Equals, 3)
}

func (s *TraversalTestSuite) TestAddEdges(c *check.C) {
	err := New(s.g).V("1").As("a").Out("knows").AddOutE("likes", "a", graph.Properties{"since": 2010}).Iterate()
	c.Assert(err, check.IsNil)

	edges, err := s.g.Adjacency("1", graph.In, "likes")
	c.Assert(err, check.IsNil)
	c.Assert(edges, check.HasLen, 2)

	since, exists := edges[0].Property("since")
	c.Assert(exists, check.Equals, true)
	c.Assert(since, check.Equals, 2010)

	res, err := New(s.g).V("6").As("p").Out("created").AddInE("createdBy", "p", nil).ID().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{"3"})

	edges, err = s.g.Adjacency("3", graph.In, "createdBy")
	c.Assert(err, check.IsNil)
	c.Assert(edges, check.HasLen, 1)
	c.Assert(edges[0].OutVertex().ID(), check.Equals, "6")
}

func (s *TraversalTestSuite) TestRandomSteps(c *check.C) {
	res, err := New(s.g).V().Coin(0).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 0)

	res, err = New(s.g).V().Coin(1).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 6)

	rnd := rand.New(rand.NewSource(42))

	res, err = New(s.g, WithRandom(rnd)).V().Sample(2).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 2)

	res, err = New(s.g, WithRandom(rnd)).V().Sample(10).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.HasLen, 6)
}

func (s *TraversalTestSuite) TestMapAndFlatMap(c *check.C) {
	res, err := New(s.g).Inject(1, 2).Map(func(t *Traverser) (interface{}, error) {
		return t.Get().(int) * 10, nil
	}).ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{10, 20})

	res, err = New(s.g).Inject(2).FlatMap(func(t *Traverser) ([]interface{}, error) {
		return []interface{}{t.Get(), t.Get()}, nil
	}).Identity().ToList()
	c.Assert(err, check.IsNil)
	c.Assert(res, check.DeepEquals, []interface{}{2, 2})

	boom := errors.New("boom")
	_, err = New(s.g).Inject(1).Map(func(*Traverser) (interface{}, error) { return nil, boom }).ToList()
	c.Assert(errors.Is(err, boom), check.Equals, true)
}

func labelOf(t *Traverser) (interface{}, error) {
	return t.Get().(graph.Element).Label(), nil
}

func nameOf(t *Traverser) (interface{}, error) {
	name, _ := t.Get().(graph.Element).Property("name")

	return name, nil
}

func toString(t *Traverser) (interface{}, error) {
	return fmt.Sprint(t.Get()), nil
}
