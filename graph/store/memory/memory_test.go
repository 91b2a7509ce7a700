package memory

import (
	"errors"
	"fmt"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/mycok/uGraph/graph"
	"github.com/mycok/uGraph/graph/graphtest"
)

// Initialize and register an instance of the InMemoryGraphTestSuite to be
// executed by check testing package.
var _ = check.Suite(new(inMemoryGraphTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

// InMemoryGraphTestSuite embeds and runs the BaseSuite tests methods.
type inMemoryGraphTestSuite struct {
	graphtest.BaseSuite
	g *InMemoryGraph
}

// SetUpTest runs before each test in the test suite and hands a fresh
// graph to the base suite.
func (s *inMemoryGraphTestSuite) SetUpTest(c *check.C) {
	s.g = NewInMemoryGraph()
	s.SetGraph(s.g)
}

func (s *inMemoryGraphTestSuite) TestAssignedIDsSkipExplicitOnes(c *check.C) {
	_, err := s.g.AddVertex("2", "", nil)
	c.Assert(err, check.IsNil)

	v1, err := s.g.AddVertex("", "", nil)
	c.Assert(err, check.IsNil)
	c.Assert(v1.ID(), check.Equals, "1")

	v3, err := s.g.AddVertex("", "", nil)
	c.Assert(err, check.IsNil)
	c.Assert(v3.ID(), check.Equals, "3")

	// Vertices and edges share a single counter.
	e, err := s.g.AddEdge("", "", v1.ID(), v3.ID(), nil)
	c.Assert(err, check.IsNil)
	c.Assert(e.ID(), check.Equals, "4")
	c.Assert(e.Label(), check.Equals, graph.DefaultEdgeLabel)
}

func (s *inMemoryGraphTestSuite) TestVerifyIndexes(c *check.C) {
	c.Assert(s.g.CreateKeyIndex(graph.VertexKind, "name"), check.IsNil)
	c.Assert(s.g.CreateKeyIndex(graph.EdgeKind, "weight"), check.IsNil)

	a, err := s.g.AddVertex("a", "", graph.Properties{"name": "alice"})
	c.Assert(err, check.IsNil)
	b, err := s.g.AddVertex("b", "", graph.Properties{"name": "bob"})
	c.Assert(err, check.IsNil)
	_, err = a.AddEdge("knows", b, graph.Properties{"weight": 0.4})
	c.Assert(err, check.IsNil)

	c.Assert(s.g.VerifyIndexes(), check.IsNil)

	c.Assert(b.Remove(), check.IsNil)
	c.Assert(a.SetProperty("name", "carol"), check.IsNil)
	c.Assert(s.g.VerifyIndexes(), check.IsNil)

	// Corrupt the vertex index behind the store's back.
	s.g.vertexIndex.add("name", "dave", "a")
	err = s.g.VerifyIndexes()
	c.Assert(errors.Is(err, graph.ErrIndexInconsistency), check.Equals, true)

	_, err = s.g.LookupElements(graph.VertexKind, "name", "dave")
	c.Assert(errors.Is(err, graph.ErrIndexInconsistency), check.Equals, true)
}

func (s *inMemoryGraphTestSuite) TestSelfLoopRemoval(c *check.C) {
	v, err := s.g.AddVertex("1", "", nil)
	c.Assert(err, check.IsNil)
	_, err = v.AddEdge("self", v, nil)
	c.Assert(err, check.IsNil)

	c.Assert(v.Edges(graph.Both), check.HasLen, 2)
	c.Assert(v.Remove(), check.IsNil)

	numV, numE := s.g.Counts()
	c.Assert(numV, check.Equals, 0)
	c.Assert(numE, check.Equals, 0)
}

func (s *inMemoryGraphTestSuite) TestClear(c *check.C) {
	v, err := s.g.AddVertex("", "", graph.Properties{"k": 1})
	c.Assert(err, check.IsNil)
	c.Assert(s.g.CreateKeyIndex(graph.VertexKind, "k"), check.IsNil)

	s.g.Clear()

	numV, numE := s.g.Counts()
	c.Assert(numV, check.Equals, 0)
	c.Assert(numE, check.Equals, 0)
	c.Assert(s.g.IndexedKeys(graph.VertexKind), check.HasLen, 0)
	c.Assert(v.SetProperty("k", 2), check.NotNil)

	again, err := s.g.AddVertex("", "", nil)
	c.Assert(err, check.IsNil)
	c.Assert(again.ID(), check.Equals, "1")
	c.Assert(s.g.String(), check.Equals, "inmemorygraph[vertices:1 edges:0]")
}

func (s *inMemoryGraphTestSuite) TestElementString(c *check.C) {
	a, err := s.g.AddVertex("1", "", nil)
	c.Assert(err, check.IsNil)
	b, err := s.g.AddVertex("2", "", nil)
	c.Assert(err, check.IsNil)
	e, err := s.g.AddEdge("7", "knows", a.ID(), b.ID(), nil)
	c.Assert(err, check.IsNil)

	c.Assert(fmt.Sprint(a), check.Equals, "v[1]")
	c.Assert(fmt.Sprint(e), check.Equals, "e[7][1-knows->2]")
}

func (s *inMemoryGraphTestSuite) TestUnknownKind(c *check.C) {
	_, err := s.g.Element(graph.Kind(9), "1")
	c.Assert(errors.Is(err, graph.ErrUnknownKind), check.Equals, true)

	_, err = s.g.Lookup(graph.Kind(9), "k", 1)
	c.Assert(errors.Is(err, graph.ErrUnknownKind), check.Equals, true)
}
