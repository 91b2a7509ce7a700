package graphtest

import (
	"sync"

	check "gopkg.in/check.v1"

	"github.com/mycok/uGraph/graph"
)

// BaseSuite defines a set of re-usable graph-related tests that can
// be executed against any concrete type that implements the graph.Graph
// interface.
type BaseSuite struct {
	g graph.Graph
}

// SetGraph configures the test-suite to run all tests against an instance
// of graph.Graph.
func (s *BaseSuite) SetGraph(g graph.Graph) {
	s.g = g
}

// TestAddVertex verifies id assignment, default labels and initial
// properties.
func (s *BaseSuite) TestAddVertex(c *check.C) {
	v, err := s.g.AddVertex("", "", graph.Properties{"name": "marko"})
	c.Assert(err, check.IsNil)
	c.Assert(v.ID(), check.Not(check.Equals), "")
	c.Assert(v.Label(), check.Equals, graph.DefaultVertexLabel)
	c.Assert(v.Kind(), check.Equals, graph.VertexKind)

	name, exists := v.Property("name")
	c.Assert(exists, check.Equals, true)
	c.Assert(name, check.Equals, "marko")

	other, err := s.g.AddVertex("", "person", nil)
	c.Assert(err, check.IsNil)
	c.Assert(other.ID(), check.Not(check.Equals), v.ID())
	c.Assert(other.Label(), check.Equals, "person")

	found, err := s.g.Vertex(v.ID())
	c.Assert(err, check.IsNil)
	c.Assert(found, check.Equals, v, check.Commentf("element handles should be canonical"))
}

// TestDuplicateIdentifier verifies that explicit ids are unique per kind
// and that a failed insert leaves no trace.
func (s *BaseSuite) TestDuplicateIdentifier(c *check.C) {
	_, err := s.g.AddVertex("1", "person", graph.Properties{"name": "a"})
	c.Assert(err, check.IsNil)

	_, err = s.g.AddVertex("1", "person", graph.Properties{"name": "b"})
	c.Assert(err, check.ErrorMatches, ".*duplicate identifier.*")

	ids, err := s.g.Lookup(graph.VertexKind, "name", "b")
	c.Assert(err, check.IsNil)
	c.Assert(ids, check.HasLen, 0)

	// Edge ids live in their own namespace.
	_, err = s.g.AddEdge("1", "self", "1", "1", nil)
	c.Assert(err, check.IsNil)
	_, err = s.g.AddEdge("1", "self", "1", "1", nil)
	c.Assert(err, check.ErrorMatches, ".*duplicate identifier.*")
}

// TestAddEdgeWithUnknownVertices verifies that edge endpoints must
// resolve to live vertices.
func (s *BaseSuite) TestAddEdgeWithUnknownVertices(c *check.C) {
	v, err := s.g.AddVertex("a", "", nil)
	c.Assert(err, check.IsNil)

	_, err = s.g.AddEdge("", "knows", v.ID(), "missing", nil)
	c.Assert(err, check.ErrorMatches, ".*unknown out and / or in vertex.*")

	_, err = s.g.AddEdge("", "knows", "missing", v.ID(), nil)
	c.Assert(err, check.ErrorMatches, ".*unknown out and / or in vertex.*")
}

// TestAdjacency verifies per-direction, per-label adjacency.
func (s *BaseSuite) TestAdjacency(c *check.C) {
	for _, id := range []string{"1", "2", "3"} {
		_, err := s.g.AddVertex(id, "person", nil)
		c.Assert(err, check.IsNil)
	}

	_, err := s.g.AddEdge("e1", "knows", "1", "2", graph.Properties{"weight": 0.5})
	c.Assert(err, check.IsNil)
	_, err = s.g.AddEdge("e2", "knows", "2", "3", nil)
	c.Assert(err, check.IsNil)
	_, err = s.g.AddEdge("e3", "created", "1", "3", nil)
	c.Assert(err, check.IsNil)

	out, err := s.g.Adjacency("1", graph.Out)
	c.Assert(err, check.IsNil)
	c.Assert(edgeIDs(out), check.DeepEquals, []string{"e1", "e3"})

	out, err = s.g.Adjacency("1", graph.Out, "knows")
	c.Assert(err, check.IsNil)
	c.Assert(edgeIDs(out), check.DeepEquals, []string{"e1"})

	in, err := s.g.Adjacency("3", graph.In)
	c.Assert(err, check.IsNil)
	c.Assert(edgeIDs(in), check.DeepEquals, []string{"e2", "e3"})

	both, err := s.g.Adjacency("2", graph.Both)
	c.Assert(err, check.IsNil)
	c.Assert(edgeIDs(both), check.DeepEquals, []string{"e2", "e1"})

	v2, err := s.g.Vertex("2")
	c.Assert(err, check.IsNil)
	c.Assert(vertexIDs(v2.Vertices(graph.Both)), check.DeepEquals, []string{"3", "1"})

	e1, err := s.g.Edge("e1")
	c.Assert(err, check.IsNil)
	c.Assert(e1.OutVertex().ID(), check.Equals, "1")
	c.Assert(e1.InVertex().ID(), check.Equals, "2")
	c.Assert(vertexIDs(e1.Vertices(graph.Both)), check.DeepEquals, []string{"1", "2"})
}

// TestRemoveVertexCascadesEdges verifies that removing a vertex removes
// all incident edges and their index entries.
func (s *BaseSuite) TestRemoveVertexCascadesEdges(c *check.C) {
	c.Assert(s.g.CreateKeyIndex(graph.EdgeKind, "since"), check.IsNil)

	for _, id := range []string{"1", "2", "3"} {
		_, err := s.g.AddVertex(id, "person", nil)
		c.Assert(err, check.IsNil)
	}

	_, err := s.g.AddEdge("e1", "knows", "1", "2", graph.Properties{"since": 2010})
	c.Assert(err, check.IsNil)
	_, err = s.g.AddEdge("e2", "knows", "3", "2", graph.Properties{"since": 2010})
	c.Assert(err, check.IsNil)
	_, err = s.g.AddEdge("e3", "knows", "1", "3", graph.Properties{"since": 2010})
	c.Assert(err, check.IsNil)

	c.Assert(s.g.RemoveElement(graph.VertexKind, "2"), check.IsNil)

	_, err = s.g.Edge("e1")
	c.Assert(err, check.ErrorMatches, ".*not found.*")
	_, err = s.g.Edge("e2")
	c.Assert(err, check.ErrorMatches, ".*not found.*")

	ids, err := s.g.Lookup(graph.EdgeKind, "since", 2010)
	c.Assert(err, check.IsNil)
	c.Assert(ids, check.DeepEquals, []string{"e3"})

	out, err := s.g.Adjacency("3", graph.Out)
	c.Assert(err, check.IsNil)
	c.Assert(out, check.HasLen, 0)

	c.Assert(s.g.RemoveElement(graph.VertexKind, "2"), check.ErrorMatches, ".*not found.*")
}

// TestRemovedHandle verifies that a handle to a removed element rejects
// mutations.
func (s *BaseSuite) TestRemovedHandle(c *check.C) {
	v, err := s.g.AddVertex("x", "", nil)
	c.Assert(err, check.IsNil)
	c.Assert(v.Remove(), check.IsNil)

	c.Assert(v.SetProperty("name", "x"), check.ErrorMatches, ".*not found.*")
	c.Assert(v.Remove(), check.ErrorMatches, ".*not found.*")
}

// TestInvalidKeys verifies that empty and reserved keys are rejected.
func (s *BaseSuite) TestInvalidKeys(c *check.C) {
	_, err := s.g.AddVertex("", "", graph.Properties{"id": 1})
	c.Assert(err, check.ErrorMatches, ".*invalid property key.*")

	v, err := s.g.AddVertex("", "", nil)
	c.Assert(err, check.IsNil)
	c.Assert(v.SetProperty("", 1), check.ErrorMatches, ".*invalid property key.*")
	c.Assert(v.SetProperty("label", 1), check.ErrorMatches, ".*invalid property key.*")
}

// TestAnnotations verifies graph-level metadata.
func (s *BaseSuite) TestAnnotations(c *check.C) {
	a := s.g.Annotations()
	c.Assert(a.Set("name", "test-graph"), check.IsNil)
	c.Assert(a.Set("", 1), check.NotNil)

	val, exists := a.Get("name")
	c.Assert(exists, check.Equals, true)
	c.Assert(val, check.Equals, "test-graph")
	c.Assert(a.Keys(), check.DeepEquals, []string{"name"})
}

// TestElementsIterator verifies ordered enumeration of a kind.
func (s *BaseSuite) TestElementsIterator(c *check.C) {
	for _, id := range []string{"3", "1", "2"} {
		_, err := s.g.AddVertex(id, "", nil)
		c.Assert(err, check.IsNil)
	}

	it, err := s.g.Elements(graph.VertexKind)
	c.Assert(err, check.IsNil)

	var ids []string
	for it.Next() {
		ids = append(ids, it.Element().ID())
	}

	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)
	c.Assert(ids, check.DeepEquals, []string{"1", "2", "3"})
}

// TestConcurrentMutations runs writers and indexed readers in parallel.
func (s *BaseSuite) TestConcurrentMutations(c *check.C) {
	c.Assert(s.g.CreateKeyIndex(graph.VertexKind, "worker"), check.IsNil)

	var wg sync.WaitGroup
	numOfWorkers, perWorker := 8, 50

	wg.Add(numOfWorkers)
	for w := 0; w < numOfWorkers; w++ {
		go func(worker int) {
			defer wg.Done()

			for i := 0; i < perWorker; i++ {
				v, err := s.g.AddVertex("", "", graph.Properties{"worker": worker})
				if err != nil {
					c.Errorf("add vertex: %v", err)

					return
				}

				if i%2 == 0 {
					_ = v.SetProperty("worker", -1)
				}

				_, _ = s.g.Lookup(graph.VertexKind, "worker", worker)
			}
		}(w)
	}

	wg.Wait()

	for w := 0; w < numOfWorkers; w++ {
		ids, err := s.g.Lookup(graph.VertexKind, "worker", w)
		c.Assert(err, check.IsNil)
		c.Assert(ids, check.HasLen, perWorker/2)
	}
}

func edgeIDs(edges []graph.Edge) []string {
	ids := make([]string, len(edges))
	for i, e := range edges {
		ids[i] = e.ID()
	}

	return ids
}

func vertexIDs(vertices []graph.Vertex) []string {
	ids := make([]string, len(vertices))
	for i, v := range vertices {
		ids[i] = v.ID()
	}

	return ids
}
