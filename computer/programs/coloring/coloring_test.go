package coloring_test

import (
	"context"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/mycok/uGraph/computer"
	"github.com/mycok/uGraph/computer/programs/coloring"
	"github.com/mycok/uGraph/graph"
	"github.com/mycok/uGraph/graph/store/memory"
)

var _ = check.Suite(new(coloringTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type coloringTestSuite struct {
	g *memory.InMemoryGraph
}

func (s *coloringTestSuite) SetUpTest(c *check.C) {
	s.g = memory.NewInMemoryGraph()
}

var vertexToEdges = map[string][]string{
	"0": {"1", "2"},
	"1": {"2", "3"},
	"2": {"3"},
	"3": {"4"},
}

func (s *coloringTestSuite) TestUncoloredGraph(c *check.C) {
	for _, seed := range []uint64{0, 42, 101} {
		c.Logf("seed: %d", seed)
		s.SetUpTest(c)

		maxDegree := s.populateGraph(c, vertexToEdges, nil)
		colors, numOfColors := s.run(c, coloring.Config{Seed: seed})

		c.Assert(numOfColors <= maxDegree+1, check.Equals, true)
		assertNoColorConflictsBetweenVertices(c, vertexToEdges, colors)
	}
}

func (s *coloringTestSuite) TestPartiallyPreColoredGraph(c *check.C) {
	preColoredVertices := map[string]int{
		"0": 1,
		"3": 1,
	}

	maxDegree := s.populateGraph(c, vertexToEdges, preColoredVertices)
	colors, numOfColors := s.run(c, coloring.Config{Seed: 101})

	for id, color := range preColoredVertices {
		c.Assert(
			colors[id], check.Equals, color,
			check.Commentf("pre-colored vertex %v color was overwritten from %d to %d", id, color, colors[id]),
		)
	}

	c.Assert(numOfColors <= maxDegree+1, check.Equals, true)
	assertNoColorConflictsBetweenVertices(c, vertexToEdges, colors)
}

func (s *coloringTestSuite) TestIsolatedVertexAndWriteBack(c *check.C) {
	s.populateGraph(c, map[string][]string{"a": {"b"}}, nil)
	_, err := s.g.AddVertex("lonely", "", nil)
	c.Assert(err, check.IsNil)

	colors, _ := s.run(c, coloring.Config{ColorKey: "shade"})
	c.Assert(colors["lonely"], check.Equals, 1)
	c.Assert(colors["a"], check.Not(check.Equals), colors["b"])

	for id, color := range colors {
		val, exists, err := s.g.Property(graph.VertexKind, id, "shade")
		c.Assert(err, check.IsNil)
		c.Assert(exists, check.Equals, true)
		c.Assert(val, check.Equals, color)
	}
}

func (s *coloringTestSuite) TestCompleteGraph(c *check.C) {
	ids := []string{"a", "b", "c", "d", "e"}
	edges := make(map[string][]string)
	for i, src := range ids {
		edges[src] = ids[i+1:]
	}

	s.populateGraph(c, edges, nil)
	colors, numOfColors := s.run(c, coloring.Config{})

	c.Assert(numOfColors, check.Equals, len(ids))
	assertNoColorConflictsBetweenVertices(c, edges, colors)
}

func (s *coloringTestSuite) run(c *check.C, cfg coloring.Config) (map[string]int, int) {
	comp, err := computer.New(s.g, computer.Config{Workers: 16})
	c.Assert(err, check.IsNil)

	res, err := comp.Compute(context.TODO(), coloring.NewProgram(cfg), computer.IsolationBSP, nil)
	c.Assert(err, check.IsNil)
	c.Assert(res.Halted, check.Equals, true)

	return coloring.Colors(res)
}

// populateGraph adds the vertices and edges and returns the largest number
// of distinct neighbors of a vertex.
func (s *coloringTestSuite) populateGraph(
	c *check.C, vertexToEdges map[string][]string,
	preColoredVertices map[string]int,
) int {

	neighbors := make(map[string]map[string]struct{})
	link := func(a, b string) {
		if neighbors[a] == nil {
			neighbors[a] = make(map[string]struct{})
		}

		if b != "" {
			neighbors[a][b] = struct{}{}
		}
	}

	for src, destinations := range vertexToEdges {
		link(src, "")
		for _, dest := range destinations {
			link(src, dest)
			link(dest, src)
		}
	}

	for id := range neighbors {
		var props graph.Properties
		if color := preColoredVertices[id]; color != 0 {
			props = graph.Properties{"color": color}
		}

		_, err := s.g.AddVertex(id, "", props)
		c.Assert(err, check.IsNil)
	}

	for src, destinations := range vertexToEdges {
		for _, dest := range destinations {
			_, err := s.g.AddEdge("", "", src, dest, nil)
			c.Assert(err, check.IsNil)
		}
	}

	var maxDegree int
	for _, set := range neighbors {
		if len(set) > maxDegree {
			maxDegree = len(set)
		}
	}

	return maxDegree
}

func assertNoColorConflictsBetweenVertices(
	c *check.C, vertexToEdges map[string][]string,
	vertexToColor map[string]int,
) {

	for srcID, srcColor := range vertexToColor {
		c.Assert(
			srcColor, check.Not(check.Equals), 0,
			check.Commentf("no color assigned to vertex %v", srcID),
		)

		for _, destID := range vertexToEdges[srcID] {
			c.Assert(
				vertexToColor[destID], check.Not(check.Equals), srcColor,
				check.Commentf("neighbor vertex %v assigned same color %d as src vertex %v", destID, srcColor, srcID),
			)
		}
	}
}
