// Package toy populates graphs with the small, well-known datasets used by
// tests, examples and the ugraph CLI.
package toy

import (
	"fmt"
	"strconv"

	"github.com/mycok/uGraph/graph"
)

type vertexSpec struct {
	id    string
	label string
	props graph.Properties
}

type edgeSpec struct {
	id     string
	label  string
	out    string
	in     string
	weight float64
}

// LoadModern adds the six-vertex "modern" graph to g: four people who know
// each other and two pieces of software they created. Edge weights are
// stored under the "weight" key.
func LoadModern(g graph.Graph) error {
	vertices := []vertexSpec{
		{"1", "person", graph.Properties{"name": "marko", "age": 29}},
		{"2", "person", graph.Properties{"name": "vadas", "age": 27}},
		{"3", "software", graph.Properties{"name": "lop", "lang": "java"}},
		{"4", "person", graph.Properties{"name": "josh", "age": 32}},
		{"5", "software", graph.Properties{"name": "ripple", "lang": "java"}},
		{"6", "person", graph.Properties{"name": "peter", "age": 35}},
	}

	edges := []edgeSpec{
		{"7", "knows", "1", "2", 0.5},
		{"8", "knows", "1", "4", 1.0},
		{"9", "created", "1", "3", 0.4},
		{"10", "created", "4", "5", 1.0},
		{"11", "created", "4", "3", 0.4},
		{"12", "created", "6", "3", 0.2},
	}

	for _, v := range vertices {
		if _, err := g.AddVertex(v.id, v.label, v.props); err != nil {
			return fmt.Errorf("load modern graph: %w", err)
		}
	}

	for _, e := range edges {
		if _, err := g.AddEdge(e.id, e.label, e.out, e.in, graph.Properties{"weight": e.weight}); err != nil {
			return fmt.Errorf("load modern graph: %w", err)
		}
	}

	return nil
}

// LoadKnowsChain adds n "person" vertices with ids 1..n and a "knows" edge
// from each vertex i to i+1.
func LoadKnowsChain(g graph.Graph, n int) error {
	for i := 1; i <= n; i++ {
		id := strconv.Itoa(i)
		if _, err := g.AddVertex(id, "person", graph.Properties{"name": "p" + id}); err != nil {
			return fmt.Errorf("load knows chain: %w", err)
		}
	}

	for i := 1; i < n; i++ {
		edgeID := fmt.Sprintf("e%d", i)
		if _, err := g.AddEdge(edgeID, "knows", strconv.Itoa(i), strconv.Itoa(i+1), nil); err != nil {
			return fmt.Errorf("load knows chain: %w", err)
		}
	}

	return nil
}
