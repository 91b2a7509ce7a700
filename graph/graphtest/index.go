package graphtest

import (
	"fmt"
	"math"
	"sort"

	check "gopkg.in/check.v1"

	"github.com/mycok/uGraph/graph"
)

// TestIndexMaintenance verifies that set, overwrite and remove keep the
// index current.
func (s *BaseSuite) TestIndexMaintenance(c *check.C) {
	c.Assert(s.g.CreateKeyIndex(graph.VertexKind, "name"), check.IsNil)
	c.Assert(s.g.IndexedKeys(graph.VertexKind), check.DeepEquals, []string{"name"})
	c.Assert(s.g.IndexedKeys(graph.EdgeKind), check.HasLen, 0)

	v, err := s.g.AddVertex("1", "person", graph.Properties{"name": "marko"})
	c.Assert(err, check.IsNil)
	s.assertLookup(c, graph.VertexKind, "name", "marko", "1")

	c.Assert(v.SetProperty("name", "josh"), check.IsNil)
	s.assertLookup(c, graph.VertexKind, "name", "josh", "1")
	s.assertLookup(c, graph.VertexKind, "name", "marko")

	c.Assert(s.g.SetProperty(graph.VertexKind, "1", "name", "peter"), check.IsNil)
	s.assertLookup(c, graph.VertexKind, "name", "peter", "1")
	s.assertLookup(c, graph.VertexKind, "name", "josh")

	c.Assert(s.g.RemoveProperty(graph.VertexKind, "1", "name"), check.IsNil)
	s.assertLookup(c, graph.VertexKind, "name", "peter")

	c.Assert(v.SetProperty("name", "vadas"), check.IsNil)
	c.Assert(v.SetProperty("name", nil), check.IsNil)
	s.assertLookup(c, graph.VertexKind, "name", "vadas")
}

// TestIndexBackfill verifies that creating an index picks up existing
// elements.
func (s *BaseSuite) TestIndexBackfill(c *check.C) {
	for i := 0; i < 10; i++ {
		_, err := s.g.AddVertex(fmt.Sprint(i), "", graph.Properties{"group": i % 3})
		c.Assert(err, check.IsNil)
	}

	c.Assert(s.g.CreateKeyIndex(graph.VertexKind, "group"), check.IsNil)
	s.assertLookup(c, graph.VertexKind, "group", 0, "0", "3", "6", "9")
	s.assertLookup(c, graph.VertexKind, "group", int64(1), "1", "4", "7")
	s.assertLookup(c, graph.VertexKind, "group", 2.0, "2", "5", "8")
}

// TestIndexAgreesWithScan verifies that index lookups and full scans
// return identical id sets for every value present in the graph.
func (s *BaseSuite) TestIndexAgreesWithScan(c *check.C) {
	values := []interface{}{"a", "b", 1, int32(1), 2.5, true, []string{"x"}}
	for i := 0; i < 40; i++ {
		_, err := s.g.AddVertex("", "", graph.Properties{"k": values[i%len(values)]})
		c.Assert(err, check.IsNil)
	}

	scanned := make(map[int][]string)
	for i, val := range values {
		ids, err := s.g.Lookup(graph.VertexKind, "k", val)
		c.Assert(err, check.IsNil)
		scanned[i] = ids
	}

	c.Assert(s.g.CreateKeyIndex(graph.VertexKind, "k"), check.IsNil)
	for i, val := range values {
		ids, err := s.g.Lookup(graph.VertexKind, "k", val)
		c.Assert(err, check.IsNil)
		c.Assert(ids, check.DeepEquals, scanned[i], check.Commentf("value %v", val))

		elements, err := s.g.LookupElements(graph.VertexKind, "k", val)
		c.Assert(err, check.IsNil)
		c.Assert(elements, check.HasLen, len(ids))
	}

	c.Assert(s.g.DropKeyIndex(graph.VertexKind, "k"), check.IsNil)
	c.Assert(s.g.IndexedKeys(graph.VertexKind), check.HasLen, 0)
	for i, val := range values {
		ids, err := s.g.Lookup(graph.VertexKind, "k", val)
		c.Assert(err, check.IsNil)
		c.Assert(ids, check.DeepEquals, scanned[i], check.Commentf("value %v", val))
	}
}

// TestIndexAfterElementRemoval verifies that deleting the element holding
// an indexed value empties its lookup.
func (s *BaseSuite) TestIndexAfterElementRemoval(c *check.C) {
	c.Assert(s.g.CreateKeyIndex(graph.VertexKind, "name"), check.IsNil)

	alice, err := s.g.AddVertex("", "person", graph.Properties{"name": "alice"})
	c.Assert(err, check.IsNil)
	_, err = s.g.AddVertex("", "person", graph.Properties{"name": "bob"})
	c.Assert(err, check.IsNil)

	c.Assert(s.g.RemoveElement(graph.VertexKind, alice.ID()), check.IsNil)
	s.assertLookup(c, graph.VertexKind, "name", "alice")
}

// TestIndexNaNValues verifies that NaN values land in a single index
// bucket that is maintained like any other value.
func (s *BaseSuite) TestIndexNaNValues(c *check.C) {
	c.Assert(s.g.CreateKeyIndex(graph.VertexKind, "score"), check.IsNil)

	for _, id := range []string{"1", "2", "3"} {
		_, err := s.g.AddVertex(id, "", graph.Properties{"score": math.NaN()})
		c.Assert(err, check.IsNil)
	}

	_, err := s.g.AddVertex("4", "", graph.Properties{"score": float32(math.NaN())})
	c.Assert(err, check.IsNil)
	s.assertLookup(c, graph.VertexKind, "score", math.NaN(), "1", "2", "3", "4")
	s.verifyIndexes(c)

	c.Assert(s.g.SetProperty(graph.VertexKind, "1", "score", 1.5), check.IsNil)
	c.Assert(s.g.RemoveProperty(graph.VertexKind, "2", "score"), check.IsNil)
	c.Assert(s.g.RemoveElement(graph.VertexKind, "3"), check.IsNil)

	s.assertLookup(c, graph.VertexKind, "score", math.NaN(), "4")
	s.assertLookup(c, graph.VertexKind, "score", 1.5, "1")
	s.verifyIndexes(c)

	c.Assert(s.g.RemoveElement(graph.VertexKind, "4"), check.IsNil)
	s.assertLookup(c, graph.VertexKind, "score", math.NaN())
	s.verifyIndexes(c)
}

// verifyIndexes runs the store's index self-check when it provides one.
func (s *BaseSuite) verifyIndexes(c *check.C) {
	if verifier, ok := s.g.(interface{ VerifyIndexes() error }); ok {
		c.Assert(verifier.VerifyIndexes(), check.IsNil)
	}
}

func (s *BaseSuite) assertLookup(c *check.C, kind graph.Kind, key string, value interface{}, expIDs ...string) {
	ids, err := s.g.Lookup(kind, key, value)
	c.Assert(err, check.IsNil)

	if expIDs == nil {
		expIDs = []string{}
	}

	sort.Strings(expIDs)
	c.Assert(ids, check.DeepEquals, expIDs, check.Commentf("lookup %s=%v", key, value))
}
