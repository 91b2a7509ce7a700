package memory

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/mycok/uGraph/graph"
)

// idSet is a set of element identifiers.
type idSet map[string]struct{}

// keyIndex maps an indexed property key to the ids of the elements holding
// each (normalised) value of that key. It is a cache over a full scan and
// is only ever mutated while the owning graph's write lock is held.
type keyIndex struct {
	keys map[string]map[interface{}]idSet
}

func newKeyIndex() *keyIndex {
	return &keyIndex{keys: make(map[string]map[interface{}]idSet)}
}

func (idx *keyIndex) indexed(key string) bool {
	_, exists := idx.keys[key]

	return exists
}

func (idx *keyIndex) add(key string, value interface{}, id string) {
	values, exists := idx.keys[key]
	if !exists {
		return
	}

	vk := graph.ValueKey(value)
	ids := values[vk]
	if ids == nil {
		ids = make(idSet)
		values[vk] = ids
	}

	ids[id] = struct{}{}
}

func (idx *keyIndex) remove(key string, value interface{}, id string) {
	values, exists := idx.keys[key]
	if !exists {
		return
	}

	vk := graph.ValueKey(value)
	ids := values[vk]
	delete(ids, id)

	if len(ids) == 0 {
		delete(values, vk)
	}
}

// removeElement drops every index entry held by an element that is being
// deleted.
func (idx *keyIndex) removeElement(id string, props map[string]interface{}) {
	for key, value := range props {
		idx.remove(key, value, id)
	}
}

func (idx *keyIndex) lookup(key string, value interface{}) ([]string, bool) {
	values, exists := idx.keys[key]
	if !exists {
		return nil, false
	}

	return sortedIDs(values[graph.ValueKey(value)]), true
}

func (idx *keyIndex) indexedKeys() []string {
	keys := make([]string, 0, len(idx.keys))
	for key := range idx.keys {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func (s *InMemoryGraph) indexFor(kind graph.Kind) *keyIndex {
	if kind == graph.EdgeKind {
		return s.edgeIndex
	}

	return s.vertexIndex
}

// recordsLocked returns the records of every element of a kind. Callers must
// hold at least the read lock.
func (s *InMemoryGraph) recordsLocked(kind graph.Kind) []*element {
	var recs []*element

	if kind == graph.EdgeKind {
		recs = make([]*element, 0, len(s.edges))
		for _, e := range s.edges {
			recs = append(recs, &e.element)
		}

		return recs
	}

	recs = make([]*element, 0, len(s.vertices))
	for _, v := range s.vertices {
		recs = append(recs, &v.element)
	}

	return recs
}

// CreateKeyIndex backfills an index for key from the current elements and
// then marks the key as indexed. Creating an index that already exists is
// a no-op.
func (s *InMemoryGraph) CreateKeyIndex(kind graph.Kind, key string) error {
	if err := checkKind(kind); err != nil {
		return fmt.Errorf("create key index: %w", err)
	}

	if err := graph.ValidateKey(key); err != nil {
		return fmt.Errorf("create key index: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexFor(kind)
	if idx.indexed(key) {
		return nil
	}

	idx.keys[key] = make(map[interface{}]idSet)
	for _, rec := range s.recordsLocked(kind) {
		if value, exists := rec.props[key]; exists {
			idx.add(key, value, rec.id)
		}
	}

	return nil
}

// DropKeyIndex discards the index for key. Future lookups on that key fall
// back to a full scan.
func (s *InMemoryGraph) DropKeyIndex(kind graph.Kind, key string) error {
	if err := checkKind(kind); err != nil {
		return fmt.Errorf("drop key index: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.indexFor(kind).keys, key)

	return nil
}

// IndexedKeys returns the sorted set of indexed keys of a kind.
func (s *InMemoryGraph) IndexedKeys(kind graph.Kind) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.indexFor(kind).indexedKeys()
}

// Lookup returns the sorted ids of the elements of a kind whose key equals
// value.
func (s *InMemoryGraph) Lookup(kind graph.Kind, key string, value interface{}) ([]string, error) {
	if err := checkKind(kind); err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lookupLocked(kind, key, value), nil
}

func (s *InMemoryGraph) lookupLocked(kind graph.Kind, key string, value interface{}) []string {
	if ids, indexed := s.indexFor(kind).lookup(key, value); indexed {
		return ids
	}

	return s.scanLocked(kind, key, value)
}

// scanLocked performs the full-scan lookup that the index caches.
func (s *InMemoryGraph) scanLocked(kind graph.Kind, key string, value interface{}) []string {
	matches := make(idSet)
	for _, rec := range s.recordsLocked(kind) {
		if current, exists := rec.props[key]; exists && graph.ValuesEqual(current, value) {
			matches[rec.id] = struct{}{}
		}
	}

	return sortedIDs(matches)
}

// LookupElements resolves Lookup results to element handles. Every
// resolved element is checked against the looked-up value; a mismatch is
// reported as graph.ErrIndexInconsistency.
func (s *InMemoryGraph) LookupElements(kind graph.Kind, key string, value interface{}) ([]graph.Element, error) {
	if err := checkKind(kind); err != nil {
		return nil, fmt.Errorf("lookup elements: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.lookupLocked(kind, key, value)
	elements := make([]graph.Element, 0, len(ids))

	for _, id := range ids {
		rec, err := s.recordLocked(kind, id)
		if err != nil {
			return nil, fmt.Errorf(
				"index for %s key %q references missing element %q: %w",
				kind, key, id, graph.ErrIndexInconsistency,
			)
		}

		if current, exists := rec.props[key]; !exists || !graph.ValuesEqual(current, value) {
			return nil, fmt.Errorf(
				"index for %s key %q returned element %q with value %v instead of %v: %w",
				kind, key, id, current, value, graph.ErrIndexInconsistency,
			)
		}

		elements = append(elements, rec.self)
	}

	return elements, nil
}

// VerifyIndexes rebuilds every index from a full scan and compares it with
// the maintained one. Every inconsistent key is reported.
func (s *InMemoryGraph) VerifyIndexes() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var err error

	for _, kind := range []graph.Kind{graph.VertexKind, graph.EdgeKind} {
		idx := s.indexFor(kind)
		for key, values := range idx.keys {
			expected := make(map[interface{}]idSet)
			for _, rec := range s.recordsLocked(kind) {
				if value, exists := rec.props[key]; exists {
					vk := graph.ValueKey(value)
					ids := expected[vk]
					if ids == nil {
						ids = make(idSet)
						expected[vk] = ids
					}
					ids[rec.id] = struct{}{}
				}
			}

			if !sameEntries(expected, values) {
				err = multierror.Append(err, fmt.Errorf("%s key %q: %w", kind, key, graph.ErrIndexInconsistency))
			}
		}
	}

	return err
}

func sameEntries(a, b map[interface{}]idSet) bool {
	if len(a) != len(b) {
		return false
	}

	for vk, ids := range a {
		other, exists := b[vk]
		if !exists || len(other) != len(ids) {
			return false
		}

		for id := range ids {
			if _, exists := other[id]; !exists {
				return false
			}
		}
	}

	return true
}

func sortedIDs(set idSet) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

func checkKind(kind graph.Kind) error {
	if kind != graph.VertexKind && kind != graph.EdgeKind {
		return graph.ErrUnknownKind
	}

	return nil
}
