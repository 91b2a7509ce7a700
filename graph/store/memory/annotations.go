package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mycok/uGraph/graph"
)

// annotations stores graph-level metadata. It has its own lock since it
// is never indexed and does not interact with element state.
type annotations struct {
	mu     sync.RWMutex
	values map[string]interface{}
}

func newAnnotations() *annotations {
	return &annotations{values: make(map[string]interface{})}
}

// Get returns the annotation stored under key.
func (a *annotations) Get(key string) (interface{}, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	val, exists := a.values[key]

	return val, exists
}

// Set stores an annotation. Nil values are rejected.
func (a *annotations) Set(key string, value interface{}) error {
	if key == "" {
		return fmt.Errorf("set annotation: %w", graph.ErrInvalidKey)
	}

	if value == nil {
		return fmt.Errorf("set annotation %q: nil value", key)
	}

	a.mu.Lock()
	a.values[key] = value
	a.mu.Unlock()

	return nil
}

// Keys returns the sorted annotation keys.
func (a *annotations) Keys() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	keys := make([]string, 0, len(a.values))
	for key := range a.values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
