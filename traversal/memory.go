package traversal

import (
	"fmt"
	"sort"
)

// MergeFunc folds an incoming value into the accumulated value of a
// side-effect key.
type MergeFunc func(acc, value interface{}) interface{}

// Memory holds the named side effects and the sack operators of one
// traversal. Nested traversals share the memory of their root. A
// traversal is iterated by a single goroutine, so Memory is not
// synchronised.
type Memory struct {
	values map[string]interface{}
	merges map[string]MergeFunc

	sackInitial func() interface{}
	sackSplit   func(interface{}) interface{}
	sackMerge   MergeFunc
}

func newMemory() *Memory {
	return &Memory{
		values: make(map[string]interface{}),
		merges: make(map[string]MergeFunc),
	}
}

// Register declares key with an initial value and the merge used by Add.
// Registering an existing key keeps its current value.
func (m *Memory) Register(key string, initial interface{}, merge MergeFunc) {
	if _, exists := m.values[key]; !exists {
		m.values[key] = initial
	}

	if merge != nil {
		m.merges[key] = merge
	}
}

// Exists reports whether key was declared.
func (m *Memory) Exists(key string) bool {
	_, exists := m.values[key]

	return exists
}

// Get returns the value accumulated under key.
func (m *Memory) Get(key string) (interface{}, error) {
	val, exists := m.values[key]
	if !exists {
		return nil, fmt.Errorf("side-effect %q: %w", key, ErrUndefinedSideEffectKey)
	}

	return val, nil
}

// Set replaces the value under key, declaring it if needed.
func (m *Memory) Set(key string, value interface{}) {
	m.values[key] = value
}

// Add merges value into key with the registered merge function. Keys
// without a merge function are overwritten.
func (m *Memory) Add(key string, value interface{}) {
	merge, exists := m.merges[key]
	if !exists {
		m.values[key] = value

		return
	}

	m.values[key] = merge(m.values[key], value)
}

// Keys returns the sorted side-effect keys.
func (m *Memory) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// SetSack configures the sack operators. A nil split copies the value
// as-is; a nil merge keeps the first sack when bulked traversers meet.
func (m *Memory) SetSack(initial func() interface{}, split func(interface{}) interface{}, merge MergeFunc) {
	m.sackInitial = initial
	m.sackSplit = split
	m.sackMerge = merge
}

// HasSack reports whether a sack initializer was configured.
func (m *Memory) HasSack() bool { return m.sackInitial != nil }

func (m *Memory) initialSack() interface{} {
	if m.sackInitial == nil {
		return nil
	}

	return m.sackInitial()
}

func (m *Memory) splitSack(sack interface{}) interface{} {
	if m.sackSplit == nil || sack == nil {
		return sack
	}

	return m.sackSplit(sack)
}

func (m *Memory) mergeSacks(a, b interface{}) interface{} {
	if m.sackMerge == nil {
		return a
	}

	return m.sackMerge(a, b)
}

// AppendMerge is a MergeFunc collecting values into a []interface{}.
func AppendMerge(acc, value interface{}) interface{} {
	list, _ := acc.([]interface{})

	return append(list, value)
}
