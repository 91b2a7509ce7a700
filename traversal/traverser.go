package traversal

import (
	"fmt"
	"strings"

	"github.com/mycok/uGraph/graph"
)

// Traverser is the unit of flow through a traversal. It carries the current
// value together with the state steps may need about how the value was
// reached.
type Traverser struct {
	value interface{}
	path  *Path
	bulk  int64
	loops int
	sack  interface{}
}

func newTraverser(value interface{}, bulk int64) *Traverser {
	return &Traverser{value: value, bulk: bulk}
}

// Get returns the current value.
func (t *Traverser) Get() interface{} { return t.value }

// Bulk returns the number of logically identical traversers this one
// stands for.
func (t *Traverser) Bulk() int64 { return t.bulk }

// Loops returns the number of completed iterations of the enclosing repeat.
func (t *Traverser) Loops() int { return t.loops }

// Path returns the recorded path, or nil when path tracking is disabled.
func (t *Traverser) Path() *Path { return t.path }

// Sack returns the sack value.
func (t *Traverser) Sack() interface{} { return t.sack }

// String returns the value formatted with fmt.
func (t *Traverser) String() string { return fmt.Sprint(t.value) }

func (t *Traverser) clone() *Traverser {
	c := *t

	return &c
}

// split derives a traverser holding value, as produced by a map step with
// the given labels. The sack is copied with the memory's split operator.
func (t *Traverser) split(value interface{}, labels []string, mem *Memory) *Traverser {
	c := t.clone()
	c.value = value

	if c.path != nil {
		c.path = c.path.extend(value, labels)
	}

	if mem != nil {
		c.sack = mem.splitSack(t.sack)
	}

	return c
}

// labeled returns a copy of t whose last path entry also carries labels,
// as produced by a filter or side-effect step with the given labels.
func (t *Traverser) labeled(labels []string) *Traverser {
	if t.path == nil || len(labels) == 0 {
		return t
	}

	c := t.clone()
	c.path = c.path.addLabels(labels)

	return c
}

// Path is the immutable history of values a traverser visited, each entry
// tagged with the labels of the step that produced it.
type Path struct {
	objects []interface{}
	labels  [][]string
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// Size returns the number of path entries.
func (p *Path) Size() int { return len(p.objects) }

// Objects returns a copy of the path values.
func (p *Path) Objects() []interface{} {
	return append([]interface{}(nil), p.objects...)
}

// Labels returns a copy of the per-entry label sets.
func (p *Path) Labels() [][]string {
	labels := make([][]string, len(p.labels))
	for i, l := range p.labels {
		labels[i] = append([]string(nil), l...)
	}

	return labels
}

// Get returns the most recent value tagged with label.
func (p *Path) Get(label string) (interface{}, bool) {
	for i := len(p.labels) - 1; i >= 0; i-- {
		for _, l := range p.labels[i] {
			if l == label {
				return p.objects[i], true
			}
		}
	}

	return nil, false
}

// HasLabel reports whether any entry is tagged with label.
func (p *Path) HasLabel(label string) bool {
	_, exists := p.Get(label)

	return exists
}

// IsSimple reports whether no value repeats along the path.
func (p *Path) IsSimple() bool {
	seen := make(map[interface{}]struct{}, len(p.objects))
	for _, obj := range p.objects {
		key := graph.ValueKey(obj)
		if _, exists := seen[key]; exists {
			return false
		}

		seen[key] = struct{}{}
	}

	return true
}

// String returns the path as [v1, v2, ...].
func (p *Path) String() string {
	parts := make([]string, len(p.objects))
	for i, obj := range p.objects {
		parts[i] = fmt.Sprint(obj)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func (p *Path) extend(obj interface{}, labels []string) *Path {
	n := len(p.objects)
	ext := &Path{
		objects: make([]interface{}, n, n+1),
		labels:  make([][]string, n, n+1),
	}

	copy(ext.objects, p.objects)
	copy(ext.labels, p.labels)

	ext.objects = append(ext.objects, obj)
	ext.labels = append(ext.labels, append([]string(nil), labels...))

	return ext
}

func (p *Path) addLabels(labels []string) *Path {
	n := len(p.objects)
	if n == 0 {
		return p
	}

	ext := &Path{
		objects: append([]interface{}(nil), p.objects...),
		labels:  make([][]string, n),
	}

	copy(ext.labels, p.labels)
	last := append([]string(nil), p.labels[n-1]...)
	ext.labels[n-1] = append(last, labels...)

	return ext
}

// key identifies the path for bulking purposes.
func (p *Path) key() string {
	if p == nil {
		return ""
	}

	var sb strings.Builder
	for i, obj := range p.objects {
		fmt.Fprintf(&sb, "%v%v;", graph.ValueKey(obj), p.labels[i])
	}

	return sb.String()
}
