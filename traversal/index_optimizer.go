package traversal

import (
	"github.com/sirupsen/logrus"

	"github.com/mycok/uGraph/graph"
)

// IndexOptimizerName is the registry name of the index optimizer.
const IndexOptimizerName = "index"

type indexOptimizer struct{}

// NewIndexOptimizer returns an optimizer that replaces a full scan followed
// by has conditions with an index lookup whenever one of the conditions is
// an equality test on an indexed key. The rewrite produces the same
// elements in the same order as the scan would.
func NewIndexOptimizer() Optimizer { return indexOptimizer{} }

func (indexOptimizer) Name() string { return IndexOptimizerName }

func (indexOptimizer) Optimize(t *Traversal) error {
	g := t.Graph()
	if g == nil {
		return nil
	}

	for i := 0; i < len(t.steps); i++ {
		start, ok := t.steps[i].(*GraphStep)
		if !ok || len(start.ids) > 0 {
			continue
		}

		var (
			containers []HasContainer
			labels     = start.Labels()
			end        = i + 1
		)

		for ; end < len(t.steps); end++ {
			has, ok := t.steps[end].(*HasStep)
			if !ok {
				break
			}

			containers = append(containers, has.Containers()...)
			labels = append(labels, has.Labels()...)
		}

		key, value, found := indexedCondition(g.IndexedKeys(start.kind), containers)
		if !found {
			continue
		}

		indexed := newIndexedGraphStep(start.kind, key, value, containers)
		for _, l := range labels {
			indexed.AddLabel(l)
		}

		t.Logger().WithFields(logrus.Fields{
			"kind":     start.kind.String(),
			"key":      key,
			"replaced": end - i,
		}).Debug("rewrote graph scan into index lookup")

		if err := t.ReplaceSteps(i, end, indexed); err != nil {
			return err
		}
	}

	return nil
}

// indexedCondition returns the first equality condition on an indexed key.
func indexedCondition(indexed []string, containers []HasContainer) (string, interface{}, bool) {
	for _, h := range containers {
		value, ok := h.isIndexable()
		if ok && stringIn(indexed, h.Key) {
			return h.Key, graph.NormalizeValue(value), true
		}
	}

	return "", nil, false
}
