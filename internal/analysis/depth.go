package analysis

import (
	"sort"

	"github.com/AbdelazizMoustafa10m/Rook/internal/graph"
	"github.com/AbdelazizMoustafa10m/Rook/internal/task"
)

// topoOrder returns a Kahn topological order of an acyclic graph:
// prerequisites before dependents. The initial queue and every batch of
// newly ready tasks are sorted, so the order is fully deterministic.
func topoOrder(g *graph.Graph) []string {
	inDegree := make(map[string]int, len(g.IDs))
	for _, id := range g.IDs {
		inDegree[id] = len(g.Deps[id])
	}

	// g.IDs is sorted, so the roots enter the queue in id order.
	var queue []string
	for _, id := range g.IDs {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(g.IDs))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		var ready []string
		for _, dependent := range g.Dependents[node] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
		sort.Strings(ready)
		queue = append(queue, ready...)
	}

	return order
}

// computeDepths runs the chain-depth recurrence in topological order:
//
//	depth(n) = base(n) + max(depth(d) for d in deps(n))
//
// where base is 1 for pending-class tasks and 0 for completed-class ones,
// and the max over no dependencies is 0. A completed task contributes
// nothing to its own chain but still propagates its prerequisites' depths.
// blind forces base 1 everywhere, which is how the historical chain over a
// fully completed graph is measured.
func computeDepths(g *graph.Graph, order []string, blind bool) map[string]int {
	depths := make(map[string]int, len(order))
	for _, id := range order {
		base := 1
		if !blind && g.Class(id) == task.ClassCompleted {
			base = 0
		}

		maxDep := 0
		for _, dep := range g.Deps[id] {
			if d := depths[dep]; d > maxDep {
				maxDep = d
			}
		}
		depths[id] = base + maxDep
	}
	return depths
}
