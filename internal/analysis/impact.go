package analysis

import (
	"math/bits"
	"sort"

	"github.com/AbdelazizMoustafa10m/Rook/internal/graph"
)

// impactsBFS computes every task's impact with a reverse breadth-first
// search from that task over the dependents index. Reachability is
// well-defined on cyclic graphs too; seeding the visited set with the
// start node keeps a cycle member from counting itself.
func impactsBFS(g *graph.Graph) map[string]Impact {
	impacts := make(map[string]Impact, len(g.IDs))

	for _, id := range g.IDs {
		visited := map[string]bool{id: true}
		queue := append([]string(nil), g.Dependents[id]...)

		count := 0
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			if visited[node] {
				continue
			}
			visited[node] = true
			count++
			queue = append(queue, g.Dependents[node]...)
		}

		impacts[id] = Impact{Direct: len(g.Dependents[id]), Transitive: count}
	}
	return impacts
}

// impactsSweep computes all impacts in a single pass over the reverse
// topological order. Each task's reachable-dependent set is a bitset built
// by unioning the sets of its direct dependents; those all come later in
// topological order, so one descending sweep sees them fully built.
// Requires an acyclic graph (order must cover every task).
func impactsSweep(g *graph.Graph, order []string) map[string]Impact {
	n := len(order)
	index := make(map[string]int, n)
	for i, id := range order {
		index[id] = i
	}

	words := (n + 63) / 64
	sets := make([][]uint64, n)
	impacts := make(map[string]Impact, n)

	for i := n - 1; i >= 0; i-- {
		id := order[i]
		set := make([]uint64, words)
		for _, dependent := range g.Dependents[id] {
			j := index[dependent]
			set[j/64] |= 1 << (j % 64)
			for w, b := range sets[j] {
				set[w] |= b
			}
		}
		sets[i] = set

		count := 0
		for _, w := range set {
			count += bits.OnesCount64(w)
		}
		impacts[id] = Impact{Direct: len(g.Dependents[id]), Transitive: count}
	}
	return impacts
}

// buildBottlenecks ranks the tasks whose transitive impact meets the
// threshold: impact descending, ties toward the lowest id. Status does not
// participate; a completed bottleneck is still worth seeing.
func buildBottlenecks(g *graph.Graph, impacts map[string]Impact, threshold int) []Bottleneck {
	out := []Bottleneck{}
	for _, id := range g.IDs {
		imp := impacts[id]
		if imp.Transitive < threshold {
			continue
		}
		out = append(out, Bottleneck{
			ID:           id,
			ImpactCount:  imp.Transitive,
			BlockedTasks: append([]string(nil), g.Dependents[id]...),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ImpactCount != out[j].ImpactCount {
			return out[i].ImpactCount > out[j].ImpactCount
		}
		return out[i].ID < out[j].ID
	})
	return out
}
