package graph

import "sort"

// dfs colors. Gray means the node is on the current traversal path, so
// reaching a gray node closes a cycle.
const (
	white = iota
	gray
	black
)

// dfsFrame is one level of the explicit DFS stack. next indexes the first
// unexplored prerequisite of id.
type dfsFrame struct {
	id   string
	next int
}

// DetectCycles finds every disjoint dependency cycle in the graph. The DFS
// is iterative with an explicit stack, so arbitrarily deep graphs cannot
// exhaust the call stack. The scan covers the full graph regardless of task
// status; a cycle among completed tasks is still a data-integrity problem.
//
// Each cycle is a closed ordered list that starts and ends at the same id,
// rotated so the lexicographically smallest member comes first. A task that
// depends on itself yields a one-node cycle [X X]. Once a cycle is reported
// its members are marked, so overlapping rediscoveries are suppressed while
// fully disjoint cycles are all found. Returns nil when the graph is
// acyclic.
func DetectCycles(g *Graph) [][]string {
	color := make(map[string]int, len(g.IDs))
	inCycle := make(map[string]bool)
	var cycles [][]string

	for _, start := range g.IDs {
		if color[start] != white {
			continue
		}

		stack := []dfsFrame{{id: start}}
		color[start] = gray
		path := []string{start}
		onPath := map[string]int{start: 0}

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			deps := g.Deps[f.id]

			if f.next >= len(deps) {
				color[f.id] = black
				delete(onPath, f.id)
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
				continue
			}

			next := deps[f.next]
			f.next++

			switch color[next] {
			case white:
				color[next] = gray
				onPath[next] = len(path)
				path = append(path, next)
				stack = append(stack, dfsFrame{id: next})
			case gray:
				// The path from next's position onward, closed with next
				// again, is the exact cycle.
				cyc := append(append([]string(nil), path[onPath[next]:]...), next)
				if !anyInCycle(cyc, inCycle) {
					for _, id := range cyc {
						inCycle[id] = true
					}
					cycles = append(cycles, normalizeCycle(cyc))
				}
			}
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles
}

// anyInCycle reports whether any member of cyc was already reported as part
// of an earlier cycle.
func anyInCycle(cyc []string, inCycle map[string]bool) bool {
	for _, id := range cyc {
		if inCycle[id] {
			return true
		}
	}
	return false
}

// normalizeCycle rotates a closed cycle so its lexicographically smallest
// member comes first, keeping the closing duplicate. [B C A B] becomes
// [A B C A].
func normalizeCycle(cyc []string) []string {
	members := cyc[:len(cyc)-1]

	minIdx := 0
	for i, id := range members {
		if id < members[minIdx] {
			minIdx = i
		}
	}

	rotated := make([]string, 0, len(cyc))
	for i := 0; i < len(members); i++ {
		rotated = append(rotated, members[(minIdx+i)%len(members)])
	}
	return append(rotated, rotated[0])
}
