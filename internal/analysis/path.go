package analysis

import (
	"github.com/AbdelazizMoustafa10m/Rook/internal/graph"
	"github.com/AbdelazizMoustafa10m/Rook/internal/task"
)

// extractPath walks the depth table from its deepest node back to a root
// and returns the chain root-first, or nil when the table's maximum is 0.
// The anchor is the lowest id among max-depth nodes; each backtrack step
// moves to the prerequisite with the highest depth, ties broken toward the
// lowest id. Both tie-breaks make the extracted chain deterministic.
func extractPath(g *graph.Graph, depths map[string]int) []string {
	maxDepth := 0
	for _, id := range g.IDs {
		if depths[id] > maxDepth {
			maxDepth = depths[id]
		}
	}
	if maxDepth == 0 {
		return nil
	}

	// g.IDs is sorted, so the first max-depth hit is the lowest id.
	var anchor string
	for _, id := range g.IDs {
		if depths[id] == maxDepth {
			anchor = id
			break
		}
	}

	path := []string{anchor}
	current := anchor
	for len(g.Deps[current]) > 0 {
		// Prerequisites are sorted; strict greater-than keeps the lowest
		// id on depth ties.
		best := g.Deps[current][0]
		for _, dep := range g.Deps[current][1:] {
			if depths[dep] > depths[best] {
				best = dep
			}
		}
		path = append(path, best)
		current = best
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// filterPending drops completed-class tasks from a chain, preserving
// order. A nil chain stays nil; a chain that loses every member comes back
// nil as well.
func filterPending(g *graph.Graph, chain []string) []string {
	var out []string
	for _, id := range chain {
		if g.Class(id) == task.ClassPending {
			out = append(out, id)
		}
	}
	return out
}
