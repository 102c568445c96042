// Package analysis implements the dependency analysis pipeline: graph
// construction, cycle detection, chain depths, critical-path extraction,
// impact scoring, and prioritization recommendations.
//
// Analyze is a pure function of its input. It allocates its own graph and
// tables per call and touches no shared state, so concurrent calls need no
// locking. There is no failure path: every input, however degenerate,
// yields a well-formed Result plus zero or more warnings.
package analysis

import (
	"github.com/AbdelazizMoustafa10m/Rook/internal/graph"
	"github.com/AbdelazizMoustafa10m/Rook/internal/task"
)

// Analyze runs the full pipeline over a task collection.
//
// Stages run in a fixed order: build the graph (accumulating integrity
// warnings), detect cycles, then compute depths, the critical path, and
// recommendations only when the graph is acyclic. Impact scores and
// bottlenecks are computed either way, since reverse reachability stays
// well-defined on cyclic graphs. The sweep impact strategy needs a
// topological order, so a cyclic graph silently falls back to BFS.
func Analyze(tasks []task.Task, opts Options) *Result {
	opts = opts.normalized()

	g, warnings := graph.Build(tasks)

	res := &Result{
		Bottlenecks: []Bottleneck{},
		Independent: []string{},
		Depths:      map[string]int{},
		Impacts:     map[string]Impact{},
		Warnings:    warnings,
		Recommendations: Recommendations{
			HighImpact: []Pick{},
			QuickWins:  []Pick{},
		},
		Tasks:       g.Tasks,
		Fingerprint: task.FingerprintString(tasks),
	}

	if g.Len() == 0 {
		return res
	}

	for _, id := range g.IDs {
		if g.Class(id) == task.ClassPending {
			res.TotalPending++
		}
		if len(g.Deps[id]) == 0 && len(g.Dependents[id]) == 0 {
			res.Independent = append(res.Independent, id)
		}
		if len(g.Deps[id]) > 0 {
			res.ImpactedCount++
		}
	}
	res.AllCompleted = res.TotalPending == 0

	for _, id := range g.IDs {
		if g.Class(id) != task.ClassPending {
			continue
		}
		for _, dep := range g.Deps[id] {
			if g.Class(dep) == task.ClassPending {
				res.BlockedCount++
				break
			}
		}
	}

	res.Cycles = graph.DetectCycles(g)
	if res.Cycles != nil {
		// Depth and path computation are undefined on cyclic graphs and
		// are skipped entirely; impact and bottleneck reporting still run.
		res.Impacts = impactsBFS(g)
		res.Bottlenecks = buildBottlenecks(g, res.Impacts, opts.BottleneckThreshold)
		return res
	}

	order := topoOrder(g)

	switch opts.ImpactStrategy {
	case StrategySweep:
		res.Impacts = impactsSweep(g, order)
	default:
		res.Impacts = impactsBFS(g)
	}

	res.Depths = computeDepths(g, order, false)
	for _, id := range g.IDs {
		if res.Depths[id] > res.MaxDepth {
			res.MaxDepth = res.Depths[id]
		}
	}

	// A chain needs at least one dependency edge. Without any, every task
	// is independent and there is no critical path, even though pending
	// tasks still carry depth 1.
	if res.ImpactedCount > 0 {
		chain := extractPath(g, res.Depths)
		res.CriticalPath = filterPending(g, chain)
		res.PathLength = len(res.CriticalPath)

		if res.AllCompleted {
			// Nothing is pending, so the critical path is empty; the
			// status-blind chain is still worth reporting as history.
			blind := computeDepths(g, order, true)
			res.HistoricalPath = extractPath(g, blind)
		}
	}

	res.Bottlenecks = buildBottlenecks(g, res.Impacts, opts.BottleneckThreshold)
	res.Recommendations = buildRecommendations(g, res, opts)

	return res
}
