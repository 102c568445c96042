package analysis

import (
	"github.com/AbdelazizMoustafa10m/Rook/internal/graph"
	"github.com/AbdelazizMoustafa10m/Rook/internal/task"
)

// Impact is a task's dependent footprint: Direct counts the tasks
// immediately behind it, Transitive counts everything reachable behind it.
type Impact struct {
	Direct     int
	Transitive int
}

// Bottleneck is a task whose transitive impact meets the configured
// threshold. BlockedTasks lists the immediate dependents only, sorted;
// ImpactCount is the transitive total.
type Bottleneck struct {
	ID           string
	ImpactCount  int
	BlockedTasks []string
}

// Pick is one recommended task with the numbers that earned it the slot.
type Pick struct {
	ID     string
	Depth  int
	Impact int
}

// Recommendations are the prioritization lists derived from the analysis:
// HighImpact carries pending bottlenecks in rank order, QuickWins carries
// shallow pending tasks ranked by impact. Both are empty when the graph is
// cyclic.
type Recommendations struct {
	HighImpact []Pick
	QuickWins  []Pick
}

// Result is the complete analysis of one task collection. It is constructed
// fresh per Analyze call, never mutated after return, and shares no state
// across calls. CriticalPath and Cycles are nil, not empty, when absent;
// consumers must check Cycles before trusting CriticalPath.
type Result struct {
	CriticalPath   []string // pending-class chain, root first; nil when none
	PathLength     int      // length of CriticalPath
	HistoricalPath []string // status-blind chain, only when AllCompleted
	Bottlenecks    []Bottleneck
	Cycles         [][]string // nil when acyclic
	Independent    []string   // tasks with no edges in either direction
	AllCompleted   bool       // at least one task, all completed-class
	TotalPending   int        // pending-class task count
	MaxDepth       int        // global maximum chain depth
	BlockedCount   int        // pending-class tasks with an incomplete prerequisite
	ImpactedCount  int        // tasks with at least one kept dependency edge

	Depths  map[string]int    // per-task chain depth; empty when cyclic
	Impacts map[string]Impact // per-task impact, cyclic or not

	Warnings        []graph.Warning
	Recommendations Recommendations

	// Tasks and Fingerprint let the report layer render without re-reading
	// the input.
	Tasks       map[string]task.Task
	Fingerprint string
}

// Cyclic reports whether the dependency graph contains at least one cycle.
func (r *Result) Cyclic() bool {
	return len(r.Cycles) > 0
}

// Task returns the task record for id, which must be in the analyzed set.
func (r *Result) Task(id string) task.Task {
	return r.Tasks[id]
}
