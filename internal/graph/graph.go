// Package graph builds the task dependency graph and detects cycles in it.
//
// Construction is a total operation: malformed records and dangling edges
// are reported as warnings and excluded, never as errors, so every input
// yields a usable graph.
package graph

import (
	"fmt"
	"sort"

	"github.com/AbdelazizMoustafa10m/Rook/internal/task"
)

// WarningKind identifies a class of data-integrity problem found while
// building the graph.
type WarningKind string

const (
	// WarnMissingID marks a task record with an empty id. The record is
	// excluded from the graph.
	WarnMissingID WarningKind = "missing-id"

	// WarnDuplicateID marks a task record whose id was already seen. The
	// first occurrence wins; later ones are excluded.
	WarnDuplicateID WarningKind = "duplicate-id"

	// WarnDanglingDependency marks a dependency reference to an id that is
	// not in the graph. The edge is dropped.
	WarnDanglingDependency WarningKind = "dangling-dependency"

	// WarnUnknownStatus marks a status value outside the known set. The
	// task is kept and classified as pending.
	WarnUnknownStatus WarningKind = "unknown-status"
)

// Warning records a single data-integrity problem. Warnings never abort
// analysis; they accumulate and ride along with the result.
type Warning struct {
	Kind   WarningKind
	TaskID string // offending task id; empty for missing-id
	Ref    string // referenced id (dangling-dependency) or status value (unknown-status)
	Index  int    // record ordinal, used when TaskID is empty
}

// String renders the warning as a stable human-readable message.
func (w Warning) String() string {
	switch w.Kind {
	case WarnMissingID:
		return fmt.Sprintf("task record #%d has no id and was skipped", w.Index)
	case WarnDuplicateID:
		return fmt.Sprintf("duplicate task id %q: first occurrence wins, later record skipped", w.TaskID)
	case WarnDanglingDependency:
		return fmt.Sprintf("task %s depends on unknown task %q: edge dropped", w.TaskID, w.Ref)
	case WarnUnknownStatus:
		return fmt.Sprintf("task %s has unrecognized status %q: treated as pending", w.TaskID, w.Ref)
	default:
		return fmt.Sprintf("task %s: %s", w.TaskID, w.Kind)
	}
}

// Graph is the task dependency graph. Deps holds forward edges from a task
// to its prerequisites; Dependents is the reverse index. All slices are
// sorted so iteration over the graph is deterministic.
type Graph struct {
	Tasks      map[string]task.Task
	IDs        []string            // all task ids, sorted
	Deps       map[string][]string // id -> prerequisite ids, sorted
	Dependents map[string][]string // id -> ids depending on it, sorted
	Roots      []string            // tasks with no prerequisites, sorted
	Leaves     []string            // tasks nothing depends on, sorted
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.Tasks)
}

// Class returns the status class of a task in the graph. Unknown statuses
// were already flagged during Build and classify as pending here.
func (g *Graph) Class(id string) task.StatusClass {
	return task.Classify(g.Tasks[id].Status)
}

// Build constructs a dependency graph from a task collection. It never
// fails: records with an empty id are skipped, duplicate ids keep the first
// record, edges to unknown ids are dropped, and unknown statuses classify
// as pending. Every such decision is recorded as a Warning, in record order
// for per-record problems and in sorted dependency order within a record.
// Self-dependency edges are kept; they surface later as one-node cycles.
func Build(tasks []task.Task) (*Graph, []Warning) {
	g := &Graph{
		Tasks:      make(map[string]task.Task, len(tasks)),
		Deps:       make(map[string][]string),
		Dependents: make(map[string][]string),
	}
	warnings := []Warning{}

	// Pass 1: index records, rejecting the malformed ones.
	accepted := make([]task.Task, 0, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			warnings = append(warnings, Warning{Kind: WarnMissingID, Index: i})
			continue
		}
		if _, dup := g.Tasks[t.ID]; dup {
			warnings = append(warnings, Warning{Kind: WarnDuplicateID, TaskID: t.ID, Index: i})
			continue
		}
		if !t.Status.IsValid() {
			warnings = append(warnings, Warning{
				Kind:   WarnUnknownStatus,
				TaskID: t.ID,
				Ref:    string(t.Status),
				Index:  i,
			})
		}
		g.Tasks[t.ID] = t
		accepted = append(accepted, t)
	}

	g.IDs = make([]string, 0, len(g.Tasks))
	for id := range g.Tasks {
		g.IDs = append(g.IDs, id)
	}
	sort.Strings(g.IDs)

	// Pass 2: edges, in record order of the accepted tasks. Duplicate
	// edges are deduplicated silently, including repeated dangling refs.
	edgeSet := make(map[[2]string]bool)
	for _, t := range accepted {
		deps := append([]string(nil), t.Dependencies...)
		sort.Strings(deps)
		for _, dep := range deps {
			key := [2]string{t.ID, dep}
			if edgeSet[key] {
				continue
			}
			edgeSet[key] = true

			if _, known := g.Tasks[dep]; !known {
				warnings = append(warnings, Warning{
					Kind:   WarnDanglingDependency,
					TaskID: t.ID,
					Ref:    dep,
				})
				continue
			}
			g.Deps[t.ID] = append(g.Deps[t.ID], dep)
			g.Dependents[dep] = append(g.Dependents[dep], t.ID)
		}
	}

	for k := range g.Deps {
		sort.Strings(g.Deps[k])
	}
	for k := range g.Dependents {
		sort.Strings(g.Dependents[k])
	}

	for _, id := range g.IDs {
		if len(g.Deps[id]) == 0 {
			g.Roots = append(g.Roots, id)
		}
		if len(g.Dependents[id]) == 0 {
			g.Leaves = append(g.Leaves, id)
		}
	}

	return g, warnings
}
