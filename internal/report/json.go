// Package report renders analysis results as machine-readable JSON or as
// styled terminal text. Both renderers work purely from the result object
// and never recompute analysis data.
package report

import (
	"encoding/json"
	"io"

	"github.com/AbdelazizMoustafa10m/Rook/internal/analysis"
)

// Summary is the JSON summary block with the headline counts.
type Summary struct {
	BlockedCount       int `json:"blockedCount"`
	MaxChainDepth      int `json:"maxChainDepth"`
	TotalImpactedTasks int `json:"totalImpactedTasks"`
	CriticalPathLength int `json:"criticalPathLength"`
	BottleneckCount    int `json:"bottleneckCount"`
}

// PathNode is one entry of a dependency chain or recommendation list.
type PathNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ChainDepth  int    `json:"chainDepth"`
	ImpactCount int    `json:"impactCount"`
}

// BottleneckEntry is the JSON shape of a single bottleneck.
type BottleneckEntry struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	ImpactCount  int      `json:"impactCount"`
	BlockedTasks []string `json:"blockedTasks"`
}

// Recommendations carries the two suggestion lists.
type Recommendations struct {
	HighImpact []PathNode `json:"highImpact"`
	QuickWins  []PathNode `json:"quickWins"`
}

// WarningEntry is the JSON shape of a single input integrity warning.
type WarningEntry struct {
	Kind    string `json:"kind"`
	TaskID  string `json:"taskId,omitempty"`
	Ref     string `json:"ref,omitempty"`
	Message string `json:"message"`
}

// Report is the top-level JSON document emitted by `rook analyze --json`.
// CriticalPath and Cycles serialize as null when absent; HistoricalPath is
// present only when every task in the graph is completed.
type Report struct {
	Fingerprint       string            `json:"fingerprint"`
	Summary           Summary           `json:"summary"`
	CriticalPath      []PathNode        `json:"criticalPath"`
	HistoricalPath    []PathNode        `json:"historicalPath,omitempty"`
	Bottlenecks       []BottleneckEntry `json:"bottlenecks"`
	Cycles            [][]string        `json:"cycles"`
	IndependentTasks  []string          `json:"independentTasks"`
	Recommendations   Recommendations   `json:"recommendations"`
	Warnings          []WarningEntry    `json:"warnings"`
	AllCompleted      bool              `json:"allCompleted"`
	TotalPendingTasks int               `json:"totalPendingTasks"`
}

// BuildJSON converts an analysis result into the serializable report document.
func BuildJSON(res *analysis.Result) *Report {
	rep := &Report{
		Fingerprint: res.Fingerprint,
		Summary: Summary{
			BlockedCount:       res.BlockedCount,
			MaxChainDepth:      res.MaxDepth,
			TotalImpactedTasks: res.ImpactedCount,
			CriticalPathLength: res.PathLength,
			BottleneckCount:    len(res.Bottlenecks),
		},
		CriticalPath:      chainNodes(res, res.CriticalPath),
		HistoricalPath:    blindChainNodes(res, res.HistoricalPath),
		Bottlenecks:       make([]BottleneckEntry, 0, len(res.Bottlenecks)),
		Cycles:            res.Cycles,
		IndependentTasks:  res.Independent,
		Recommendations:   buildRecommendations(res),
		Warnings:          make([]WarningEntry, 0, len(res.Warnings)),
		AllCompleted:      res.AllCompleted,
		TotalPendingTasks: res.TotalPending,
	}

	for _, b := range res.Bottlenecks {
		rep.Bottlenecks = append(rep.Bottlenecks, BottleneckEntry{
			ID:           b.ID,
			Title:        res.Task(b.ID).Title,
			ImpactCount:  b.ImpactCount,
			BlockedTasks: b.BlockedTasks,
		})
	}

	for _, w := range res.Warnings {
		rep.Warnings = append(rep.Warnings, WarningEntry{
			Kind:    string(w.Kind),
			TaskID:  w.TaskID,
			Ref:     w.Ref,
			Message: w.String(),
		})
	}

	return rep
}

// WriteJSON encodes the report for res to w with two-space indentation.
func WriteJSON(w io.Writer, res *analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSON(res))
}

// chainNodes maps a chain of task ids to path nodes using the status-aware
// depth table. A nil chain stays nil so it serializes as JSON null.
func chainNodes(res *analysis.Result, chain []string) []PathNode {
	if chain == nil {
		return nil
	}
	nodes := make([]PathNode, 0, len(chain))
	for _, id := range chain {
		nodes = append(nodes, PathNode{
			ID:          id,
			Title:       res.Task(id).Title,
			ChainDepth:  res.Depths[id],
			ImpactCount: res.Impacts[id].Transitive,
		})
	}
	return nodes
}

// blindChainNodes maps the historical chain to path nodes. Along a maximal
// chain with unit contributions the i-th node sits at depth i+1, so the
// position doubles as the status-blind chain depth.
func blindChainNodes(res *analysis.Result, chain []string) []PathNode {
	if chain == nil {
		return nil
	}
	nodes := make([]PathNode, 0, len(chain))
	for i, id := range chain {
		nodes = append(nodes, PathNode{
			ID:          id,
			Title:       res.Task(id).Title,
			ChainDepth:  i + 1,
			ImpactCount: res.Impacts[id].Transitive,
		})
	}
	return nodes
}

// buildRecommendations maps the engine picks onto path nodes.
func buildRecommendations(res *analysis.Result) Recommendations {
	rec := Recommendations{
		HighImpact: make([]PathNode, 0, len(res.Recommendations.HighImpact)),
		QuickWins:  make([]PathNode, 0, len(res.Recommendations.QuickWins)),
	}
	for _, p := range res.Recommendations.HighImpact {
		rec.HighImpact = append(rec.HighImpact, pickNode(res, p))
	}
	for _, p := range res.Recommendations.QuickWins {
		rec.QuickWins = append(rec.QuickWins, pickNode(res, p))
	}
	return rec
}

func pickNode(res *analysis.Result, p analysis.Pick) PathNode {
	return PathNode{
		ID:          p.ID,
		Title:       res.Task(p.ID).Title,
		ChainDepth:  p.Depth,
		ImpactCount: p.Impact,
	}
}
