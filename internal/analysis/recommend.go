package analysis

import (
	"sort"

	"github.com/AbdelazizMoustafa10m/Rook/internal/graph"
	"github.com/AbdelazizMoustafa10m/Rook/internal/task"
)

// buildRecommendations derives the prioritization lists from the computed
// tables. HighImpact keeps the bottleneck ranking but drops completed
// tasks, which are not actionable. QuickWins collects pending tasks at or
// below the quick-win depth, ranked by transitive impact descending, then
// depth ascending, then id. Both lists are capped at the recommendation
// limit, and a task may appear in both. Cyclic graphs have no depth table,
// so the caller leaves both lists empty in that case.
func buildRecommendations(g *graph.Graph, res *Result, opts Options) Recommendations {
	recs := Recommendations{HighImpact: []Pick{}, QuickWins: []Pick{}}

	for _, b := range res.Bottlenecks {
		if len(recs.HighImpact) == opts.RecommendationLimit {
			break
		}
		if g.Class(b.ID) != task.ClassPending {
			continue
		}
		recs.HighImpact = append(recs.HighImpact, Pick{
			ID:     b.ID,
			Depth:  res.Depths[b.ID],
			Impact: b.ImpactCount,
		})
	}

	var wins []Pick
	for _, id := range g.IDs {
		if g.Class(id) != task.ClassPending {
			continue
		}
		if res.Depths[id] > opts.QuickWinDepth {
			continue
		}
		wins = append(wins, Pick{
			ID:     id,
			Depth:  res.Depths[id],
			Impact: res.Impacts[id].Transitive,
		})
	}
	sort.SliceStable(wins, func(i, j int) bool {
		if wins[i].Impact != wins[j].Impact {
			return wins[i].Impact > wins[j].Impact
		}
		if wins[i].Depth != wins[j].Depth {
			return wins[i].Depth < wins[j].Depth
		}
		return wins[i].ID < wins[j].ID
	})
	if len(wins) > opts.RecommendationLimit {
		wins = wins[:opts.RecommendationLimit]
	}
	recs.QuickWins = append(recs.QuickWins, wins...)

	return recs
}
