package analysis

import "fmt"

// Strategy selects the transitive-impact algorithm.
type Strategy string

const (
	// StrategyBFS runs a reverse breadth-first search per task. Works on
	// any graph, including cyclic ones. O(V*(V+E)).
	StrategyBFS Strategy = "bfs"

	// StrategySweep unions dependent bitsets in one reverse-topological
	// pass. Faster on large graphs but needs an acyclic one; Analyze falls
	// back to BFS when cycles are present.
	StrategySweep Strategy = "sweep"
)

// Defaults for Options fields left at zero.
const (
	DefaultBottleneckThreshold = 2
	DefaultQuickWinDepth       = 2
	DefaultRecommendationLimit = 5
)

// Options tune the analysis. The zero value is usable; zero or negative
// numeric fields and an empty strategy fall back to the defaults.
type Options struct {
	// BottleneckThreshold is the minimum transitive impact for a task to
	// be reported as a bottleneck.
	BottleneckThreshold int

	// QuickWinDepth is the maximum chain depth for a pending task to
	// qualify as a quick win.
	QuickWinDepth int

	// RecommendationLimit caps each recommendation list.
	RecommendationLimit int

	// ImpactStrategy picks the transitive-impact algorithm.
	ImpactStrategy Strategy
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		BottleneckThreshold: DefaultBottleneckThreshold,
		QuickWinDepth:       DefaultQuickWinDepth,
		RecommendationLimit: DefaultRecommendationLimit,
		ImpactStrategy:      StrategyBFS,
	}
}

// ParseStrategy converts a user-supplied strategy name. It accepts exactly
// "bfs" and "sweep".
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyBFS, StrategySweep:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown impact strategy %q (valid: bfs, sweep)", s)
	}
}

// normalized fills unset fields with defaults so the pipeline never has to
// guard against zero values.
func (o Options) normalized() Options {
	if o.BottleneckThreshold <= 0 {
		o.BottleneckThreshold = DefaultBottleneckThreshold
	}
	if o.QuickWinDepth <= 0 {
		o.QuickWinDepth = DefaultQuickWinDepth
	}
	if o.RecommendationLimit <= 0 {
		o.RecommendationLimit = DefaultRecommendationLimit
	}
	if o.ImpactStrategy != StrategySweep {
		o.ImpactStrategy = StrategyBFS
	}
	return o
}
