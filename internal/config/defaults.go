package config

import "github.com/AbdelazizMoustafa10m/Rook/internal/analysis"

// NewDefaults returns a Config populated with all default values.
// The analysis defaults mirror the engine's own, so a project without a
// rook.toml behaves identically to one generated by `rook init --defaults`.
func NewDefaults() *Config {
	return &Config{
		Project: ProjectConfig{
			TasksDir: "docs/tasks",
		},
		Analysis: AnalysisConfig{
			BottleneckThreshold: analysis.DefaultBottleneckThreshold,
			QuickWinDepth:       analysis.DefaultQuickWinDepth,
			RecommendationLimit: analysis.DefaultRecommendationLimit,
			ImpactStrategy:      string(analysis.StrategyBFS),
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}
