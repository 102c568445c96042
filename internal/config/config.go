// Package config loads, layers, and validates rook.toml configuration.
// Settings resolve in order: built-in defaults, the config file, ROOK_*
// environment variables, then CLI flags, with per-field source tracking.
package config

// Config is the top-level configuration structure mapping to rook.toml.
type Config struct {
	Project  ProjectConfig  `toml:"project"`
	Analysis AnalysisConfig `toml:"analysis"`
	Output   OutputConfig   `toml:"output"`
}

// ProjectConfig maps to the [project] section in rook.toml.
type ProjectConfig struct {
	Name     string `toml:"name"`
	TasksDir string `toml:"tasks_dir"`
}

// AnalysisConfig maps to the [analysis] section in rook.toml.
type AnalysisConfig struct {
	BottleneckThreshold int    `toml:"bottleneck_threshold"`
	QuickWinDepth       int    `toml:"quick_win_depth"`
	RecommendationLimit int    `toml:"recommendation_limit"`
	ImpactStrategy      string `toml:"impact_strategy"`
}

// OutputConfig maps to the [output] section in rook.toml.
type OutputConfig struct {
	Format string `toml:"format"`
}
