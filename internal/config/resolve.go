package config

import "github.com/AbdelazizMoustafa10m/Rook/internal/analysis"

// ConfigSource identifies where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value came from built-in defaults.
	SourceDefault ConfigSource = "default"
	// SourceFile indicates the value came from the rook.toml config file.
	SourceFile ConfigSource = "file"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceCLI indicates the value came from a CLI flag.
	SourceCLI ConfigSource = "cli"
)

// ResolvedConfig holds the fully-resolved configuration with source tracking.
// The Config field contains the merged values; Sources tracks where each came from.
type ResolvedConfig struct {
	Config  *Config
	Sources map[string]ConfigSource // key is dotted path, e.g., "analysis.bottleneck_threshold"
	Path    string                  // path to the config file used (empty if none)
}

// CLIOverrides captures flag values that can override configuration.
// Nil values mean "not set" (do not override). A *string that is nil
// means "not overridden"; a *string pointing to "" means "override to empty string."
type CLIOverrides struct {
	ProjectName         *string
	TasksDir            *string
	BottleneckThreshold *int
	QuickWinDepth       *int
	RecommendationLimit *int
	ImpactStrategy      *string
	OutputFormat        *string
}

// EnvFunc is a function that looks up environment variables.
// Default implementation is os.LookupEnv. Injected for testability.
type EnvFunc func(key string) (string, bool)

// Resolve merges configuration from all sources in priority order:
// CLI flags > environment variables > config file > defaults.
//
// Parameters:
//   - defaults: built-in default config (from NewDefaults())
//   - fileConfig: parsed config from rook.toml (nil if no file found)
//   - envFn: function to look up environment variables
//   - overrides: CLI flag values (nil fields mean "not set")
//
// Returns the fully-resolved config with source annotations.
func Resolve(defaults *Config, fileConfig *Config, envFn EnvFunc, overrides *CLIOverrides) *ResolvedConfig {
	rc := &ResolvedConfig{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}

	// Ensure we have a valid defaults to start from.
	if defaults == nil {
		defaults = &Config{}
	}

	// Ensure we have a valid envFn.
	if envFn == nil {
		envFn = func(string) (string, bool) { return "", false }
	}

	// Ensure we have a valid overrides.
	if overrides == nil {
		overrides = &CLIOverrides{}
	}

	// Layer 1: Start with defaults as the base.
	resolveProjectFromDefaults(rc, defaults)
	resolveAnalysisFromDefaults(rc, defaults)
	resolveOutputFromDefaults(rc, defaults)

	// Layer 2: Merge file config on top (non-zero values override).
	if fileConfig != nil {
		resolveProjectFromFile(rc, fileConfig)
		resolveAnalysisFromFile(rc, fileConfig)
		resolveOutputFromFile(rc, fileConfig)
	}

	// Layer 3: Merge environment variables on top.
	resolveFromEnv(rc, envFn)

	// Layer 4: Merge CLI overrides on top.
	resolveFromCLI(rc, overrides)

	return rc
}

// AnalysisOptions converts the resolved [analysis] section into engine options.
// Values the resolver left at zero fall back to the engine defaults.
func (rc *ResolvedConfig) AnalysisOptions() analysis.Options {
	a := rc.Config.Analysis
	return analysis.Options{
		BottleneckThreshold: a.BottleneckThreshold,
		QuickWinDepth:       a.QuickWinDepth,
		RecommendationLimit: a.RecommendationLimit,
		ImpactStrategy:      analysis.Strategy(a.ImpactStrategy),
	}
}

// --- Layer 1: Defaults ---

func resolveProjectFromDefaults(rc *ResolvedConfig, defaults *Config) {
	p := &rc.Config.Project
	d := &defaults.Project

	setString(&p.Name, d.Name, "project.name", SourceDefault, rc.Sources)
	setString(&p.TasksDir, d.TasksDir, "project.tasks_dir", SourceDefault, rc.Sources)
}

func resolveAnalysisFromDefaults(rc *ResolvedConfig, defaults *Config) {
	a := &rc.Config.Analysis
	d := &defaults.Analysis

	setInt(&a.BottleneckThreshold, d.BottleneckThreshold, "analysis.bottleneck_threshold", SourceDefault, rc.Sources)
	setInt(&a.QuickWinDepth, d.QuickWinDepth, "analysis.quick_win_depth", SourceDefault, rc.Sources)
	setInt(&a.RecommendationLimit, d.RecommendationLimit, "analysis.recommendation_limit", SourceDefault, rc.Sources)
	setString(&a.ImpactStrategy, d.ImpactStrategy, "analysis.impact_strategy", SourceDefault, rc.Sources)
}

func resolveOutputFromDefaults(rc *ResolvedConfig, defaults *Config) {
	setString(&rc.Config.Output.Format, defaults.Output.Format, "output.format", SourceDefault, rc.Sources)
}

// --- Layer 2: File ---

func resolveProjectFromFile(rc *ResolvedConfig, file *Config) {
	p := &rc.Config.Project
	f := &file.Project

	mergeString(&p.Name, f.Name, "project.name", SourceFile, rc.Sources)
	mergeString(&p.TasksDir, f.TasksDir, "project.tasks_dir", SourceFile, rc.Sources)
}

func resolveAnalysisFromFile(rc *ResolvedConfig, file *Config) {
	a := &rc.Config.Analysis
	f := &file.Analysis

	mergeInt(&a.BottleneckThreshold, f.BottleneckThreshold, "analysis.bottleneck_threshold", SourceFile, rc.Sources)
	mergeInt(&a.QuickWinDepth, f.QuickWinDepth, "analysis.quick_win_depth", SourceFile, rc.Sources)
	mergeInt(&a.RecommendationLimit, f.RecommendationLimit, "analysis.recommendation_limit", SourceFile, rc.Sources)
	mergeString(&a.ImpactStrategy, f.ImpactStrategy, "analysis.impact_strategy", SourceFile, rc.Sources)
}

func resolveOutputFromFile(rc *ResolvedConfig, file *Config) {
	mergeString(&rc.Config.Output.Format, file.Output.Format, "output.format", SourceFile, rc.Sources)
}

// --- Layer 3: Environment ---

// Environment variable mapping:
//
//	ROOK_PROJECT_NAME     -> project.name
//	ROOK_TASKS_DIR        -> project.tasks_dir
//	ROOK_IMPACT_STRATEGY  -> analysis.impact_strategy
//	ROOK_OUTPUT_FORMAT    -> output.format
func resolveFromEnv(rc *ResolvedConfig, envFn EnvFunc) {
	if val, ok := envFn("ROOK_PROJECT_NAME"); ok {
		rc.Config.Project.Name = val
		rc.Sources["project.name"] = SourceEnv
	}
	if val, ok := envFn("ROOK_TASKS_DIR"); ok {
		rc.Config.Project.TasksDir = val
		rc.Sources["project.tasks_dir"] = SourceEnv
	}
	if val, ok := envFn("ROOK_IMPACT_STRATEGY"); ok {
		rc.Config.Analysis.ImpactStrategy = val
		rc.Sources["analysis.impact_strategy"] = SourceEnv
	}
	if val, ok := envFn("ROOK_OUTPUT_FORMAT"); ok {
		rc.Config.Output.Format = val
		rc.Sources["output.format"] = SourceEnv
	}
}

// --- Layer 4: CLI overrides ---

func resolveFromCLI(rc *ResolvedConfig, overrides *CLIOverrides) {
	if overrides.ProjectName != nil {
		rc.Config.Project.Name = *overrides.ProjectName
		rc.Sources["project.name"] = SourceCLI
	}
	if overrides.TasksDir != nil {
		rc.Config.Project.TasksDir = *overrides.TasksDir
		rc.Sources["project.tasks_dir"] = SourceCLI
	}
	if overrides.BottleneckThreshold != nil {
		rc.Config.Analysis.BottleneckThreshold = *overrides.BottleneckThreshold
		rc.Sources["analysis.bottleneck_threshold"] = SourceCLI
	}
	if overrides.QuickWinDepth != nil {
		rc.Config.Analysis.QuickWinDepth = *overrides.QuickWinDepth
		rc.Sources["analysis.quick_win_depth"] = SourceCLI
	}
	if overrides.RecommendationLimit != nil {
		rc.Config.Analysis.RecommendationLimit = *overrides.RecommendationLimit
		rc.Sources["analysis.recommendation_limit"] = SourceCLI
	}
	if overrides.ImpactStrategy != nil {
		rc.Config.Analysis.ImpactStrategy = *overrides.ImpactStrategy
		rc.Sources["analysis.impact_strategy"] = SourceCLI
	}
	if overrides.OutputFormat != nil {
		rc.Config.Output.Format = *overrides.OutputFormat
		rc.Sources["output.format"] = SourceCLI
	}
}

// --- Helpers ---

// setString unconditionally sets the target to the given value and records the source.
func setString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = value
	sources[path] = source
}

// mergeString overwrites the target only if value is non-empty (non-zero string).
// For file-layer merging, an empty string in the file means "not set in file",
// so it does not override the default.
func mergeString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != "" {
		*target = value
		sources[path] = source
	}
}

// setInt unconditionally sets the target to the given value and records the source.
func setInt(target *int, value int, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = value
	sources[path] = source
}

// mergeInt overwrites the target only if value is non-zero. All integer
// settings have minimum 1, so zero reliably means "not set in file".
func mergeInt(target *int, value int, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != 0 {
		*target = value
		sources[path] = source
	}
}
