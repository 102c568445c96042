package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ValidationSeverity indicates whether a validation issue is an error or warning.
type ValidationSeverity string

const (
	// SeverityError indicates a fatal validation issue; the configuration is unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning indicates an informational validation issue; the configuration works
	// but may have problems.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted path, e.g., "analysis.impact_strategy"
	Message  string
}

// ValidationResult holds all validation findings.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors returns true if any issue has error severity.
func (vr *ValidationResult) HasErrors() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any issue has warning severity.
func (vr *ValidationResult) HasWarnings() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Errors returns only error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	var errs []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Warnings returns only warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	var warns []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			warns = append(warns, issue)
		}
	}
	return warns
}

// validImpactStrategies is the set of valid values for analysis.impact_strategy.
var validImpactStrategies = map[string]bool{
	"":      true,
	"bfs":   true,
	"sweep": true,
}

// validOutputFormats is the set of valid values for output.format.
var validOutputFormats = map[string]bool{
	"":     true,
	"text": true,
	"json": true,
}

// Validate checks the configuration for correctness and completeness.
// It performs semantic validation of each section and unknown key detection.
//
// Parameters:
//   - cfg: the configuration to validate (normally the resolved config)
//   - meta: TOML metadata from BurntSushi/toml (may be nil if no file was loaded)
//
// Returns validation results. Check HasErrors() to determine if the config is usable.
func Validate(cfg *Config, meta *toml.MetaData) *ValidationResult {
	vr := &ValidationResult{}

	if cfg == nil {
		addError(vr, "", "configuration is nil")
		return vr
	}

	validateProject(vr, &cfg.Project)
	validateAnalysis(vr, &cfg.Analysis)
	validateOutput(vr, &cfg.Output)
	validateUnknownKeys(vr, meta)

	return vr
}

// validateProject checks the [project] section.
func validateProject(vr *ValidationResult, p *ProjectConfig) {
	// Warning: project.name is optional but reports read better with one.
	if p.Name == "" {
		addWarning(vr, "project.name", "not set; reports will not carry a project name")
	}

	// Warning: tasks_dir does not exist.
	if p.TasksDir != "" {
		if _, err := os.Stat(p.TasksDir); err != nil {
			addWarning(vr, "project.tasks_dir",
				fmt.Sprintf("directory %q does not exist", p.TasksDir))
		}
	}
}

// validateAnalysis checks the [analysis] section.
func validateAnalysis(vr *ValidationResult, a *AnalysisConfig) {
	// Error: bottleneck_threshold must be at least 1.
	if a.BottleneckThreshold < 1 {
		addError(vr, "analysis.bottleneck_threshold",
			fmt.Sprintf("must be at least 1, got %d", a.BottleneckThreshold))
	}

	// Error: quick_win_depth must be at least 1.
	if a.QuickWinDepth < 1 {
		addError(vr, "analysis.quick_win_depth",
			fmt.Sprintf("must be at least 1, got %d", a.QuickWinDepth))
	}

	// Error: recommendation_limit must be at least 1.
	if a.RecommendationLimit < 1 {
		addError(vr, "analysis.recommendation_limit",
			fmt.Sprintf("must be at least 1, got %d", a.RecommendationLimit))
	}

	// Error: impact_strategy must be recognized.
	if !validImpactStrategies[a.ImpactStrategy] {
		addError(vr, "analysis.impact_strategy",
			fmt.Sprintf("unrecognized strategy %q; must be one of: bfs, sweep, or empty", a.ImpactStrategy))
	}
}

// validateOutput checks the [output] section.
func validateOutput(vr *ValidationResult, o *OutputConfig) {
	// Error: format must be recognized.
	if !validOutputFormats[o.Format] {
		addError(vr, "output.format",
			fmt.Sprintf("unrecognized format %q; must be one of: text, json, or empty", o.Format))
	}
}

// validateUnknownKeys checks for TOML keys that did not map to any config struct field.
func validateUnknownKeys(vr *ValidationResult, meta *toml.MetaData) {
	if meta == nil {
		return
	}

	for _, key := range meta.Undecoded() {
		path := strings.Join(key, ".")
		addWarning(vr, path, "unknown configuration key")
	}
}

// addError appends an error-severity issue to the validation result.
func addError(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityError,
		Field:    field,
		Message:  message,
	})
}

// addWarning appends a warning-severity issue to the validation result.
func addWarning(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityWarning,
		Field:    field,
		Message:  message,
	})
}
