package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AbdelazizMoustafa10m/Rook/internal/analysis"
	"github.com/AbdelazizMoustafa10m/Rook/internal/config"
	"github.com/AbdelazizMoustafa10m/Rook/internal/logging"
	"github.com/AbdelazizMoustafa10m/Rook/internal/report"
	"github.com/AbdelazizMoustafa10m/Rook/internal/task"
)

// analyzeFlags holds the flag values for the analyze command.
type analyzeFlags struct {
	JSON          bool   // --json for structured output
	Strict        bool   // --strict exits 2 on cycles or warnings
	Threshold     int    // --threshold bottleneck impact minimum
	QuickWinDepth int    // --quick-win-depth maximum quick-win chain depth
	Limit         int    // --limit recommendation list cap
	Strategy      string // --strategy impact algorithm (bfs|sweep)
	Concurrency   int    // --concurrency parallel file loads
}

// newAnalyzeCmd creates the "rook analyze" command.
func newAnalyzeCmd() *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze [path|glob ...]",
		Short: "Analyze task dependencies and report the critical path",
		Long: `Run the full dependency analysis over one or more task inputs: chain
depths, the critical path through pending work, cycle detection, per-task
impact, bottlenecks, and focus recommendations.

Inputs may be JSON task files, markdown task specs, directories, or glob
patterns. With no arguments the configured tasks directory is scanned.
Integrity problems in the input (unknown statuses, dangling references,
duplicate ids) never abort the analysis; they are reported as warnings.`,
		Example: `  # Analyze the configured tasks directory
  rook analyze

  # Analyze explicit inputs
  rook analyze tasks.json
  rook analyze 'docs/tasks/**/T*.md'

  # Structured JSON output for scripting
  rook analyze --json

  # Fail (exit 2) when cycles or warnings are present
  rook analyze --strict`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Output structured JSON to stdout")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "Exit with code 2 when cycles or warnings are present")
	cmd.Flags().IntVar(&flags.Threshold, "threshold", 0, "Minimum transitive impact for a bottleneck (default from config)")
	cmd.Flags().IntVar(&flags.QuickWinDepth, "quick-win-depth", 0, "Maximum chain depth for a quick win (default from config)")
	cmd.Flags().IntVar(&flags.Limit, "limit", 0, "Maximum entries per recommendation list (default from config)")
	cmd.Flags().StringVar(&flags.Strategy, "strategy", "", "Impact algorithm: bfs or sweep (default from config)")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", 3, "Number of task files loaded in parallel")

	return cmd
}

func init() {
	rootCmd.AddCommand(newAnalyzeCmd())
}

// runAnalyze is the analyze command's RunE function. Loads config, loads
// task inputs, runs the analysis, and renders the report.
func runAnalyze(cmd *cobra.Command, args []string, flags analyzeFlags) error {
	logger := logging.New("analyze")

	if flags.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", flags.Concurrency)
	}

	resolved, meta, err := loadAndResolveConfig(analyzeOverrides(cmd, flags))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if vr := config.Validate(resolved.Config, meta); vr.HasErrors() {
		for _, issue := range vr.Errors() {
			logger.Error("invalid configuration", "field", issue.Field, "message", issue.Message)
		}
		return fmt.Errorf("configuration has %d error(s); run `rook config validate` for details", len(vr.Errors()))
	}

	tasks, err := loadTaskInputs(cmd, args, resolved, flags.Concurrency)
	if err != nil {
		return err
	}
	logger.Debug("loaded tasks", "count", len(tasks), "inputs", len(args))

	res := analysis.Analyze(tasks, resolved.AnalysisOptions())

	for _, w := range res.Warnings {
		logger.Warn(w.String(), "kind", string(w.Kind))
	}

	if flags.JSON {
		if err := report.WriteJSON(cmd.OutOrStdout(), res); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	} else {
		report.Render(cmd.ErrOrStderr(), res, resolved.Config.Project.Name)
	}

	if flags.Strict && (res.Cyclic() || len(res.Warnings) > 0) {
		return fmt.Errorf("%w: %d cycle(s), %d warning(s)",
			errStrictViolation, len(res.Cycles), len(res.Warnings))
	}

	return nil
}

// analyzeOverrides maps explicitly-set analyze flags onto config overrides.
// Unset flags stay nil so lower layers keep their values.
func analyzeOverrides(cmd *cobra.Command, flags analyzeFlags) *config.CLIOverrides {
	ov := &config.CLIOverrides{}
	if cmd.Flags().Changed("threshold") {
		ov.BottleneckThreshold = &flags.Threshold
	}
	if cmd.Flags().Changed("quick-win-depth") {
		ov.QuickWinDepth = &flags.QuickWinDepth
	}
	if cmd.Flags().Changed("limit") {
		ov.RecommendationLimit = &flags.Limit
	}
	if cmd.Flags().Changed("strategy") {
		ov.ImpactStrategy = &flags.Strategy
	}
	return ov
}

// loadTaskInputs loads tasks from the argument paths, or from the configured
// tasks directory when no arguments are given. Multiple files load in
// parallel; the merged list preserves sorted path order so duplicate-id
// resolution stays deterministic regardless of load completion order.
func loadTaskInputs(cmd *cobra.Command, patterns []string, rc *config.ResolvedConfig, concurrency int) ([]task.Task, error) {
	if len(patterns) == 0 {
		dir := rc.Config.Project.TasksDir
		tasks, err := task.DiscoverSpecs(dir)
		if err != nil {
			return nil, fmt.Errorf("discovering tasks in %s: %w", dir, err)
		}
		return tasks, nil
	}

	paths, err := task.ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}

	results := make([][]task.Task, len(paths))

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)

	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tasks, err := task.LoadPath(p)
			if err != nil {
				return err
			}
			results[i] = tasks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []task.Task
	for _, tasks := range results {
		merged = append(merged, tasks...)
	}
	return merged, nil
}
