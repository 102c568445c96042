package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/Rook/internal/analysis"
	"github.com/AbdelazizMoustafa10m/Rook/internal/config"
	"github.com/AbdelazizMoustafa10m/Rook/internal/logging"
)

// initFlagName, initFlagForce, and initFlagDefaults are the flag values for
// the init subcommand.
var (
	initFlagName     string
	initFlagForce    bool
	initFlagDefaults bool
)

// ErrWizardCancelled is returned when the user cancels the interactive setup
// wizard (either by pressing Ctrl+C or declining the confirmation).
var ErrWizardCancelled = errors.New("wizard cancelled by user")

// wizardWidth is the fixed form width used by the wizard. 80 columns covers
// the minimum terminal width rook supports.
const wizardWidth = 80

// initCmd implements "rook init".
// It writes a fresh rook.toml without requiring an existing one -- making it
// safe to run in a fresh directory.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a rook.toml for the current directory",
	Long: `Create a rook.toml in the current directory. By default an interactive
wizard asks for the project name, tasks directory, impact strategy, and
output format. Use --defaults to skip the wizard and write the built-in
defaults directly.

Examples:
  rook init                      # interactive setup wizard
  rook init --defaults           # write defaults without prompting
  rook init --defaults --name x  # defaults with an explicit project name
  rook init --force              # overwrite an existing rook.toml`,
	Args: cobra.NoArgs,

	// Override PersistentPreRunE so the init command never attempts to load a
	// rook.toml.  We still replicate the env-var checks, logging setup, color
	// disable, and --dir handling from the root PersistentPreRunE.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check env vars for flags not explicitly set on the command line.
		if !cmd.Root().PersistentFlags().Changed("verbose") && os.Getenv("ROOK_VERBOSE") != "" {
			flagVerbose = true
		}
		if !cmd.Root().PersistentFlags().Changed("quiet") && os.Getenv("ROOK_QUIET") != "" {
			flagQuiet = true
		}
		if !cmd.Root().PersistentFlags().Changed("no-color") &&
			(os.Getenv("NO_COLOR") != "" || os.Getenv("ROOK_NO_COLOR") != "") {
			flagNoColor = true
		}

		// Initialize logging.
		jsonFormat := os.Getenv("ROOK_LOG_FORMAT") == "json"
		logging.Setup(flagVerbose, flagQuiet, jsonFormat)

		// Handle --no-color: disable coloured output.
		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		// Handle --dir (change working directory).
		if flagDir != "" {
			if err := os.Chdir(flagDir); err != nil {
				return fmt.Errorf("changing directory to %s: %w", flagDir, err)
			}
		}

		return nil
	},

	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initFlagName, "name", "n", "", "Project name (defaults to current directory name)")
	initCmd.Flags().BoolVar(&initFlagForce, "force", false, "Overwrite an existing rook.toml")
	initCmd.Flags().BoolVar(&initFlagDefaults, "defaults", false, "Skip the wizard and write built-in defaults")
	rootCmd.AddCommand(initCmd)
}

// runInit is the RunE handler for the init command.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve the destination directory (current working directory after any
	// --dir change applied in PersistentPreRunE).
	destDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	// Guard against overwriting an existing rook.toml unless --force is set.
	cfgPath := filepath.Join(destDir, config.ConfigFileName)
	if _, statErr := os.Stat(cfgPath); statErr == nil && !initFlagForce {
		return fmt.Errorf("%s already exists in %s; use --force to overwrite", config.ConfigFileName, destDir)
	}

	cfg := config.NewDefaults()

	// Resolve the project name.
	projectName := initFlagName
	if projectName == "" {
		projectName = filepath.Base(destDir)
	}
	if err := validateProjectName(projectName); err != nil {
		return fmt.Errorf("invalid project name %q: %w", projectName, err)
	}
	cfg.Project.Name = projectName

	if !initFlagDefaults {
		if err := runInitWizard(cfg); err != nil {
			if errors.Is(err, ErrWizardCancelled) {
				fmt.Fprintln(os.Stderr, "Init cancelled.")
				return nil
			}
			return err
		}
	}

	if err := config.WriteFile(cfgPath, cfg, initFlagForce); err != nil {
		return fmt.Errorf("writing %s: %w", cfgPath, err)
	}

	// --- Success output (all to stderr) ---
	stderr := os.Stderr

	fmt.Fprintf(stderr, "Initialized project %q\n\n", cfg.Project.Name)
	fmt.Fprintf(stderr, "Created %s\n\n", cfgPath)
	fmt.Fprintln(stderr, "Next steps:")
	fmt.Fprintf(stderr, "  1. Add task specs to %s/ (or point tasks_dir somewhere else)\n", cfg.Project.TasksDir)
	fmt.Fprintln(stderr, "  2. Run: rook analyze")

	return nil
}

// runInitWizard collects the settings interactively and writes them into cfg.
// It returns ErrWizardCancelled when the user aborts or declines the final
// confirmation.
func runInitWizard(cfg *config.Config) error {
	strategy := cfg.Analysis.ImpactStrategy
	format := cfg.Output.Format

	if err := runInitSettingsPage(&cfg.Project.Name, &cfg.Project.TasksDir, &strategy, &format); err != nil {
		return mapWizardErr(err)
	}

	cfg.Analysis.ImpactStrategy = strategy
	cfg.Output.Format = format

	confirmed := false
	if err := runInitConfirmPage(buildInitSummary(cfg), &confirmed); err != nil {
		return mapWizardErr(err)
	}
	if !confirmed {
		return ErrWizardCancelled
	}

	return nil
}

// runInitSettingsPage runs the single settings page of the init wizard.
func runInitSettingsPage(name, tasksDir, strategy, format *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name:").
				Description("Shown in report headers.").
				Value(name).
				Validate(validateProjectName),
			huh.NewInput().
				Title("Tasks directory:").
				Description("Directory scanned for task spec files when analyze runs without inputs.").
				Value(tasksDir).
				Validate(validateTasksDir),
			huh.NewSelect[string]().
				Title("Impact strategy:").
				Description("Algorithm used to count transitive dependents.").
				Options(
					huh.NewOption("bfs (per-task reverse search)", string(analysis.StrategyBFS)),
					huh.NewOption("sweep (single reverse-topological sweep)", string(analysis.StrategySweep)),
				).
				Value(strategy),
			huh.NewSelect[string]().
				Title("Default output format:").
				Options(
					huh.NewOption("text (styled terminal report)", "text"),
					huh.NewOption("json (machine-readable)", "json"),
				).
				Value(format),
		),
	).
		WithTheme(huh.ThemeCharm()).
		WithWidth(wizardWidth).
		Run()
}

// runInitConfirmPage shows a final summary and asks for confirmation before
// writing the file.
func runInitConfirmPage(summary string, confirmed *bool) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Write rook.toml?").
				Description(summary).
				Affirmative("Write File").
				Negative("Cancel").
				Value(confirmed),
		),
	).
		WithTheme(huh.ThemeCharm()).
		WithWidth(wizardWidth).
		Run()
}

// buildInitSummary returns a human-readable summary of the wizard selections
// suitable for display on the confirmation page.
func buildInitSummary(cfg *config.Config) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Project name:   %s\n", cfg.Project.Name))
	sb.WriteString(fmt.Sprintf("Tasks dir:      %s\n", cfg.Project.TasksDir))
	sb.WriteString(fmt.Sprintf("Strategy:       %s\n", cfg.Analysis.ImpactStrategy))
	sb.WriteString(fmt.Sprintf("Output format:  %s\n", cfg.Output.Format))

	return sb.String()
}

// mapWizardErr converts huh-specific errors into ErrWizardCancelled so callers
// do not need to import the huh package.
func mapWizardErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrWizardCancelled
	}
	return fmt.Errorf("wizard: %w", err)
}

// validateProjectName rejects empty names and path traversal sequences.
func validateProjectName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be empty")
	}
	if strings.Contains(s, "../") || strings.Contains(s, "..\\") {
		return errors.New("must not contain path traversal sequences")
	}
	return nil
}

// validateTasksDir rejects empty and absolute paths.
func validateTasksDir(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be empty")
	}
	if filepath.IsAbs(s) {
		return errors.New("must be relative to the project root")
	}
	return nil
}
