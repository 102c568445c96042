package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/Rook/internal/analysis"
	"github.com/AbdelazizMoustafa10m/Rook/internal/task"
)

// inspectFlags holds the flag values for the inspect command.
type inspectFlags struct {
	JSON        bool // --json for structured output
	Concurrency int  // --concurrency parallel file loads
}

// inspectRef is one neighbor of the inspected task in the JSON output.
type inspectRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// inspectOutput is the JSON output type for the inspect command.
type inspectOutput struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Status         string       `json:"status"`
	StatusClass    string       `json:"statusClass"`
	ChainDepth     int          `json:"chainDepth"`
	DirectImpact   int          `json:"directImpact"`
	ImpactCount    int          `json:"impactCount"`
	Dependencies   []inspectRef `json:"dependencies"`
	Dependents     []inspectRef `json:"dependents"`
	OnCriticalPath bool         `json:"onCriticalPath"`
	Bottleneck     bool         `json:"bottleneck"`
	Independent    bool         `json:"independent"`
	Warnings       []string     `json:"warnings"`
}

// newInspectCmd creates the "rook inspect" command.
func newInspectCmd() *cobra.Command {
	var flags inspectFlags

	cmd := &cobra.Command{
		Use:   "inspect <task-id> [path|glob ...]",
		Short: "Show one task's position in the dependency graph",
		Long: `Display a single task's analysis detail: status, chain depth, direct
and transitive impact, prerequisites, dependents, and whether it sits on
the critical path. Inputs are resolved the same way as for analyze.`,
		Example: `  # Inspect a task from the configured tasks directory
  rook inspect T004

  # Inspect a task from an explicit input
  rook inspect T004 tasks.json

  # Structured JSON output
  rook inspect T004 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Output structured JSON to stdout")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", 3, "Number of task files loaded in parallel")

	return cmd
}

func init() {
	rootCmd.AddCommand(newInspectCmd())
}

// runInspect is the inspect command's RunE function.
func runInspect(cmd *cobra.Command, args []string, flags inspectFlags) error {
	if flags.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", flags.Concurrency)
	}

	id := args[0]

	resolved, _, err := loadAndResolveConfig(nil)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	tasks, err := loadTaskInputs(cmd, args[1:], resolved, flags.Concurrency)
	if err != nil {
		return err
	}

	res := analysis.Analyze(tasks, resolved.AnalysisOptions())

	if _, ok := res.Tasks[id]; !ok {
		return fmt.Errorf("task %q not found among %d loaded tasks", id, len(res.Tasks))
	}

	out := buildInspectOutput(res, id)

	if flags.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	renderInspect(cmd.ErrOrStderr(), res, out)
	return nil
}

// buildInspectOutput assembles the inspect view for one task. Neighbor lists
// follow the graph's kept-edge rules: duplicate references collapse and
// references to unknown ids are dropped.
func buildInspectOutput(res *analysis.Result, id string) inspectOutput {
	t := res.Task(id)
	imp := res.Impacts[id]

	out := inspectOutput{
		ID:             id,
		Title:          t.Title,
		Status:         string(t.Status),
		StatusClass:    classLabel(t.Status),
		ChainDepth:     res.Depths[id],
		DirectImpact:   imp.Direct,
		ImpactCount:    imp.Transitive,
		Dependencies:   neighborRefs(res, keptDeps(res, id)),
		Dependents:     neighborRefs(res, keptDependents(res, id)),
		OnCriticalPath: slices.Contains(res.CriticalPath, id),
		Independent:    slices.Contains(res.Independent, id),
		Warnings:       []string{},
	}

	for _, b := range res.Bottlenecks {
		if b.ID == id {
			out.Bottleneck = true
			break
		}
	}
	for _, w := range res.Warnings {
		if w.TaskID == id {
			out.Warnings = append(out.Warnings, w.String())
		}
	}

	return out
}

// keptDeps returns the task's prerequisite ids after edge filtering, sorted.
func keptDeps(res *analysis.Result, id string) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, dep := range res.Task(id).Dependencies {
		if seen[dep] {
			continue
		}
		seen[dep] = true
		if _, known := res.Tasks[dep]; known {
			deps = append(deps, dep)
		}
	}
	sort.Strings(deps)
	return deps
}

// keptDependents returns the ids of tasks whose kept edges point at id,
// sorted.
func keptDependents(res *analysis.Result, id string) []string {
	var dependents []string
	for otherID, other := range res.Tasks {
		if slices.Contains(other.Dependencies, id) {
			dependents = append(dependents, otherID)
		}
	}
	sort.Strings(dependents)
	return dependents
}

// neighborRefs resolves ids to reference entries, never nil.
func neighborRefs(res *analysis.Result, ids []string) []inspectRef {
	refs := make([]inspectRef, 0, len(ids))
	for _, id := range ids {
		t := res.Task(id)
		refs = append(refs, inspectRef{ID: id, Title: t.Title, Status: string(t.Status)})
	}
	return refs
}

// classLabel names a status's contribution class for display.
func classLabel(s task.TaskStatus) string {
	if task.Classify(s) == task.ClassCompleted {
		return "completed"
	}
	return "pending"
}

// renderInspect writes the human-readable task detail to w.
//
//	T004: Build REST API
//	====================
//	Status:        active (pending work)
//	Chain depth:   2
//	Impact:        1 transitive, 1 direct
func renderInspect(w io.Writer, res *analysis.Result, out inspectOutput) {
	headerStyle := lipgloss.NewStyle().Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow

	title := fmt.Sprintf("%s: %s", out.ID, out.Title)
	fmt.Fprintln(w, headerStyle.Render(title))
	fmt.Fprintln(w, strings.Repeat("=", len(title)))

	classNote := "pending work"
	if out.StatusClass == "completed" {
		classNote = "completed"
	}
	fmt.Fprintf(w, "Status:        %s (%s)\n", statusLabel(task.TaskStatus(out.Status)), classNote)

	if res.Cyclic() {
		fmt.Fprintf(w, "Chain depth:   %s\n", noteStyle.Render("unavailable (dependency cycles present)"))
	} else {
		fmt.Fprintf(w, "Chain depth:   %d\n", out.ChainDepth)
	}
	fmt.Fprintf(w, "Impact:        %d transitive, %d direct\n", out.ImpactCount, out.DirectImpact)

	var marks []string
	if out.OnCriticalPath {
		marks = append(marks, "on the critical path")
	}
	if out.Bottleneck {
		marks = append(marks, "bottleneck")
	}
	if out.Independent {
		marks = append(marks, "independent")
	}
	if len(marks) > 0 {
		fmt.Fprintf(w, "Marks:         %s\n", strings.Join(marks, ", "))
	}

	fmt.Fprintln(w)
	renderNeighbors(w, "Depends on", out.Dependencies)
	renderNeighbors(w, "Blocks", out.Dependents)

	if len(out.Warnings) > 0 {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("Warnings (%d):", len(out.Warnings))))
		for _, msg := range out.Warnings {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}
}

// renderNeighbors writes one neighbor section with per-task status labels.
func renderNeighbors(w io.Writer, label string, refs []inspectRef) {
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray

	if len(refs) == 0 {
		fmt.Fprintln(w, noteStyle.Render(fmt.Sprintf("%s: none", label)))
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "%s (%d):\n", label, len(refs))
	for _, ref := range refs {
		title := ref.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "  %s  %-50s  %s\n", ref.ID, title, statusLabel(task.TaskStatus(ref.Status)))
	}
	fmt.Fprintln(w)
}

// statusLabel renders a status word in its class color: green for
// completed-class, red for blocked, yellow for other pending-class values.
func statusLabel(s task.TaskStatus) string {
	completedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))   // yellow
	blockedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))    // red

	switch {
	case task.Classify(s) == task.ClassCompleted:
		return completedStyle.Render(string(s))
	case s == task.StatusBlocked:
		return blockedStyle.Render(string(s))
	default:
		return pendingStyle.Render(string(s))
	}
}
