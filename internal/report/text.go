package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/Rook/internal/analysis"
	"github.com/AbdelazizMoustafa10m/Rook/internal/task"
)

const progressBarWidth = 40

// Render writes the human-readable report for res to w. Section order is
// fixed: header, completion bar, cycles, critical path, bottlenecks,
// recommendations, independent tasks. Sections without content are dropped.
// Warnings are not rendered here; the caller logs them.
func Render(w io.Writer, res *analysis.Result, projectName string) {
	if projectName == "" {
		projectName = "rook"
	}

	fmt.Fprintln(w, renderHeader(res, projectName))

	if len(res.Tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	fmt.Fprintln(w, renderCompletion(res))

	if res.Cyclic() {
		fmt.Fprintln(w, renderCycles(res))
		// Depths and recommendations are unavailable on a cyclic graph, so
		// only the impact-based sections remain.
		if len(res.Bottlenecks) > 0 {
			fmt.Fprintln(w, renderBottlenecks(res))
		}
		if len(res.Independent) > 0 {
			fmt.Fprintln(w, renderIndependent(res))
		}
		return
	}

	if res.AllCompleted {
		fmt.Fprintln(w, renderAllCompleted(res))
	} else {
		fmt.Fprintln(w, renderCriticalPath(res))
	}

	if len(res.Bottlenecks) > 0 {
		fmt.Fprintln(w, renderBottlenecks(res))
	}

	if rec := res.Recommendations; len(rec.HighImpact) > 0 || len(rec.QuickWins) > 0 {
		fmt.Fprintln(w, renderRecommendations(res))
	}

	if len(res.Independent) > 0 {
		fmt.Fprintln(w, renderIndependent(res))
	}
}

// renderHeader returns the report title block.
//
//	Rook Analysis - my-project
//	==========================
//	Fingerprint: a1b2c3d4e5f67890
//	Tasks: 12 total, 7 pending, 3 blocked
func renderHeader(res *analysis.Result, projectName string) string {
	headerStyle := lipgloss.NewStyle().Bold(true)

	title := fmt.Sprintf("Rook Analysis - %s", projectName)
	sep := strings.Repeat("=", len(title))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(sep)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Fingerprint: %s", res.Fingerprint))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Tasks: %d total, %d pending, %d blocked",
		len(res.Tasks), res.TotalPending, res.BlockedCount))
	sb.WriteString("\n")

	return sb.String()
}

// renderCompletion returns the overall completion bar with a counts line.
//
//	████████████░░░░░░░░ 42% (5/12)
//	  5 completed, 7 pending, 3 blocked
func renderCompletion(res *analysis.Result) string {
	completedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))   // yellow
	blockedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))    // red

	total := len(res.Tasks)
	completed := total - res.TotalPending

	pct := 0.0
	if total > 0 {
		pct = float64(completed) / float64(total)
	}

	// Static progress bar via bubbles/progress ViewAs. WithoutPercentage so
	// the bar does not duplicate the percentage rendered next to it.
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(progressBarWidth),
		progress.WithoutPercentage(),
	)

	var sb strings.Builder
	sb.WriteString(bar.ViewAs(pct))
	sb.WriteString(" ")
	sb.WriteString(fmt.Sprintf("%.0f%%", pct*100))
	sb.WriteString(" (")
	sb.WriteString(fmt.Sprintf("%d/%d", completed, total))
	sb.WriteString(")")
	sb.WriteString("\n")

	var countParts []string
	if completed > 0 {
		countParts = append(countParts, completedStyle.Render(fmt.Sprintf("%d completed", completed)))
	}
	if res.TotalPending > 0 {
		countParts = append(countParts, pendingStyle.Render(fmt.Sprintf("%d pending", res.TotalPending)))
	}
	if res.BlockedCount > 0 {
		countParts = append(countParts, blockedStyle.Render(fmt.Sprintf("%d blocked", res.BlockedCount)))
	}

	if len(countParts) > 0 {
		sb.WriteString("  ")
		sb.WriteString(strings.Join(countParts, ", "))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderCycles returns the cycle section. Every cycle prints as a closed
// walk, first member repeated at the end.
//
//	Dependency cycles detected (1)
//	  T001 -> T003 -> T002 -> T001
func renderCycles(res *analysis.Result) string {
	cycleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")) // red
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))             // gray

	var sb strings.Builder
	sb.WriteString(cycleStyle.Render(fmt.Sprintf("Dependency cycles detected (%d)", len(res.Cycles))))
	sb.WriteString("\n")
	for _, cycle := range res.Cycles {
		sb.WriteString("  ")
		sb.WriteString(strings.Join(cycle, " -> "))
		sb.WriteString("\n")
	}
	sb.WriteString(noteStyle.Render("Chain depths and the critical path are unavailable until the cycles are resolved."))
	sb.WriteString("\n")

	return sb.String()
}

// renderCriticalPath returns the critical path chain diagram, or a note when
// no pending chain exists.
//
//	Critical Path (3 tasks)
//	     T001  Set up database schema      [depth 1, unblocks 5]
//	  └─ T003  Implement user model        [depth 2, unblocks 4]
//	  └─ T007  Build authentication API    [depth 4, unblocks 1]
func renderCriticalPath(res *analysis.Result) string {
	headerStyle := lipgloss.NewStyle().Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray

	// On an acyclic graph with pending work, a missing path means the tasks
	// carry no dependency edges at all.
	if res.CriticalPath == nil {
		return noteStyle.Render("No critical path: the tasks have no dependency edges.") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("Critical Path (%d tasks)", res.PathLength)))
	sb.WriteString("\n")
	sb.WriteString(renderChain(res, chainNodes(res, res.CriticalPath)))

	return sb.String()
}

// renderAllCompleted returns the all-done section with the historical chain
// when the graph has dependency edges.
func renderAllCompleted(res *analysis.Result) string {
	doneStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")) // green
	headerStyle := lipgloss.NewStyle().Bold(true)

	var sb strings.Builder
	sb.WriteString(doneStyle.Render("All tasks completed."))
	sb.WriteString("\n")

	if res.HistoricalPath != nil {
		sb.WriteString(headerStyle.Render(fmt.Sprintf("Historical critical path (%d tasks)", len(res.HistoricalPath))))
		sb.WriteString("\n")
		sb.WriteString(renderChain(res, blindChainNodes(res, res.HistoricalPath)))
	}

	return sb.String()
}

// renderChain formats path nodes as a connector-prefixed chain. The first
// node is padded so ids line up under the connectors.
func renderChain(res *analysis.Result, nodes []PathNode) string {
	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))  // yellow
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray

	var sb strings.Builder
	for i, n := range nodes {
		connector := "  "
		if i > 0 {
			connector = "└─"
		}

		style := idStyle
		if task.Classify(res.Task(n.ID).Status) == task.ClassCompleted {
			style = doneStyle
		}

		note := noteStyle.Render(fmt.Sprintf("[depth %d, unblocks %d]", n.ChainDepth, n.ImpactCount))
		sb.WriteString(fmt.Sprintf("  %s %s  %-50s %s", connector, style.Render(n.ID), truncateTitle(n.Title), note))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderBottlenecks returns the ranked bottleneck list.
//
//	Bottlenecks (2)
//	  T001  Set up database schema     [impact 5, blocks: T002, T003]
func renderBottlenecks(res *analysis.Result) string {
	headerStyle := lipgloss.NewStyle().Bold(true)
	pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")) // red
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))    // gray
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))    // gray

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("Bottlenecks (%d)", len(res.Bottlenecks))))
	sb.WriteString("\n")

	for _, b := range res.Bottlenecks {
		style := pendingStyle
		if task.Classify(res.Task(b.ID).Status) == task.ClassCompleted {
			style = doneStyle
		}

		note := noteStyle.Render(fmt.Sprintf("[impact %d, blocks: %s]", b.ImpactCount, strings.Join(b.BlockedTasks, ", ")))
		sb.WriteString(fmt.Sprintf("  %s  %-50s %s", style.Render(b.ID), truncateTitle(res.Task(b.ID).Title), note))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderRecommendations returns the high-impact and quick-win lists.
//
//	Recommended Focus
//	  High impact:
//	    1. T001  Set up database schema    [unblocks 5]
//	  Quick wins:
//	    1. T004  Add request logging       [depth 1, unblocks 2]
func renderRecommendations(res *analysis.Result) string {
	headerStyle := lipgloss.NewStyle().Bold(true)
	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Recommended Focus"))
	sb.WriteString("\n")

	if picks := res.Recommendations.HighImpact; len(picks) > 0 {
		sb.WriteString("  High impact:\n")
		for i, p := range picks {
			note := noteStyle.Render(fmt.Sprintf("[unblocks %d]", p.Impact))
			sb.WriteString(fmt.Sprintf("    %d. %s  %-50s %s", i+1, idStyle.Render(p.ID), truncateTitle(res.Task(p.ID).Title), note))
			sb.WriteString("\n")
		}
	}

	if picks := res.Recommendations.QuickWins; len(picks) > 0 {
		sb.WriteString("  Quick wins:\n")
		for i, p := range picks {
			note := noteStyle.Render(fmt.Sprintf("[depth %d, unblocks %d]", p.Depth, p.Impact))
			sb.WriteString(fmt.Sprintf("    %d. %s  %-50s %s", i+1, idStyle.Render(p.ID), truncateTitle(res.Task(p.ID).Title), note))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// renderIndependent returns the list of tasks with no edges either way.
func renderIndependent(res *analysis.Result) string {
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray

	line := fmt.Sprintf("Independent tasks (%d): %s", len(res.Independent), strings.Join(res.Independent, ", "))
	return noteStyle.Render(line) + "\n"
}

// truncateTitle keeps titles inside the fixed-width column.
func truncateTitle(title string) string {
	if len(title) > 50 {
		return title[:47] + "..."
	}
	return title
}
