package output

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fractionestate/specify/internal/workflow"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
)

// DisableColor strips all styling from table and step output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	boldStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	errStyle = lipgloss.NewStyle()
	runningStyle = lipgloss.NewStyle()
	skippedStyle = lipgloss.NewStyle()
}

// StatusTable renders a workspace status report as a formatted dashboard.
func StatusTable(r *workflow.Report) {
	fmt.Fprintln(os.Stdout, boldStyle.Render(r.Root))
	if r.Model != "" {
		fmt.Fprintf(os.Stdout, "Model: %s", r.Model)
		if r.Script != "" {
			fmt.Fprintf(os.Stdout, "  Scripts: %s", r.Script)
		}
		fmt.Fprintln(os.Stdout)
	}
	if r.ConfigWarning != "" {
		fmt.Fprintln(os.Stderr, "Warning: "+r.ConfigWarning)
	}
	fmt.Fprintln(os.Stdout)

	if len(r.Features) == 0 {
		fmt.Fprintln(os.Stdout, dimStyle.Render("No features yet. Run /specify to start one."))
	} else {
		featureTable(r.Features)
	}

	fmt.Fprintln(os.Stdout)
	summaryLine(r.Summary)

	if len(r.Followups) > 0 {
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, headerStyle.Render("NEXT STEPS"))
		for _, f := range r.Followups {
			fmt.Fprintln(os.Stdout, "  - "+f)
		}
	}
}

func featureTable(features []workflow.FeatureState) {
	const pad = 2
	slugW := 7
	for _, f := range features {
		slugW = max(slugW, len(f.Slug)+pad)
	}

	header := fmt.Sprintf("%-*s %-6s %-6s %-6s %s",
		slugW, "FEATURE", "SPEC", "PLAN", "TASKS", "NEXT")
	fmt.Fprintln(os.Stdout, headerStyle.Render(header))

	for _, f := range features {
		next := string(f.Next)
		if f.NeedsClarification {
			next += " (clarifications pending)"
		}
		fmt.Fprintf(os.Stdout, "%-*s %-6s %-6s %-6s /%s\n",
			slugW, f.Slug, mark(f.Spec), mark(f.Plan), mark(f.Tasks), next)
	}
}

func summaryLine(s workflow.Summary) {
	parts := []string{
		"specs " + strconv.Itoa(s.SpecsReady),
		"plans " + strconv.Itoa(s.PlansReady),
		"tasks " + strconv.Itoa(s.TasksReady),
	}
	if s.ReadyToImplement > 0 {
		parts = append(parts, "ready "+strconv.Itoa(s.ReadyToImplement))
	}
	fmt.Fprintln(os.Stdout, "Summary: "+strings.Join(parts, " | "))
}

func mark(present bool) string {
	if present {
		return "yes"
	}
	return dimStyle.Render("--")
}

// ModelsTable renders the model catalog sorted by id.
func ModelsTable(models map[string]string, source string, cached bool) {
	ids := sortedIDs(models)

	const pad = 2
	idW := 4
	for _, id := range ids {
		idW = max(idW, len(id)+pad)
	}

	header := fmt.Sprintf("%-*s %s", idW, "ID", "NAME")
	fmt.Fprintln(os.Stdout, headerStyle.Render(header))
	for _, id := range ids {
		fmt.Fprintf(os.Stdout, "%-*s %s\n", idW, id, models[id])
	}

	origin := "source: " + source
	if cached {
		origin += " (cached)"
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, dimStyle.Render(fmt.Sprintf("%d models, %s", len(ids), origin)))
}

// Messagef prints a simple formatted message line.
func Messagef(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}

func sortedIDs(models map[string]string) []string {
	ids := make([]string, 0, len(models))
	for id := range models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
