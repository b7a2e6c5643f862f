package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// StepStatus is the lifecycle state of one tracked step.
type StepStatus int

// Step lifecycle states.
const (
	StepPending StepStatus = iota
	StepRunning
	StepDone
	StepError
	StepSkipped
)

// Step is one tracked unit of work.
type Step struct {
	Key    string
	Label  string
	Detail string
	Status StepStatus
}

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// StepTracker records progress of a multi-step operation and renders it
// as a tree. Steps keep their insertion order; unknown keys are added
// on first use so callers can report steps they did not pre-register.
type StepTracker struct {
	title string
	w     io.Writer
	steps []*Step
	index map[string]*Step
}

// NewStepTracker creates a tracker writing to w.
func NewStepTracker(w io.Writer, title string) *StepTracker {
	return &StepTracker{title: title, w: w, index: make(map[string]*Step)}
}

// Add registers a pending step.
func (t *StepTracker) Add(key, label string) {
	if _, ok := t.index[key]; ok {
		return
	}
	step := &Step{Key: key, Label: label, Status: StepPending}
	t.steps = append(t.steps, step)
	t.index[key] = step
}

// Start marks a step as running.
func (t *StepTracker) Start(key string) {
	t.set(key, StepRunning, "")
}

// Complete marks a step done with an optional detail.
func (t *StepTracker) Complete(key, detail string) {
	t.set(key, StepDone, detail)
}

// Error marks a step failed with an optional detail.
func (t *StepTracker) Error(key, detail string) {
	t.set(key, StepError, detail)
}

// Skip marks a step skipped with an optional detail.
func (t *StepTracker) Skip(key, detail string) {
	t.set(key, StepSkipped, detail)
}

// Failed reports whether any step errored.
func (t *StepTracker) Failed() bool {
	for _, s := range t.steps {
		if s.Status == StepError {
			return true
		}
	}
	return false
}

// Steps returns the tracked steps in insertion order.
func (t *StepTracker) Steps() []Step {
	out := make([]Step, len(t.steps))
	for i, s := range t.steps {
		out[i] = *s
	}
	return out
}

func (t *StepTracker) set(key string, status StepStatus, detail string) {
	step, ok := t.index[key]
	if !ok {
		t.Add(key, key)
		step = t.index[key]
	}
	step.Status = status
	if detail != "" {
		step.Detail = detail
	}
}

// Render writes the full step tree.
func (t *StepTracker) Render() {
	if t.title != "" {
		fmt.Fprintln(t.w, boldStyle.Render(t.title))
	}
	for i, s := range t.steps {
		branch := "├─"
		if i == len(t.steps)-1 {
			branch = "└─"
		}
		line := fmt.Sprintf("%s %s %s", branch, symbol(s.Status), s.Label)
		if s.Detail != "" {
			line += " " + dimStyle.Render("("+s.Detail+")")
		}
		fmt.Fprintln(t.w, line)
	}
}

func symbol(status StepStatus) string {
	switch status {
	case StepDone:
		return doneStyle.Render("●")
	case StepError:
		return errStyle.Render("●")
	case StepRunning:
		return runningStyle.Render("○")
	case StepSkipped:
		return skippedStyle.Render("○")
	default:
		return dimStyle.Render("○")
	}
}
