package workflow

import "fmt"

// Summary partitions features by artifact presence.
type Summary struct {
	SpecsReady       int `json:"specs_ready"`
	PlansReady       int `json:"plans_ready"`
	TasksReady       int `json:"tasks_ready"`
	WaitingPlan      int `json:"waiting_plan"`
	WaitingTasks     int `json:"waiting_tasks"`
	MissingSpec      int `json:"missing_spec"`
	ReadyToImplement int `json:"ready_to_implement"`
}

// maxFollowups caps the suggestion list.
const maxFollowups = 3

// Summarize counts features per bucket. Feature order is preserved from
// the scan; the counts are order-independent.
func Summarize(features []FeatureState) Summary {
	var s Summary
	for _, f := range features {
		if f.Spec {
			s.SpecsReady++
		} else {
			s.MissingSpec++
		}
		if f.Plan {
			s.PlansReady++
		}
		if f.Tasks {
			s.TasksReady++
		}
		if f.Spec && !f.Plan {
			s.WaitingPlan++
		}
		if f.Plan && !f.Tasks {
			s.WaitingTasks++
		}
		if f.Next == CommandImplement {
			s.ReadyToImplement++
		}
	}
	return s
}

// Followups derives up to three human-readable next-step suggestions
// from a summary, highest priority first: missing constitution, missing
// spec, waiting on plan, waiting on tasks, ready to implement.
func Followups(s Summary, hasConstitution bool) []string {
	var followups []string
	add := func(msg string) {
		if len(followups) < maxFollowups {
			followups = append(followups, msg)
		}
	}

	if !hasConstitution {
		add("Run /constitution to establish project principles")
	}
	if s.MissingSpec > 0 {
		add(fmt.Sprintf("Run /specify to draft a spec for %d feature(s)", s.MissingSpec))
	}
	if s.WaitingPlan > 0 {
		add(fmt.Sprintf("Run /plan for %d feature(s) with a spec but no plan", s.WaitingPlan))
	}
	if s.WaitingTasks > 0 {
		add(fmt.Sprintf("Run /tasks for %d feature(s) with a plan but no task list", s.WaitingTasks))
	}
	if s.ReadyToImplement > 0 {
		add(fmt.Sprintf("Run /implement for %d feature(s) ready to build", s.ReadyToImplement))
	}
	return followups
}
