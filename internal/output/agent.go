package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fractionestate/specify/internal/workflow"
)

// The agent format trades styling for stable, line-oriented text that
// coding agents can parse without a JSON decoder: "KEY: value" fields
// and "- " bullets.

// StatusAgent renders a workspace status report in agent format.
func StatusAgent(w io.Writer, r *workflow.Report) {
	fmt.Fprintln(w, "PROJECT: "+r.Root)
	if r.Model != "" {
		fmt.Fprintln(w, "MODEL: "+r.Model)
	}
	if r.Script != "" {
		fmt.Fprintln(w, "SCRIPTS: "+r.Script)
	}
	fmt.Fprintln(w, "CONSTITUTION: "+yesNo(r.Constitution))
	if len(r.Prompts) > 0 {
		fmt.Fprintln(w, "PROMPTS: "+strings.Join(r.Prompts, ", "))
	}

	fmt.Fprintln(w, "FEATURES: "+strconv.Itoa(len(r.Features)))
	for _, f := range r.Features {
		line := "- " + f.Slug + " [spec:" + yesNo(f.Spec) +
			" plan:" + yesNo(f.Plan) + " tasks:" + yesNo(f.Tasks) + "] next:/" + string(f.Next)
		fmt.Fprintln(w, line)
	}

	s := r.Summary
	fmt.Fprintf(w, "SUMMARY: specs=%d plans=%d tasks=%d ready=%d\n",
		s.SpecsReady, s.PlansReady, s.TasksReady, s.ReadyToImplement)

	if len(r.Followups) > 0 {
		fmt.Fprintln(w, "NEXT:")
		for _, f := range r.Followups {
			fmt.Fprintln(w, "- "+f)
		}
	}
}

// ModelsAgent renders the model catalog in agent format, sorted by id.
func ModelsAgent(w io.Writer, models map[string]string, source string, cached bool) {
	fmt.Fprintln(w, "SOURCE: "+source)
	fmt.Fprintln(w, "CACHED: "+yesNo(cached))
	fmt.Fprintln(w, "MODELS: "+strconv.Itoa(len(models)))
	for _, id := range sortedIDs(models) {
		fmt.Fprintln(w, "- "+id+": "+models[id])
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
