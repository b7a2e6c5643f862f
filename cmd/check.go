package cmd

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/fractionestate/specify/internal/output"
)

// checkedTools are probed on PATH, in display order.
var checkedTools = []struct {
	name  string
	label string
}{
	{"git", "git version control"},
	{"code", "Visual Studio Code"},
	{"code-insiders", "Visual Studio Code Insiders"},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that required tools are installed",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		found := make(map[string]bool, len(checkedTools))
		for _, tool := range checkedTools {
			_, err := exec.LookPath(tool.name)
			found[tool.name] = err == nil
		}

		switch outputFormat() {
		case output.FormatJSON:
			return output.JSON(map[string]any{"tools": found})
		case output.FormatAgent:
			for _, tool := range checkedTools {
				status := "missing"
				if found[tool.name] {
					status = "ok"
				}
				output.Messagef("%s: %s", tool.name, status)
			}
		default:
			tracker := output.NewStepTracker(os.Stdout, "Check installed tools")
			for _, tool := range checkedTools {
				tracker.Add(tool.name, tool.label)
				if found[tool.name] {
					tracker.Complete(tool.name, "available")
				} else {
					tracker.Skip(tool.name, "not found")
				}
			}
			tracker.Render()
			output.Messagef("\nSpecify CLI is ready to use!")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
