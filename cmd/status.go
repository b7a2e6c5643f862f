package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fractionestate/specify/internal/output"
	"github.com/fractionestate/specify/internal/project"
	"github.com/fractionestate/specify/internal/watcher"
	"github.com/fractionestate/specify/internal/workflow"
)

var flagStatusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the workflow state of the current project",
	Long: `Show per-feature progress through the specify → plan → tasks →
implement lifecycle, derived from the files under specs/. Nothing is
persisted; every run re-reads the workspace.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		proj, err := project.FindRoot(cwd)
		if err != nil {
			return err
		}

		if flagStatusWatch {
			return watchStatus(proj)
		}
		return renderStatus(proj)
	},
}

func renderStatus(proj *project.Project) error {
	report, err := workflow.BuildReport(proj)
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(report)
	case output.FormatAgent:
		output.StatusAgent(os.Stdout, report)
	default:
		output.StatusTable(report)
	}
	return nil
}

// watchStatus re-renders the report whenever the workspace changes,
// until interrupted. The watcher is rebuilt after every change so new
// feature directories get picked up.
func watchStatus(proj *project.Project) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		if err := renderStatus(proj); err != nil {
			return err
		}

		changed := make(chan struct{}, 1)
		w, err := watcher.New(watchPaths(proj), func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
		if err != nil {
			return err
		}

		go w.Run(ctx, func(err error) {
			fmt.Fprintf(os.Stderr, "Warning: watch error: %v\n", err)
		})

		select {
		case <-ctx.Done():
			w.Close()
			return nil
		case <-changed:
			w.Close()
			fmt.Fprintln(os.Stdout)
		}
	}
}

// watchPaths lists the directories worth watching: the project root,
// the specs root, and every current feature directory.
func watchPaths(proj *project.Project) []string {
	paths := []string{proj.Root}
	specsDir := proj.SpecsDir()
	entries, err := os.ReadDir(specsDir)
	if err != nil {
		return paths
	}
	paths = append(paths, specsDir)
	for _, entry := range entries {
		if entry.IsDir() {
			paths = append(paths, filepath.Join(specsDir, entry.Name()))
		}
	}
	return paths
}

func init() {
	statusCmd.Flags().BoolVar(&flagStatusWatch, "watch", false, "re-render when workspace files change")
	rootCmd.AddCommand(statusCmd)
}
