// Package gitutil shells out to git for the small set of operations
// init needs: detecting an existing repository and creating a fresh one.
package gitutil

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// InitialCommitMessage is used for the first commit of a scaffolded
// project.
const InitialCommitMessage = "Initial commit from Specify template"

// Available reports whether git is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo reports whether dir is inside a git work tree.
func IsRepo(ctx context.Context, dir string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir
	out, err := cmd.Output()
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// Init creates a repository in dir, stages everything, and commits.
func Init(ctx context.Context, dir string) error {
	steps := [][]string{
		{"init"},
		{"add", "."},
		{"commit", "-m", InitialCommitMessage},
	}
	for _, args := range steps {
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
		}
	}
	return nil
}
