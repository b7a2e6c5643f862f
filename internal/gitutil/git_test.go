package gitutil_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/fractionestate/specify/internal/gitutil"
)

func requireGit(t *testing.T) {
	t.Helper()
	if !gitutil.Available() {
		t.Skip("git not on PATH")
	}
}

func TestIsRepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	ctx := context.Background()

	if gitutil.IsRepo(ctx, dir) {
		t.Error("IsRepo() = true for a plain directory")
	}

	if out, err := runGit(dir, "init"); err != nil {
		t.Fatalf("git init: %v: %s", err, out)
	}
	if !gitutil.IsRepo(ctx, dir) {
		t.Error("IsRepo() = false inside a repository")
	}
}

func TestInitCreatesCommit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Demo"), 0o600); err != nil {
		t.Fatal(err)
	}
	// Commits need an identity; keep it local to the test repo.
	t.Setenv("GIT_AUTHOR_NAME", "test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	if err := gitutil.Init(context.Background(), dir); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	out, err := runGit(dir, "log", "--oneline")
	if err != nil {
		t.Fatalf("git log: %v: %s", err, out)
	}
	if len(out) == 0 {
		t.Error("no commits after Init()")
	}
}

func runGit(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
