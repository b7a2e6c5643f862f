package e2e_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// binPath holds the path to the compiled specify binary.
var binPath string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "specify-e2e-*")
	if err != nil {
		panic("creating temp dir: " + err.Error())
	}

	binName := "specify"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath = filepath.Join(tmp, binName)

	// Build with -cover when GOCOVERDIR is requested. The coverage-instrumented
	// binary writes raw coverage data to the directory specified by GOCOVERDIR.
	buildArgs := []string{"build", "-o", binPath}
	coverDir := os.Getenv("GOCOVERDIR")
	if coverDir != "" {
		buildArgs = append(buildArgs, "-cover",
			"-coverpkg=github.com/fractionestate/specify/...")
	}
	buildArgs = append(buildArgs, "../cmd/specify")

	//nolint:gosec,noctx // building test binary in TestMain (no context available)
	build := exec.Command("go", buildArgs...)
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		panic("building binary: " + err.Error())
	}

	code := m.Run()
	_ = os.RemoveAll(tmp)
	os.Exit(code)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// result captures command execution output.
type result struct {
	stdout   string
	stderr   string
	exitCode int
}

// runSpecify executes the binary from workDir with SPECIFY_HOME pointed
// at home for isolation from the developer's real cache and settings.
func runSpecify(t *testing.T, workDir, home string, args ...string) result {
	t.Helper()

	cmd := exec.Command(binPath, args...) //nolint:gosec,noctx // e2e test binary
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), "SPECIFY_HOME="+home, "NO_COLOR=1")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	r := result{
		stdout: stdout.String(),
		stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("running specify: %v", err)
		}
	}

	return r
}

// runSpecifyJSON runs with --json and unmarshals stdout into dest.
func runSpecifyJSON(t *testing.T, workDir, home string, dest interface{}, args ...string) result {
	t.Helper()

	jsonArgs := append([]string{"--json"}, args...)
	r := runSpecify(t, workDir, home, jsonArgs...)

	if r.exitCode != 0 {
		return r
	}

	if err := json.Unmarshal([]byte(r.stdout), dest); err != nil {
		t.Fatalf("parsing JSON output: %v\nstdout: %s", err, r.stdout)
	}

	return r
}

// errorJSON captures the structured error JSON output.
type errorJSON struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// runSpecifyJSONError runs with --json and expects a non-zero exit code.
// It parses the structured error from stdout.
func runSpecifyJSONError(t *testing.T, workDir, home string, args ...string) errorJSON {
	t.Helper()

	jsonArgs := append([]string{"--json"}, args...)
	r := runSpecify(t, workDir, home, jsonArgs...)

	if r.exitCode == 0 {
		t.Fatalf("expected non-zero exit code, got 0\nstdout: %s", r.stdout)
	}

	var errResp errorJSON
	if err := json.Unmarshal([]byte(r.stdout), &errResp); err != nil {
		t.Fatalf("parsing error JSON: %v\nstdout: %s", err, r.stdout)
	}

	return errResp
}

// makeWorkspace creates a minimal Specify workspace and returns its root.
func makeWorkspace(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".specify"), 0o750); err != nil {
		t.Fatal(err)
	}
	return root
}

// addFeature creates a feature directory with the given artifact files.
func addFeature(t *testing.T, root, slug string, files map[string]string) {
	t.Helper()

	dir := filepath.Join(root, "specs", slug)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}
