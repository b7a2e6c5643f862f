package clierr_test

import (
	"errors"
	"testing"

	"github.com/fractionestate/specify/internal/clierr"
)

func TestErrorImplementsError(t *testing.T) {
	var err error = clierr.New(clierr.ModelNotFound, "model not found: gpt-9")
	if err.Error() != "model not found: gpt-9" {
		t.Errorf("Error() = %q, want %q", err.Error(), "model not found: gpt-9")
	}
}

func TestErrorsAs(t *testing.T) {
	err := clierr.New(clierr.InvalidScript, "bad script type")
	var wrapped error = err

	var target *clierr.Error
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As failed to unwrap *clierr.Error")
	}
	if target.Code != clierr.InvalidScript {
		t.Errorf("Code = %q, want %q", target.Code, clierr.InvalidScript)
	}
}

func TestExitCode(t *testing.T) {
	tests := [2]struct {
		code string
		want int
	}{
		{clierr.ProjectNotFound, 1},
		{clierr.InternalError, 2},
	}
	for _, tt := range tests {
		err := clierr.New(tt.code, "msg")
		if got := err.ExitCode(); got != tt.want {
			t.Errorf("ExitCode(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestNewf(t *testing.T) {
	err := clierr.Newf(clierr.InvalidInput, "invalid project name %q", "..")
	if err.Message != `invalid project name ".."` {
		t.Errorf("Message = %q, want %q", err.Message, `invalid project name ".."`)
	}
}

func TestWithDetails(t *testing.T) {
	err := clierr.New(clierr.ModelNotFound, "not found").
		WithDetails(map[string]any{"model": "gpt4o"})
	if err.Details == nil {
		t.Fatal("Details is nil after WithDetails")
	}
	if err.Details["model"] != "gpt4o" {
		t.Errorf("Details[model] = %v, want gpt4o", err.Details["model"])
	}
}

func TestSilentError(t *testing.T) {
	err := &clierr.SilentError{Code: 1}
	if err.Error() != "exit 1" {
		t.Errorf("Error() = %q, want %q", err.Error(), "exit 1")
	}

	var target *clierr.SilentError
	if !errors.As(err, &target) {
		t.Fatal("errors.As failed to unwrap *SilentError")
	}
}
