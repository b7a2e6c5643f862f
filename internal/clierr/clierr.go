// Package clierr defines typed CLI errors with stable machine-readable
// codes and exit-code mapping.
package clierr

import "fmt"

// Error codes surfaced in JSON output and used for exit-code mapping.
const (
	ProjectNotFound = "PROJECT_NOT_FOUND"
	ModelNotFound   = "MODEL_NOT_FOUND"
	InvalidScript   = "INVALID_SCRIPT"
	InvalidInput    = "INVALID_INPUT"
	DownloadFailed  = "DOWNLOAD_FAILED"
	ExtractFailed   = "EXTRACT_FAILED"
	ConfigInvalid   = "CONFIG_INVALID"
	InternalError   = "INTERNAL_ERROR"
)

// Error is a CLI error with a stable code and optional structured details.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches structured details and returns the error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

func (e *Error) Error() string {
	return e.Message
}

// ExitCode returns the process exit code for this error: 2 for internal
// errors, 1 for everything else.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2
	}
	return 1
}

// SilentError signals an exit code without any output. Used when results
// have already been printed and only the exit status remains.
type SilentError struct {
	Code int
}

func (e *SilentError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}
