// Package output handles formatting CLI output as table, JSON, or
// agent-oriented plain text.
package output

import (
	"os"

	"golang.org/x/term"
)

// Format represents an output format.
type Format int

const (
	// FormatTable outputs human-readable styled tables.
	FormatTable Format = iota
	// FormatJSON outputs JSON.
	FormatJSON
	// FormatAgent outputs stable KEY: value lines for coding agents.
	FormatAgent
)

// isTerminalFn checks whether stdout is a terminal. Replaceable in tests.
var isTerminalFn = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return isTerminalFn()
}

// Detect returns the appropriate format based on flags and environment.
// Flags win over SPECIFY_OUTPUT; the default is the table format.
func Detect(jsonFlag, agentFlag bool) Format {
	if jsonFlag {
		return FormatJSON
	}
	if agentFlag {
		return FormatAgent
	}

	switch os.Getenv("SPECIFY_OUTPUT") {
	case "json":
		return FormatJSON
	case "agent":
		return FormatAgent
	case "table":
		return FormatTable
	}

	return FormatTable
}
