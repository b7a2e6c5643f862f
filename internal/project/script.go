package project

import (
	"runtime"

	"github.com/fractionestate/specify/internal/clierr"
)

// ScriptType selects the scaffolded automation script flavor.
type ScriptType string

// Supported script flavors.
const (
	ScriptSh ScriptType = "sh"
	ScriptPs ScriptType = "ps"
)

// ParseScriptType validates a user-supplied script flavor.
func ParseScriptType(s string) (ScriptType, error) {
	switch ScriptType(s) {
	case ScriptSh, ScriptPs:
		return ScriptType(s), nil
	default:
		return "", clierr.Newf(clierr.InvalidScript, "invalid script type %q (expected sh or ps)", s)
	}
}

// DefaultScriptType picks the flavor matching the host platform.
func DefaultScriptType() ScriptType {
	if runtime.GOOS == "windows" {
		return ScriptPs
	}
	return ScriptSh
}

// Folder is the directory name the template ships this flavor under.
func (t ScriptType) Folder() string {
	if t == ScriptPs {
		return "powershell"
	}
	return "bash"
}

// Extension is the script file extension including the dot.
func (t ScriptType) Extension() string {
	if t == ScriptPs {
		return ".ps1"
	}
	return ".sh"
}

// DisplayName is the human-readable flavor label.
func (t ScriptType) DisplayName() string {
	if t == ScriptPs {
		return "PowerShell"
	}
	return "POSIX Shell (bash/zsh)"
}

func (t ScriptType) String() string { return string(t) }
