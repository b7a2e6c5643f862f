// Package workflow inspects a workspace's feature directories and
// derives, per feature, which lifecycle stage comes next. State is never
// persisted; every call recomputes from the filesystem.
package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Command is the next workflow step for a feature.
type Command string

// Workflow commands in lifecycle order.
const (
	CommandSpecify   Command = "specify"
	CommandClarify   Command = "clarify"
	CommandPlan      Command = "plan"
	CommandTasks     Command = "tasks"
	CommandImplement Command = "implement"
)

// Artifact file names checked inside each feature directory.
const (
	SpecFile  = "spec.md"
	PlanFile  = "plan.md"
	TasksFile = "tasks.md"
)

// ClarificationMarker flags an unresolved question inside a spec.
const ClarificationMarker = "[NEEDS CLARIFICATION"

// FeatureState is the derived workflow state of one feature directory.
type FeatureState struct {
	Slug               string  `json:"slug"`
	Spec               bool    `json:"spec"`
	Plan               bool    `json:"plan"`
	Tasks              bool    `json:"tasks"`
	NeedsClarification bool    `json:"needs_clarification,omitempty"`
	Next               Command `json:"next_command"`
}

// ScanFeatures lists the immediate subdirectories of specsRoot and
// derives each feature's state. A missing root yields an empty list.
// Features are returned sorted by slug for deterministic output.
func ScanFeatures(specsRoot string) ([]FeatureState, error) {
	entries, err := os.ReadDir(specsRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return []FeatureState{}, nil
		}
		return nil, fmt.Errorf("reading specs directory: %w", err)
	}

	features := make([]FeatureState, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(specsRoot, entry.Name())
		state := FeatureState{
			Slug:  entry.Name(),
			Spec:  fileExists(filepath.Join(dir, SpecFile)),
			Plan:  fileExists(filepath.Join(dir, PlanFile)),
			Tasks: fileExists(filepath.Join(dir, TasksFile)),
		}
		if state.Spec {
			state.NeedsClarification = hasClarificationMarker(filepath.Join(dir, SpecFile))
		}
		state.Next = nextCommand(state)
		features = append(features, state)
	}

	sort.Slice(features, func(i, j int) bool {
		return features[i].Slug < features[j].Slug
	})
	return features, nil
}

// nextCommand applies the lifecycle rule table top to bottom, first
// match wins.
func nextCommand(s FeatureState) Command {
	switch {
	case !s.Spec:
		return CommandSpecify
	case s.NeedsClarification:
		return CommandClarify
	case !s.Plan:
		return CommandPlan
	case !s.Tasks:
		return CommandTasks
	default:
		return CommandImplement
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// hasClarificationMarker reports whether a spec file still contains
// unresolved clarification markers. Unreadable files count as unmarked.
func hasClarificationMarker(path string) bool {
	data, err := os.ReadFile(path) //nolint:gosec // feature path enumerated from the workspace
	if err != nil {
		return false
	}
	return strings.Contains(string(data), ClarificationMarker)
}
