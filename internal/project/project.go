// Package project locates and describes a Specify workspace: the
// .specify marker directory, the persisted model/script configuration,
// feature specs, and prompt inventory.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fractionestate/specify/internal/clierr"
)

// Well-known paths inside a Specify workspace.
const (
	SpecifyDirName  = ".specify"
	SpecsDirName    = "specs"
	configRelPath   = "config/models.json"
	constitutionRel = "memory/constitution.md"
	scriptsRel      = "scripts"
	promptsRelPath  = ".github/prompts"
)

// Project is a located Specify workspace.
type Project struct {
	// Root is the absolute path of the workspace root (the directory
	// containing .specify).
	Root string
}

// FindRoot walks upward from startDir looking for a directory containing
// .specify. Returns a PROJECT_NOT_FOUND error when none is found.
func FindRoot(startDir string) (*Project, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		marker := filepath.Join(dir, SpecifyDirName)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return &Project{Root: dir}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, clierr.New(clierr.ProjectNotFound,
				"not a Specify project (run 'specify init .' to initialize this directory)")
		}
		dir = parent
	}
}

// SpecifyDir returns the absolute path of the .specify directory.
func (p *Project) SpecifyDir() string {
	return filepath.Join(p.Root, SpecifyDirName)
}

// SpecsDir returns the absolute path of the feature specs directory.
func (p *Project) SpecsDir() string {
	return filepath.Join(p.Root, SpecsDirName)
}

// ScriptsDir returns the absolute path of the scaffolded scripts tree.
func (p *Project) ScriptsDir() string {
	return filepath.Join(p.SpecifyDir(), scriptsRel)
}

// ConfigPath returns the absolute path of the project models config.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.SpecifyDir(), filepath.FromSlash(configRelPath))
}

// HasConstitution reports whether the workspace constitution exists.
func (p *Project) HasConstitution() bool {
	info, err := os.Stat(filepath.Join(p.SpecifyDir(), filepath.FromSlash(constitutionRel)))
	return err == nil && !info.IsDir()
}

// Prompts returns the sorted command names of configured prompt files
// (*.md under .github/prompts). A missing prompts directory yields an
// empty list.
func (p *Project) Prompts() []string {
	entries, err := os.ReadDir(filepath.Join(p.Root, filepath.FromSlash(promptsRelPath)))
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}
