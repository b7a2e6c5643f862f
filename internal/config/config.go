// Package config loads and saves the per-user Specify settings file
// (config.yml inside the Specify home directory).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/fractionestate/specify/internal/cache"
)

const fileMode = 0o600

const dirMode = 0o750

// ErrInvalid marks a settings file that fails validation.
var ErrInvalid = errors.New("invalid settings")

// Settings represents the per-user configuration.
type Settings struct {
	Version     int            `yaml:"version"`
	Defaults    DefaultsConfig `yaml:"defaults"`
	GithubToken string         `yaml:"github_token,omitempty"`

	// LegacyModel carries the v1 top-level default_model key through a
	// migration; v2 files never persist it.
	LegacyModel string `yaml:"default_model,omitempty"`

	// dir is the absolute path to the Specify home (not serialized).
	dir string `yaml:"-"`
}

// DefaultsConfig holds default choices applied when init flags are omitted.
type DefaultsConfig struct {
	Model  string `yaml:"model,omitempty"`
	Script string `yaml:"script,omitempty"`
}

// NewDefault creates Settings with default values rooted at dir.
func NewDefault(dir string) *Settings {
	return &Settings{
		Version: CurrentVersion,
		dir:     dir,
	}
}

// Path returns the absolute path to the settings file.
func (s *Settings) Path() string {
	return filepath.Join(s.dir, ConfigFileName)
}

// SetDir sets the Specify home directory path on the settings.
func (s *Settings) SetDir(dir string) {
	s.dir = dir
}

// Validate checks the settings for errors.
func (s *Settings) Validate() error {
	if s.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, s.Version, CurrentVersion)
	}
	if s.Defaults.Script != "" && s.Defaults.Script != "sh" && s.Defaults.Script != "ps" {
		return fmt.Errorf("%w: defaults.script %q must be sh or ps", ErrInvalid, s.Defaults.Script)
	}
	return nil
}

// Save writes the settings to the settings file, creating the Specify
// home directory when needed.
func (s *Settings) Save() error {
	if err := os.MkdirAll(s.dir, dirMode); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	return os.WriteFile(s.Path(), data, fileMode)
}

// Load reads and validates settings from the given Specify home
// directory. A missing file yields defaults rather than an error.
func Load(dir string) (*Settings, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // settings path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefault(absDir), nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}

	s.dir = absDir

	// Migrate old settings versions forward before validating.
	if err := migrate(&s); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// LoadDefault loads settings from the default Specify home directory.
func LoadDefault() (*Settings, error) {
	dir, err := cache.DefaultDir()
	if err != nil {
		return nil, err
	}
	return Load(dir)
}
