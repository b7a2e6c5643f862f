package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Config records the model and script choices made at init time. It
// lives at .specify/config/models.json inside the workspace.
type Config struct {
	SelectedModel   string        `json:"selected_model"`
	LastUpdated     string        `json:"last_updated"`
	CatalogSource   string        `json:"catalog_source"`
	CatalogCachedAt string        `json:"catalog_cached_at,omitempty"`
	Scripts         ScriptsConfig `json:"scripts"`
}

// ScriptsConfig records the scaffolded script flavor.
type ScriptsConfig struct {
	Preferred   string `json:"preferred"`
	Folder      string `json:"folder"`
	Extension   string `json:"extension"`
	LastUpdated string `json:"last_updated"`
}

// NewConfig builds a config for the given choices, stamped with the
// current time in RFC 3339.
func NewConfig(model, catalogSource, catalogCachedAt string, script ScriptType) *Config {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Config{
		SelectedModel:   model,
		LastUpdated:     now,
		CatalogSource:   catalogSource,
		CatalogCachedAt: catalogCachedAt,
		Scripts: ScriptsConfig{
			Preferred:   script.String(),
			Folder:      script.Folder(),
			Extension:   script.Extension(),
			LastUpdated: now,
		},
	}
}

// LoadConfig reads the project models config. A missing file returns
// (nil, nil); a corrupt file returns an error so callers can surface a
// warning without failing the whole command.
func (p *Project) LoadConfig() (*Config, error) {
	data, err := os.ReadFile(p.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading project config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing project config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig writes the project models config atomically, creating the
// config directory when needed.
func (p *Project) SaveConfig(cfg *Config) error {
	path := p.ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding project config: %w", err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing project config: %w", err)
	}
	return os.Chmod(path, fileMode)
}
