// Package cache persists the last fetched model catalog with an age
// marker so repeat invocations skip the network inside the TTL window.
// Caching is a pure optimization: every failure mode degrades to a cache
// miss, never to an error.
package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"

	"github.com/fractionestate/specify/internal/filelock"
)

const (
	// FileName is the cache file name inside the Specify home directory.
	FileName = "models_cache.json"

	// TTL is how long a cached catalog is considered fresh.
	TTL = time.Hour

	dirMode = 0o750
)

// Catalog source markers persisted in the cache file.
const (
	SourceAPI      = "api"
	SourceFallback = "fallback"
)

// Entry is the on-disk cache record.
type Entry struct {
	Models    map[string]string `json:"models"`
	Timestamp float64           `json:"timestamp"`
	Source    string            `json:"source"`
}

// Age returns how long ago the entry was written.
func (e *Entry) Age() time.Duration {
	written := time.Unix(0, int64(e.Timestamp*float64(time.Second)))
	return time.Since(written)
}

// Fresh reports whether the entry is younger than ttl.
func (e *Entry) Fresh(ttl time.Duration) bool {
	return e.Age() < ttl
}

// Store reads and writes the catalog cache under a Specify home directory.
type Store struct {
	// Dir is the Specify home directory (e.g. ~/.specify).
	Dir string

	// now is replaceable in tests.
	now func() time.Time
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir, now: time.Now}
}

// DefaultDir returns the per-user Specify home directory. SPECIFY_HOME
// overrides the default ~/.specify.
func DefaultDir() (string, error) {
	if dir := os.Getenv("SPECIFY_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".specify"), nil
}

// Path returns the absolute path of the cache file.
func (s *Store) Path() string {
	return filepath.Join(s.Dir, FileName)
}

// Load reads the cache entry. A missing, unreadable, or corrupt file is
// a cache miss (nil, false), never an error.
func (s *Store) Load() (*Entry, bool) {
	data, err := os.ReadFile(s.Path()) //nolint:gosec // cache path under the user's own home
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if len(entry.Models) == 0 {
		return nil, false
	}
	return &entry, true
}

// Save writes the catalog to the cache file, creating parent directories
// as needed. The write is serialized by an advisory lock sentinel and
// replaced atomically. Callers treat failures as best-effort.
func (s *Store) Save(models map[string]string, source string) error {
	if err := os.MkdirAll(s.Dir, dirMode); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	unlock, err := filelock.Lock(s.Path() + ".lock")
	if err == nil {
		defer func() { _ = unlock() }()
	}
	// Lock failure is not fatal: the lock is advisory only.

	entry := Entry{
		Models:    models,
		Timestamp: float64(s.now().UnixNano()) / float64(time.Second),
		Source:    source,
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}

	if err := atomic.WriteFile(s.Path(), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Clear removes the cache file. Removing an absent file is a no-op.
func (s *Store) Clear() error {
	err := os.Remove(s.Path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing cache: %w", err)
	}
	return nil
}
