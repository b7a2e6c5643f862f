package catalog

import (
	"context"

	"github.com/fractionestate/specify/internal/cache"
)

// Options controls a catalog lookup.
type Options struct {
	// ForceRefresh bypasses the TTL check and refetches.
	ForceRefresh bool

	// AllowNetwork permits the remote fetch. When false the lookup goes
	// straight to the fallback catalog.
	AllowNetwork bool
}

// Result is the outcome of a catalog lookup. A lookup always yields a
// usable catalog; Err only records why the network path degraded.
type Result struct {
	Models map[string]string
	Source string
	Cached bool

	// Err is the fetch failure that caused a fallback, informational
	// only. Callers print it as a notice, never treat it as fatal.
	Err error
}

// Service combines the remote client with the on-disk cache.
type Service struct {
	Client *Client
	Store  *cache.Store
}

// Get implements the catalog lookup with TTL caching and fallback
// degradation. Cache writes are best-effort and never fail the lookup.
func (s *Service) Get(ctx context.Context, opts Options) Result {
	if !opts.ForceRefresh {
		if entry, ok := s.Store.Load(); ok && entry.Fresh(cache.TTL) {
			return Result{Models: entry.Models, Source: entry.Source, Cached: true}
		}
	}

	if !opts.AllowNetwork {
		// Explicit offline mode: fallback without touching the cache.
		return Result{Models: Fallback(), Source: cache.SourceFallback}
	}

	models, err := s.Client.Fetch(ctx)
	if err != nil {
		// Persist the fallback so subsequent calls stay off the network
		// until the TTL lapses or a refresh is forced.
		fb := Fallback()
		_ = s.Store.Save(fb, cache.SourceFallback)
		return Result{Models: fb, Source: cache.SourceFallback, Err: err}
	}

	_ = s.Store.Save(models, cache.SourceAPI)
	return Result{Models: models, Source: cache.SourceAPI}
}
