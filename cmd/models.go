package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fractionestate/specify/internal/cache"
	"github.com/fractionestate/specify/internal/catalog"
	"github.com/fractionestate/specify/internal/config"
	"github.com/fractionestate/specify/internal/output"
)

var (
	flagModelsRefresh bool
	flagModelsNoCache bool
	flagModelsClear   bool
	flagModelsToken   string
	flagModelsVerbose bool
)

var listModelsCmd = &cobra.Command{
	Use:   "list-models",
	Short: "List models available for new projects",
	Long: `List the model catalog used by 'specify init'. The catalog is fetched
from the models API and cached locally for an hour; a bundled fallback
keeps the command working offline.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := newCacheStore()
		if err != nil {
			return err
		}

		if flagModelsClear {
			if err := store.Clear(); err != nil {
				return fmt.Errorf("clearing model cache: %w", err)
			}
			if outputFormat() == output.FormatTable {
				output.Messagef("Model cache cleared.")
			}
		}

		svc := &catalog.Service{
			Client: catalog.NewClient(nil, "", resolveGithubToken(flagModelsToken)),
			Store:  store,
		}
		res := svc.Get(cmd.Context(), catalog.Options{
			ForceRefresh: flagModelsRefresh || flagModelsNoCache,
			AllowNetwork: !flagModelsNoCache,
		})
		warnCatalogDegraded(os.Stderr, res.Err)

		switch outputFormat() {
		case output.FormatJSON:
			return output.JSON(modelsResponse{
				Models: res.Models,
				Count:  len(res.Models),
				Source: res.Source,
				Cached: res.Cached,
			})
		case output.FormatAgent:
			output.ModelsAgent(os.Stdout, res.Models, res.Source, res.Cached)
		default:
			output.ModelsTable(res.Models, res.Source, res.Cached)
			if flagModelsVerbose {
				printCacheInfo(store)
			}
		}
		return nil
	},
}

type modelsResponse struct {
	Models map[string]string `json:"models"`
	Count  int               `json:"count"`
	Source string            `json:"source"`
	Cached bool              `json:"cached"`
}

// warnCatalogDegraded notes a failed catalog fetch; the command keeps
// going with the fallback catalog.
func warnCatalogDegraded(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "Warning: catalog fetch failed (%v); using fallback catalog\n", err)
}

func printCacheInfo(store *cache.Store) {
	entry, ok := store.Load()
	if !ok {
		output.Messagef("Cache: none (%s)", store.Path())
		return
	}
	state := "stale"
	if entry.Fresh(cache.TTL) {
		state = "fresh"
	}
	output.Messagef("Cache: %s, age %s (%s)", state, entry.Age().Round(time.Second), store.Path())
}

// newCacheStore builds the model cache store in the Specify home.
func newCacheStore() (*cache.Store, error) {
	dir, err := cache.DefaultDir()
	if err != nil {
		return nil, err
	}
	return cache.NewStore(dir), nil
}

// resolveGithubToken resolves a token from the flag, environment, or
// the user settings file, in that order.
func resolveGithubToken(cliToken string) string {
	if token := catalog.ResolveToken(cliToken); token != "" {
		return token
	}
	settings, err := config.LoadDefault()
	if err != nil || settings == nil {
		return ""
	}
	return settings.GithubToken
}

func init() {
	listModelsCmd.Flags().BoolVar(&flagModelsRefresh, "refresh", false, "force a network fetch, bypassing the cache")
	listModelsCmd.Flags().BoolVar(&flagModelsNoCache, "no-cache", false, "skip network and cache; use the bundled fallback catalog")
	listModelsCmd.Flags().BoolVar(&flagModelsClear, "clear-cache", false, "delete the cached catalog before listing")
	listModelsCmd.Flags().StringVar(&flagModelsToken, "github-token", "", "bearer token for the models API")
	listModelsCmd.Flags().BoolVar(&flagModelsVerbose, "verbose", false, "show cache location and freshness")
	rootCmd.AddCommand(listModelsCmd)
}
