package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/fractionestate/specify/internal/cache"
	"github.com/fractionestate/specify/internal/output"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version, platform, and model cache freshness",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cacheState := "none"
		if store, err := newCacheStore(); err == nil {
			if entry, ok := store.Load(); ok {
				cacheState = "stale"
				if entry.Fresh(cache.TTL) {
					cacheState = "fresh"
				}
			}
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(map[string]string{
				"version":     version,
				"platform":    runtime.GOOS + "/" + runtime.GOARCH,
				"model_cache": cacheState,
			})
		}

		output.Messagef("specify %s", version)
		output.Messagef("platform: %s/%s", runtime.GOOS, runtime.GOARCH)
		output.Messagef("model cache: %s (ttl %s)", cacheState, cache.TTL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
