// Command mangotag fetches manga series metadata from a web source and
// writes it out as ComicInfo XML, either to a sidecar file or embedded
// into CBZ archives.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mangotag/mangotag/internal/config"
	"github.com/mangotag/mangotag/internal/source"
	"github.com/mangotag/mangotag/internal/source/mangaupdates"
	"github.com/mangotag/mangotag/internal/source/mockupdates"
)

var (
	cfg *config.Config

	flagCacheDir string
	flagSource   string
)

var rootCmd = &cobra.Command{
	Use:   "mangotag",
	Short: "Fetch and embed manga metadata as ComicInfo XML",
	Long: `mangotag looks up manga series metadata from a web source,
lets you disambiguate between fuzzy search matches, and writes the
result as ComicInfo XML to a sidecar file or into CBZ archives.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		cfg = c
		if flagCacheDir != "" {
			cfg.CacheDir = flagCacheDir
		}
		if flagSource != "" {
			cfg.Source = flagSource
		}

		client := source.NewClient(cfg.CacheDir, time.Duration(cfg.HTTPTimeout)*time.Second)
		source.Register(mangaupdates.New(client))
		source.Register(mockupdates.New())
		return nil
	},
}

// activeSource resolves the configured source against the registry.
func activeSource() (source.Provider, error) {
	p, ok := source.Get(cfg.Source)
	if !ok {
		var ids []string
		for _, info := range source.GetAll() {
			ids = append(ids, info.ID)
		}
		return nil, fmt.Errorf("%w: '%s' (available: %v)", source.ErrProviderNotFound, cfg.Source, ids)
	}
	return p, nil
}

// exitError carries a process exit code up through cobra's error path
// without printing anything; the message has already been logged where
// the failure happened.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCacheDir, "cache", "", "directory to cache fetched pages in (caching disabled when empty)")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "metadata source to query (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		log.Printf("ERROR: %v", err)
		os.Exit(1)
	}
}
