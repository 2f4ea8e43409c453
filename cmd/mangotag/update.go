package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mangotag/mangotag/internal/library"
	"github.com/mangotag/mangotag/internal/match"
)

var (
	updateUseFirst  bool
	updateNoClobber bool
)

var updateCmd = &cobra.Command{
	Use:   "update <archive>...",
	Short: "Embed fresh metadata into CBZ archives",
	Long: `Updates the ComicInfo member of each given CBZ archive. The series
name, volume and chapter are read from the archive's filename, fresh
metadata is fetched and merged over whatever the archive already
carries, and the archive is rewritten atomically. Archives are
processed independently; the exit status is the number of failures.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := activeSource()
		if err != nil {
			return err
		}

		selector := match.NewSelector(updateUseFirst, os.Stdout,
			match.NewIndexPrompter(os.Stdin, os.Stdout))
		updater := library.NewUpdater(provider, selector, updateNoClobber)

		failures := updater.UpdateAll(args)
		if failures > 0 {
			log.Printf("%d of %d archives failed to update.", failures, len(args))
			// Exit statuses above 125 collide with shell conventions.
			if failures > 125 {
				failures = 125
			}
			return exitError{failures}
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVar(&updateUseFirst, "first", false, "take the best-ranked result without prompting")
	updateCmd.Flags().BoolVar(&updateNoClobber, "no-clobber", false, "skip archives that already have metadata")
	rootCmd.AddCommand(updateCmd)
}
