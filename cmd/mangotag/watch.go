package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mangotag/mangotag/internal/library"
	"github.com/mangotag/mangotag/internal/match"
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch a directory and tag new CBZ archives as they appear",
	Long: `Watches a directory tree and embeds metadata into CBZ archives as
they land in it. Watch mode is unattended, so the best-ranked search
result is always taken, and archives that already carry metadata are
left alone. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		provider, err := activeSource()
		if err != nil {
			return err
		}

		// noClobber is load-bearing here: the watcher sees its own
		// rewrites, and the metadata it just embedded is what stops the
		// loop.
		selector := match.NewSelector(true, os.Stdout, nil)
		updater := library.NewUpdater(provider, selector, true)

		watcher := library.NewWatcherService(args[0], updater)
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()

		<-ctx.Done()
		log.Println("Shutting down watcher.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
