package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mangotag/mangotag/internal/match"
	"github.com/mangotag/mangotag/internal/source"
)

var (
	fetchUseFirst bool
	fetchStdout   bool
	fetchOutput   string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <name>",
	Short: "Look up a series by name and write its metadata",
	Long: `Searches the configured source for a series by name. When the search
is ambiguous you are prompted to pick a result; the candidates are
ranked by similarity to the queried name. The chosen series' metadata
is written as ComicInfo XML to the output path, or as JSON to stdout
with --stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		provider, err := activeSource()
		if err != nil {
			return err
		}

		results, err := provider.Search(name)
		if err != nil {
			if errors.Is(err, source.ErrNoResults) {
				log.Printf("No results found matching name '%s'.", name)
				return exitError{1}
			}
			return fmt.Errorf("searching for '%s': %w", name, err)
		}

		selector := match.NewSelector(fetchUseFirst, os.Stdout,
			match.NewIndexPrompter(os.Stdin, os.Stdout))
		picked, err := selector.Pick(name, results)
		if err != nil {
			if errors.Is(err, match.ErrCancelled) {
				// Declining every candidate is a valid outcome, not a failure.
				fmt.Println("No matching result selected.")
				return nil
			}
			return err
		}

		record, err := provider.Fetch(picked.Identifier)
		if err != nil {
			return fmt.Errorf("fetching metadata for '%s': %w", picked.Title, err)
		}

		outPath := fetchOutput
		if outPath == "" && !fetchStdout {
			outPath = cfg.Output
		}
		if outPath != "" {
			if err := record.WriteFile(outPath); err != nil {
				return fmt.Errorf("writing '%s': %w", outPath, err)
			}
			log.Printf("Wrote metadata to '%s'.", outPath)
		}
		if fetchStdout {
			data, err := record.ToJSON()
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchUseFirst, "first", false, "take the best-ranked result without prompting")
	fetchCmd.Flags().BoolVar(&fetchStdout, "stdout", false, "print the metadata as JSON instead of writing a file")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "path to write the ComicInfo XML to")
	rootCmd.AddCommand(fetchCmd)
}
