package match

import (
	"errors"
	"fmt"
	"io"

	"github.com/mangotag/mangotag/internal/models"
)

// ErrCancelled is returned when the user backs out of an interactive
// selection. It means "nothing to do", not a failure.
var ErrCancelled = errors.New("selection cancelled")

// Prompter solicits an index in [0, count) from the user, one attempt
// per call. The retry-vs-terminate decision belongs to the selector,
// not the prompt primitive.
type Prompter interface {
	Solicit(count int) (int, PromptOutcome)
}

// Selector resolves a list of search results down to one.
type Selector struct {
	autoFirst bool
	out       io.Writer
	prompter  Prompter
}

// NewSelector creates a selector. With autoFirst set the top-ranked
// result is chosen without prompting and prompter is never used.
func NewSelector(autoFirst bool, out io.Writer, prompter Prompter) *Selector {
	return &Selector{autoFirst: autoFirst, out: out, prompter: prompter}
}

// Pick returns the chosen result. A single-element list is returned
// as-is without ranking or prompting; there is nothing to disambiguate.
// An empty list is a caller bug: searches with no results are handled
// before selection.
func (s *Selector) Pick(query string, results []models.SearchResult) (models.SearchResult, error) {
	if len(results) == 0 {
		return models.SearchResult{}, errors.New("no results to pick from")
	}
	if len(results) == 1 {
		return results[0], nil
	}

	ranked := Rank(query, results)
	fmt.Fprintf(s.out, "Found %d possible results.\n", len(ranked))

	if s.autoFirst {
		fmt.Fprintf(s.out, "Automatically choosing first result: %s.\n", ranked[0].Result.Title)
		return ranked[0].Result, nil
	}

	for i, entry := range ranked {
		fmt.Fprintf(s.out, "%02d -- %s (Sim: %.3f) --- %s\n",
			i, entry.Result.Title, entry.Score, entry.Result.Description)
	}

	for {
		index, outcome := s.prompter.Solicit(len(ranked))
		switch outcome {
		case PromptValid:
			return ranked[index].Result, nil
		case PromptRetry:
			continue
		default:
			return models.SearchResult{}, ErrCancelled
		}
	}
}
