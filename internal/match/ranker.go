// Package match ranks search results against the queried series name and
// resolves which result to use, interactively or automatically.
package match

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/mangotag/mangotag/internal/models"
)

// RankedResult pairs a search result with its similarity to the query.
// Score is in [0, 1], 1 meaning identical.
type RankedResult struct {
	Score  float64
	Result models.SearchResult
}

// Rank scores every result title against the query, case-folded, and
// returns them ordered by descending score. Ties keep the results'
// original relative order. Rank is pure; an empty input yields an empty
// output.
func Rank(query string, results []models.SearchResult) []RankedResult {
	folded := strings.ToLower(query)
	ranked := make([]RankedResult, 0, len(results))
	for _, result := range results {
		ranked = append(ranked, RankedResult{
			Score:  levenshtein.Similarity(folded, strings.ToLower(result.Title), nil),
			Result: result,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
