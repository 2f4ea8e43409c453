// A mock source for development and testing purposes. It simulates
// searching and fetching from a real site without making network calls.
package mockupdates

import (
	"fmt"

	"github.com/mangotag/mangotag/internal/comicinfo"
	"github.com/mangotag/mangotag/internal/models"
)

type MockUpdatesProvider struct{}

func New() *MockUpdatesProvider {
	return &MockUpdatesProvider{}
}

func (p *MockUpdatesProvider) GetInfo() models.ProviderInfo {
	return models.ProviderInfo{
		ID:   "mockupdates",
		Name: "MockUpdates",
	}
}

func (p *MockUpdatesProvider) Search(name string) ([]models.SearchResult, error) {
	var results []models.SearchResult
	for i := 1; i <= 5; i++ {
		results = append(results, models.SearchResult{
			Identifier:  fmt.Sprintf("mock-series-%d", i),
			Title:       fmt.Sprintf("%s - Result %d", name, i),
			Description: fmt.Sprintf("%s - Result %d (%d) - Mock Genre", name, i, 2000+i),
		})
	}
	return results, nil
}

func (p *MockUpdatesProvider) Fetch(identifier string) (*comicinfo.Record, error) {
	record := comicinfo.New()
	record.Set(comicinfo.FieldTitle, fmt.Sprintf("Mock Series %s", identifier))
	record.Set(comicinfo.FieldSeries, fmt.Sprintf("Mock Series %s", identifier))
	record.Set(comicinfo.FieldSummary, "A mock series used for development and tests.")
	record.Set(comicinfo.FieldYear, "2006")
	record.Set(comicinfo.FieldWriter, "Mock Author")
	record.Set(comicinfo.FieldGenre, "Action,Mock")
	record.Set(comicinfo.FieldWeb, fmt.Sprintf("https://mockupdates.example/series/%s", identifier))
	record.PutNote("associated_names", []string{"Mokku Shirizu"})
	return record, nil
}
