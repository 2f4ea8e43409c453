// Package source defines the contract for metadata sources and the
// registry they install themselves into.
package source

import (
	"errors"
	"fmt"

	"github.com/mangotag/mangotag/internal/comicinfo"
	"github.com/mangotag/mangotag/internal/models"
)

var (
	// ErrNoResults is returned by Search when the source found nothing
	// for the queried name.
	ErrNoResults = errors.New("no search results found")
	// ErrProviderNotFound is returned when a source ID has no
	// registered provider.
	ErrProviderNotFound = errors.New("source not found")
)

// Provider defines the contract every metadata source must implement.
// Callers only ever see SearchResults and comicinfo Records; nothing
// about a source's markup or API shape leaks past this boundary.
type Provider interface {
	GetInfo() models.ProviderInfo
	// Search returns candidate series matching a fuzzy name query.
	Search(name string) ([]models.SearchResult, error)
	// Fetch retrieves the full metadata record for one search result's
	// identifier.
	Fetch(identifier string) (*comicinfo.Record, error)
}

var registry = make(map[string]Provider)

// Register adds a new source to the registry. It's called at startup.
func Register(p Provider) {
	info := p.GetInfo()
	if _, exists := registry[info.ID]; exists {
		// Panic is appropriate here as it's a developer error during setup.
		panic(fmt.Sprintf("source with ID '%s' is already registered", info.ID))
	}
	registry[info.ID] = p
}

// Get returns a source by its ID.
func Get(id string) (Provider, bool) {
	p, ok := registry[id]
	return p, ok
}

// GetAll returns information for all registered sources.
func GetAll() []models.ProviderInfo {
	var infos []models.ProviderInfo
	for _, p := range registry {
		infos = append(infos, p.GetInfo())
	}
	return infos
}
