package models

// ProviderInfo contains static information about a metadata source.
type ProviderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchResult represents a single series found by a source's search.
// Identifier is opaque and only meaningful to the source that produced it.
type SearchResult struct {
	Identifier  string `json:"identifier"`
	Title       string `json:"title"`
	Description string `json:"description"` // Year, genres, etc. Shown when disambiguating.
}
