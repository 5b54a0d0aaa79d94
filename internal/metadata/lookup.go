// Package metadata resolves external IDs for media items through a lookup
// provider, with a persistent cache in front of it.
package metadata

import (
	"context"

	"github.com/vmunix/plexify/internal/media"
)

// SearchResult is the best provider match for a title search.
// ExternalID and Year may be empty when the search endpoint does not carry
// them.
type SearchResult struct {
	ProviderID int
	ExternalID string
	Year       int
}

//go:generate mockgen -source=lookup.go -destination=mocks/mock_lookup.go -package=mocks

// Lookup is a metadata provider. Implementations return errors built with
// Failed so callers can tell failure kinds apart.
type Lookup interface {
	// Search finds the best match for a title. Year 0 means unknown.
	Search(ctx context.Context, title string, year int, mediaType media.MediaType) (*SearchResult, error)

	// FetchExternalID returns the external ID for a provider record.
	FetchExternalID(ctx context.Context, providerID int, mediaType media.MediaType) (string, error)

	// FetchEpisodeTitle returns an episode's canonical title. Empty means
	// the provider has none.
	FetchEpisodeTitle(ctx context.Context, providerID, season, episode int) (string, error)

	// FindProviderID maps an external ID back to a provider record.
	FindProviderID(ctx context.Context, externalID string, mediaType media.MediaType) (int, error)
}
