package metadata

import (
	"context"
	"strconv"

	"github.com/vmunix/plexify/internal/media"
)

// StubLookup is a deterministic Lookup backed by fixed tables. It never
// touches the network.
type StubLookup struct {
	// Results maps CacheKey(title, year, type) to a search result.
	Results map[string]SearchResult
	// ExternalIDs maps a provider ID to its external ID.
	ExternalIDs map[int]string
	// EpisodeTitles maps EpisodeKey(providerID, season, episode) to a title.
	EpisodeTitles map[string]string
}

// EpisodeKey builds the StubLookup.EpisodeTitles key.
func EpisodeKey(providerID, season, episode int) string {
	return strconv.Itoa(providerID) + "/" + strconv.Itoa(season) + "/" + strconv.Itoa(episode)
}

func (s *StubLookup) Search(_ context.Context, title string, year int, mediaType media.MediaType) (*SearchResult, error) {
	r, ok := s.Results[CacheKey(title, year, mediaType)]
	if !ok {
		return nil, Failed(ErrNoResults, "%q", title)
	}
	return &r, nil
}

func (s *StubLookup) FetchExternalID(_ context.Context, providerID int, _ media.MediaType) (string, error) {
	id, ok := s.ExternalIDs[providerID]
	if !ok || id == "" {
		return "", Failed(ErrMissingExternalID, "provider id %d", providerID)
	}
	return id, nil
}

func (s *StubLookup) FetchEpisodeTitle(_ context.Context, providerID, season, episode int) (string, error) {
	title, ok := s.EpisodeTitles[EpisodeKey(providerID, season, episode)]
	if !ok {
		return "", Failed(ErrNoResults, "episode %s", EpisodeKey(providerID, season, episode))
	}
	return title, nil
}

func (s *StubLookup) FindProviderID(_ context.Context, externalID string, _ media.MediaType) (int, error) {
	for pid, id := range s.ExternalIDs {
		if id == externalID {
			return pid, nil
		}
	}
	for _, r := range s.Results {
		if r.ExternalID == externalID && r.ProviderID != 0 {
			return r.ProviderID, nil
		}
	}
	return 0, Failed(ErrNoResults, "external id %s", externalID)
}
