package metadata

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/vmunix/plexify/internal/media"
)

// DefaultTimeout bounds each external call.
const DefaultTimeout = 10 * time.Second

// Resolution is a resolved external ID plus what the provider said about
// the item.
type Resolution struct {
	ExternalID string `json:"external_id"`
	Year       int    `json:"year,omitempty"`
	ProviderID int    `json:"provider_id,omitempty"`
}

// Resolver finds external IDs for media items. Lookups go through the cache
// first; successful lookups are written back.
type Resolver struct {
	lookup  Lookup
	store   Store
	timeout time.Duration
	log     *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTimeout sets the per-call timeout for external lookups.
func WithTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewResolver creates a resolver. A nil lookup resolves from the cache only;
// a nil store disables caching.
func NewResolver(lookup Lookup, store Store, log *slog.Logger, opts ...ResolverOption) *Resolver {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Resolver{
		lookup:  lookup,
		store:   store,
		timeout: DefaultTimeout,
		log:     log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the external ID for item. A manual or already set ID wins
// without any lookup; otherwise the cache and then the provider are asked.
// Lookup failures are logged and reported as false.
func (r *Resolver) Resolve(ctx context.Context, item media.Item) (*Resolution, bool) {
	if item.ExternalIDIsManual && item.ExternalID != "" {
		return &Resolution{ExternalID: item.ExternalID, Year: item.Year, ProviderID: item.ProviderID}, true
	}
	if item.ExternalID != "" {
		return &Resolution{ExternalID: item.ExternalID, Year: item.Year, ProviderID: item.ProviderID}, true
	}
	if item.Title == "" {
		return nil, false
	}

	key := CacheKey(item.Title, item.Year, item.MediaType)
	if r.store != nil {
		if e, ok := r.store.Get(ctx, key); ok {
			r.log.Debug("cache hit", "key", key, "external_id", e.ExternalID)
			return &Resolution{ExternalID: e.ExternalID, Year: e.Year, ProviderID: e.ProviderID}, true
		}
	}

	if r.lookup == nil {
		return nil, false
	}

	res, err := r.search(ctx, item)
	if err != nil {
		r.log.Warn("external ID lookup failed", "title", item.Title, "year", item.Year, "type", item.MediaType, "error", err)
		return nil, false
	}

	if r.store != nil {
		entry := Entry{ExternalID: res.ExternalID, Year: res.Year, ProviderID: res.ProviderID}
		if err := r.store.Set(ctx, key, entry); err != nil {
			// Caching is best-effort; the resolution still stands.
			r.log.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return res, true
}

// search runs the provider search and, when needed, the external ID fetch.
func (r *Resolver) search(ctx context.Context, item media.Item) (*Resolution, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	sr, err := r.lookup.Search(callCtx, item.Title, item.Year, item.MediaType)
	cancel()
	if err != nil {
		return nil, asLookupError(err)
	}
	if sr == nil || (sr.ProviderID == 0 && sr.ExternalID == "") {
		return nil, Failed(ErrNoResults, "%q", item.Title)
	}

	id := sr.ExternalID
	if id == "" {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		id, err = r.lookup.FetchExternalID(callCtx, sr.ProviderID, item.MediaType)
		cancel()
		if err != nil {
			return nil, asLookupError(err)
		}
		if id == "" {
			return nil, Failed(ErrMissingExternalID, "provider id %d", sr.ProviderID)
		}
	}
	return &Resolution{ExternalID: id, Year: sr.Year, ProviderID: sr.ProviderID}, nil
}

// asLookupError makes sure err matches ErrLookupFailed.
func asLookupError(err error) error {
	if errors.Is(err, ErrLookupFailed) {
		return err
	}
	return Failed(ErrInvalidResponse, "%v", err)
}

// ApplyResolution rebuilds item with the resolved ID and provider ID. The
// provider year is used only when the item has none. A manual ID is never
// replaced.
func ApplyResolution(item media.Item, res *Resolution) media.Item {
	if res == nil {
		return item
	}
	if !item.ExternalIDIsManual {
		item = item.WithExternalID(res.ExternalID, false)
	}
	if res.ProviderID != 0 {
		item = item.WithProviderID(res.ProviderID)
	}
	if item.Year == 0 && res.Year > 0 {
		item = item.WithYear(res.Year)
	}
	return item
}

// EnrichEpisodes replaces parsed episode titles with the provider's canonical
// ones. Episodes without a number (date-based) are left alone, and a failed
// fetch keeps the parsed title. The provider ID comes from the item or, if
// missing, from its external ID.
func (r *Resolver) EnrichEpisodes(ctx context.Context, item media.Item) media.Item {
	if r.lookup == nil || item.MediaType != media.TVShow || len(item.Episodes) == 0 {
		return item
	}

	providerID := item.ProviderID
	if providerID == 0 {
		if item.ExternalID == "" {
			return item
		}
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		id, err := r.lookup.FindProviderID(callCtx, item.ExternalID, item.MediaType)
		cancel()
		if err != nil || id == 0 {
			r.log.Warn("provider ID lookup failed", "external_id", item.ExternalID, "error", err)
			return item
		}
		providerID = id
	}

	episodes := make([]media.Episode, len(item.Episodes))
	copy(episodes, item.Episodes)

	enriched := 0
	for i, ep := range episodes {
		if ep.Episode == 0 || ep.IsDateBased() {
			continue
		}
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		title, err := r.lookup.FetchEpisodeTitle(callCtx, providerID, ep.Season, ep.Episode)
		cancel()
		if err != nil {
			r.log.Debug("episode title fetch failed", "season", ep.Season, "episode", ep.Episode, "error", err)
			continue
		}
		if title != "" {
			episodes[i] = ep.WithTitle(title)
			enriched++
		}
	}

	r.log.Debug("episodes enriched", "provider_id", providerID, "enriched", enriched, "total", len(episodes))
	return item.WithEpisodes(episodes).WithProviderID(providerID)
}
