package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/plexify/internal/media"
	"github.com/vmunix/plexify/internal/metadata"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultCacheTTL = 24 * time.Hour

// Client is a TMDB API client. It implements metadata.Lookup.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	ids        *cache[string]
	episodes   *cache[string]
	log        *slog.Logger
}

var _ metadata.Lookup = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithCacheTTL sets the in-memory response cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.ids = newCache[string](ttl)
		c.episodes = newCache[string](ttl)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the client's logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		ids:      newCache[string](defaultCacheTTL),
		episodes: newCache[string](defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search finds the best matching movie or show. The year narrows the
// search when known.
func (c *Client) Search(ctx context.Context, title string, year int, mediaType media.MediaType) (*metadata.SearchResult, error) {
	path := "/3/search/movie"
	yearParam := "year"
	if mediaType == media.TVShow {
		path = "/3/search/tv"
		yearParam = "first_air_date_year"
	}

	q := url.Values{}
	q.Set("query", title)
	if year > 0 {
		q.Set(yearParam, strconv.Itoa(year))
	}

	var resp searchResponse
	if err := c.get(ctx, path, q, &resp); err != nil {
		return nil, err
	}

	best, score, ok := bestCandidate(title, year, resp.Results)
	if !ok {
		return nil, metadata.Failed(metadata.ErrNoResults, "%s %q", mediaType, title)
	}
	if c.log != nil {
		c.log.Debug("tmdb search",
			"title", title,
			"year", year,
			"results", len(resp.Results),
			"match", best.DisplayTitle(),
			"tmdb_id", best.ID,
			"score", fmt.Sprintf("%.2f", score))
	}

	return &metadata.SearchResult{ProviderID: best.ID, Year: best.Year()}, nil
}

// FetchExternalID returns the IMDb ID for a TMDB movie or show.
func (c *Client) FetchExternalID(ctx context.Context, providerID int, mediaType media.MediaType) (string, error) {
	key := string(mediaType) + "/" + strconv.Itoa(providerID)
	if id, ok := c.ids.get(key); ok {
		return id, nil
	}

	var id string
	if mediaType == media.TVShow {
		var resp ExternalIDs
		if err := c.get(ctx, fmt.Sprintf("/3/tv/%d/external_ids", providerID), nil, &resp); err != nil {
			return "", err
		}
		id = resp.IMDBID
	} else {
		var resp Movie
		if err := c.get(ctx, fmt.Sprintf("/3/movie/%d", providerID), nil, &resp); err != nil {
			return "", err
		}
		id = resp.IMDBID
	}

	if id == "" {
		return "", metadata.Failed(metadata.ErrMissingExternalID, "tmdb %s %d", mediaType, providerID)
	}
	c.ids.set(key, id)
	return id, nil
}

// FetchEpisodeTitle returns the episode's name.
func (c *Client) FetchEpisodeTitle(ctx context.Context, providerID, season, episode int) (string, error) {
	key := fmt.Sprintf("%d/%d/%d", providerID, season, episode)
	if title, ok := c.episodes.get(key); ok {
		return title, nil
	}

	var resp Episode
	path := fmt.Sprintf("/3/tv/%d/season/%d/episode/%d", providerID, season, episode)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return "", err
	}

	title := strings.TrimSpace(resp.Name)
	c.episodes.set(key, title)
	return title, nil
}

// FindProviderID maps an IMDb ID to a TMDB ID through /find.
func (c *Client) FindProviderID(ctx context.Context, externalID string, mediaType media.MediaType) (int, error) {
	q := url.Values{}
	q.Set("external_source", "imdb_id")

	var resp findResponse
	if err := c.get(ctx, "/3/find/"+url.PathEscape(externalID), q, &resp); err != nil {
		return 0, err
	}

	results := resp.MovieResults
	if mediaType == media.TVShow {
		results = resp.TVResults
	}
	if len(results) == 0 || results[0].ID == 0 {
		return 0, metadata.Failed(metadata.ErrNoResults, "%s %s", mediaType, externalID)
	}
	return results[0].ID, nil
}

// get performs a GET against the API and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.apiKey == "" {
		return metadata.Failed(metadata.ErrMissingCredential, "tmdb api_key not configured")
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return metadata.Failed(metadata.ErrInvalidResponse, "create request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return metadata.Failed(metadata.ErrInvalidResponse, "execute request: %v", err)
	}
	defer resp.Body.Close()

	if c.log != nil {
		c.log.Debug("tmdb request", "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return metadata.Failed(metadata.ErrMissingCredential, "tmdb rejected api_key: %s", statusMessage(resp))
	case resp.StatusCode == http.StatusNotFound:
		return metadata.Failed(metadata.ErrNoResults, "%s", path)
	case resp.StatusCode != http.StatusOK:
		return metadata.Failed(metadata.ErrInvalidResponse, "TMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return metadata.Failed(metadata.ErrInvalidResponse, "decode response: %v", err)
	}
	return nil
}

// statusMessage extracts TMDB's status_message from an error body.
func statusMessage(resp *http.Response) string {
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.StatusMessage == "" {
		return resp.Status
	}
	return e.StatusMessage
}
