package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/plexify/internal/media"
	"github.com/vmunix/plexify/internal/metadata"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_SearchMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "The Matrix", r.URL.Query().Get("query"))
		assert.Equal(t, "1999", r.URL.Query().Get("year"))

		writeJSON(w, searchResponse{Results: []SearchResult{
			{ID: 55931, Title: "The Matrix Revisited", ReleaseDate: "2001-11-19"},
			{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30"},
		}})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	res, err := client.Search(context.Background(), "The Matrix", 1999, media.Movie)
	require.NoError(t, err)
	assert.Equal(t, 603, res.ProviderID)
	assert.Equal(t, 1999, res.Year)
	assert.Empty(t, res.ExternalID)
}

func TestClient_SearchTV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/tv", r.URL.Path)
		assert.Equal(t, "", r.URL.Query().Get("first_air_date_year"))

		writeJSON(w, searchResponse{Results: []SearchResult{
			{ID: 4613, Name: "Band of Brothers", FirstAirDate: "2001-09-09"},
		}})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	res, err := client.Search(context.Background(), "Band of Brothers", 0, media.TVShow)
	require.NoError(t, err)
	assert.Equal(t, 4613, res.ProviderID)
	assert.Equal(t, 2001, res.Year)
}

func TestClient_Search_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, searchResponse{})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	res, err := client.Search(context.Background(), "Nothing Here", 0, media.Movie)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, metadata.ErrLookupFailed)
	assert.ErrorIs(t, err, metadata.ErrNoResults)
}

func TestClient_MissingAPIKey(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewClient("", WithBaseURL(server.URL))

	_, err := client.Search(context.Background(), "The Matrix", 1999, media.Movie)
	assert.ErrorIs(t, err, metadata.ErrMissingCredential)
	assert.Zero(t, calls.Load(), "no request without a key")
}

func TestClient_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key."}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", WithBaseURL(server.URL))

	_, err := client.FetchExternalID(context.Background(), 603, media.Movie)
	assert.ErrorIs(t, err, metadata.ErrMissingCredential)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestClient_ServerErrorAndBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/3/movie/1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.FetchExternalID(context.Background(), 1, media.Movie)
	assert.ErrorIs(t, err, metadata.ErrInvalidResponse)

	_, err = client.FetchExternalID(context.Background(), 2, media.Movie)
	assert.ErrorIs(t, err, metadata.ErrInvalidResponse)
}

func TestClient_FetchExternalID_Movie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/603", r.URL.Path)
		writeJSON(w, Movie{ID: 603, IMDBID: "tt0133093", Title: "The Matrix", ReleaseDate: "1999-03-30"})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	id, err := client.FetchExternalID(context.Background(), 603, media.Movie)
	require.NoError(t, err)
	assert.Equal(t, "tt0133093", id)
}

func TestClient_FetchExternalID_TV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/tv/4613/external_ids", r.URL.Path)
		writeJSON(w, ExternalIDs{ID: 4613, IMDBID: "tt0185906"})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	id, err := client.FetchExternalID(context.Background(), 4613, media.TVShow)
	require.NoError(t, err)
	assert.Equal(t, "tt0185906", id)
}

func TestClient_FetchExternalID_Missing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, Movie{ID: 1, Title: "Obscure"})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.FetchExternalID(context.Background(), 1, media.Movie)
	assert.ErrorIs(t, err, metadata.ErrMissingExternalID)
}

func TestClient_FetchExternalID_Cached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, Movie{ID: 550, IMDBID: "tt0137523"})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithCacheTTL(time.Hour))

	// First call hits API
	_, err := client.FetchExternalID(context.Background(), 550, media.Movie)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	// Second call uses cache
	_, err = client.FetchExternalID(context.Background(), 550, media.Movie)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load(), "should use cache, not call API again")
}

func TestClient_FetchEpisodeTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/tv/4613/season/1/episode/1":
			writeJSON(w, Episode{ID: 1, Name: "Currahee", SeasonNumber: 1, EpisodeNumber: 1})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
		}
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	title, err := client.FetchEpisodeTitle(context.Background(), 4613, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Currahee", title)

	_, err = client.FetchEpisodeTitle(context.Background(), 4613, 1, 99)
	assert.ErrorIs(t, err, metadata.ErrNoResults)
}

func TestClient_FindProviderID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/find/tt0185906", r.URL.Path)
		assert.Equal(t, "imdb_id", r.URL.Query().Get("external_source"))
		writeJSON(w, findResponse{TVResults: []SearchResult{{ID: 4613, Name: "Band of Brothers"}}})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	id, err := client.FindProviderID(context.Background(), "tt0185906", media.TVShow)
	require.NoError(t, err)
	assert.Equal(t, 4613, id)

	_, err = client.FindProviderID(context.Background(), "tt0185906", media.Movie)
	assert.ErrorIs(t, err, metadata.ErrNoResults)
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithTimeout(50*time.Millisecond))

	_, err := client.FetchExternalID(context.Background(), 1, media.Movie)
	assert.ErrorIs(t, err, metadata.ErrInvalidResponse)
}

func TestClient_ResolverIntegration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/search/movie":
			writeJSON(w, searchResponse{Results: []SearchResult{{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30"}}})
		case "/3/movie/603":
			writeJSON(w, Movie{ID: 603, IMDBID: "tt0133093"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	resolver := metadata.NewResolver(NewClient("test-key", WithBaseURL(server.URL)), nil, nil)
	item := media.NewItem("/m/The Matrix", "The Matrix", media.Movie)

	res, ok := resolver.Resolve(context.Background(), item)
	require.True(t, ok)
	assert.Equal(t, "tt0133093", res.ExternalID)
	assert.Equal(t, 1999, res.Year)
	assert.Equal(t, 603, res.ProviderID)
}
