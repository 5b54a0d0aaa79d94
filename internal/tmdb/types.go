// Package tmdb provides a client for The Movie Database API that implements
// metadata.Lookup.
package tmdb

import "strconv"

// SearchResult is one hit from /search/movie or /search/tv. Movies carry
// Title and ReleaseDate, shows carry Name and FirstAirDate.
type SearchResult struct {
	ID            int     `json:"id"`
	Title         string  `json:"title,omitempty"`
	OriginalTitle string  `json:"original_title,omitempty"`
	ReleaseDate   string  `json:"release_date,omitempty"` // "1999-03-30"
	Name          string  `json:"name,omitempty"`
	OriginalName  string  `json:"original_name,omitempty"`
	FirstAirDate  string  `json:"first_air_date,omitempty"`
	Popularity    float64 `json:"popularity,omitempty"`
}

// DisplayTitle returns the localized title of a movie or show.
func (r SearchResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Year extracts the release or first-air year.
func (r SearchResult) Year() int {
	if r.ReleaseDate != "" {
		return yearOf(r.ReleaseDate)
	}
	return yearOf(r.FirstAirDate)
}

type searchResponse struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"total_results"`
}

// Movie is the subset of /movie/{id} plexify reads.
type Movie struct {
	ID          int    `json:"id"`
	IMDBID      string `json:"imdb_id,omitempty"` // e.g., "tt0133093"
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	return yearOf(m.ReleaseDate)
}

// ExternalIDs is /tv/{id}/external_ids.
type ExternalIDs struct {
	ID     int    `json:"id"`
	IMDBID string `json:"imdb_id,omitempty"`
	TVDBID int    `json:"tvdb_id,omitempty"`
}

// Episode is the subset of /tv/{id}/season/{s}/episode/{e} plexify reads.
type Episode struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	AirDate       string `json:"air_date,omitempty"`
}

type findResponse struct {
	MovieResults []SearchResult `json:"movie_results"`
	TVResults    []SearchResult `json:"tv_results"`
}

type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
