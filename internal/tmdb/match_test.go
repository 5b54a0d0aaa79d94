package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"The Matrix", "matrix"},
		{"Léon: The Professional", "leon professional"},
		{"Rocky II", "rocky 2"},
		{"Fast & Furious", "fast and furious"},
		{"Spider-Man: No Way Home", "spider man no way home"},
		{"I, Robot", "i robot"},
		{"Amélie", "amelie"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeTitle(tt.in))
		})
	}
}

func TestTitleScore(t *testing.T) {
	assert.InDelta(t, 1.0, titleScore("The Matrix", "Matrix"), 0.001)
	assert.Greater(t, titleScore("Rocky 2", "Rocky II"), titleScore("Rocky 2", "Rocky III"))
	assert.Zero(t, titleScore("", "Matrix"))
}

func TestBestCandidate(t *testing.T) {
	results := []SearchResult{
		{ID: 1, Title: "The Matrix Reloaded", ReleaseDate: "2003-05-15"},
		{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30"},
	}

	best, _, ok := bestCandidate("The Matrix", 1999, results)
	assert.True(t, ok)
	assert.Equal(t, 603, best.ID)

	_, _, ok = bestCandidate("anything", 0, nil)
	assert.False(t, ok)
}

func TestBestCandidate_FallsBackToFirst(t *testing.T) {
	results := []SearchResult{
		{ID: 10, Title: "Zzzz"},
		{ID: 11, Title: "Qqqq"},
	}
	best, _, ok := bestCandidate("Completely Different", 0, results)
	assert.True(t, ok)
	assert.Equal(t, 10, best.ID)
}

func TestBestCandidate_OriginalTitle(t *testing.T) {
	results := []SearchResult{
		{ID: 1, Title: "Something Else", OriginalTitle: "Something Else"},
		{ID: 2, Title: "Spirited Away", OriginalTitle: "千と千尋の神隠し"},
		{ID: 3, Title: "Amélie", OriginalTitle: "Le Fabuleux Destin d'Amélie Poulain"},
	}
	best, _, ok := bestCandidate("Le Fabuleux Destin d'Amelie Poulain", 2001, results)
	assert.True(t, ok)
	assert.Equal(t, 3, best.ID)
}

func TestSearchResult_YearAndTitle(t *testing.T) {
	assert.Equal(t, 1999, SearchResult{ReleaseDate: "1999-03-30"}.Year())
	assert.Equal(t, 2001, SearchResult{FirstAirDate: "2001-09-09"}.Year())
	assert.Equal(t, 0, SearchResult{ReleaseDate: "bad"}.Year())
	assert.Equal(t, "Band of Brothers", SearchResult{Name: "Band of Brothers"}.DisplayTitle())
}
