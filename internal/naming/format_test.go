package naming

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatMovieName(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		year       int
		externalID string
		edition    string
		want       string
	}{
		{"full", "The Matrix", 1999, "tt0133093", "", "The Matrix (1999) {imdb-tt0133093}"},
		{"no year", "The Matrix", 0, "tt0133093", "", "The Matrix {imdb-tt0133093}"},
		{"no id", "The Matrix", 1999, "", "", "The Matrix (1999)"},
		{"title only", "The Matrix", 0, "", "", "The Matrix"},
		{"edition", "Blade Runner", 1982, "tt0083658", "Final Cut", "Blade Runner (1982) {edition-Final Cut} {imdb-tt0083658}"},
		{"edition sanitized", "Alien", 1979, "", "Director's Cut: Special", "Alien (1979) {edition-Director's Cut Special}"},
		{"title with year and tags", "The Matrix (1999) {imdb-tt0133093}", 1999, "tt0133093", "", "The Matrix (1999) {imdb-tt0133093}"},
		{"trailing bare year", "Heat 1995", 1995, "", "", "Heat (1995)"},
		{"forbidden characters", "What If...?", 2024, "", "", "What If... (2024)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMovieName(tt.title, tt.year, tt.externalID, tt.edition)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatTVShowFolderName(t *testing.T) {
	assert.Equal(t, "Band of Brothers (2001) {imdb-tt0185906}", FormatTVShowFolderName("Band of Brothers", 2001, "tt0185906"))
	assert.Equal(t, "Band of Brothers (2001)", FormatTVShowFolderName("Band of Brothers", 2001, ""))
	assert.Equal(t, "Band of Brothers {imdb-tt0185906}", FormatTVShowFolderName("Band of Brothers", 0, "tt0185906"))
	assert.Equal(t, "The Office", FormatTVShowFolderName("The Office {tvdb-73244}", 0, ""))
}

func TestFormatSeasonFolderName(t *testing.T) {
	assert.Equal(t, "Season 00", FormatSeasonFolderName(0))
	assert.Equal(t, "Season 01", FormatSeasonFolderName(1))
	assert.Equal(t, "Season 10", FormatSeasonFolderName(10))
	assert.Equal(t, "Season 123", FormatSeasonFolderName(123))
}

func TestFormatTVEpisodeName(t *testing.T) {
	tests := []struct {
		name    string
		show    string
		year    int
		season  int
		episode int
		title   string
		ext     string
		want    string
	}{
		{"full", "Band of Brothers", 2001, 1, 1, "Currahee", "mkv", "Band of Brothers (2001) - s01e01 - Currahee.mkv"},
		{"no title", "Band of Brothers", 2001, 1, 2, "", "mkv", "Band of Brothers (2001) - s01e02.mkv"},
		{"no year", "The Office", 0, 2, 13, "The Secret", "mp4", "The Office - s02e13 - The Secret.mp4"},
		{"no extension", "The Office", 0, 2, 13, "", "", "The Office - s02e13"},
		{"dotted extension", "The Office", 0, 1, 1, "", ".avi", "The Office - s01e01.avi"},
		{"specials", "Doctor Who", 2005, 0, 3, "", "mkv", "Doctor Who (2005) - s00e03.mkv"},
		{"sanitized title", "Show", 0, 1, 1, "What? Why: How", "mkv", "Show - s01e01 - What Why How.mkv"},
		{"three digit episode", "One Piece", 1999, 1, 101, "", "mkv", "One Piece (1999) - s01e101.mkv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTVEpisodeName(tt.show, tt.year, tt.season, tt.episode, tt.title, tt.ext)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatTVEpisodeNameDateBased(t *testing.T) {
	air := time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "The Daily Show (1996) - 2020-01-15 - Guest Night.mkv",
		FormatTVEpisodeNameDateBased("The Daily Show", 1996, air, "Guest Night", "mkv"))
	assert.Equal(t, "The Daily Show - 2020-01-15.mkv",
		FormatTVEpisodeNameDateBased("The Daily Show", 0, air, "", "mkv"))
	assert.Equal(t, "The Daily Show - 2020-01-15",
		FormatTVEpisodeNameDateBased("The Daily Show", 0, air, "", ""))
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"The Matrix", "The Matrix"},
		{"The Matrix (1999)", "The Matrix"},
		{"The Matrix (1999) {imdb-tt0133093}", "The Matrix"},
		{"Heat 1995", "Heat"},
		{"1917", "1917"},
		{"(500) Days of Summer", "(500) Days of Summer"},
		{"  Spaced   Out  ", "Spaced Out"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.input))
		})
	}
}
