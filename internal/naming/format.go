package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ExternalIDTag is the agent prefix used in {tag-ID} blocks.
const ExternalIDTag = "imdb"

// airDateLayout renders air dates as YYYY-MM-DD.
const airDateLayout = "2006-01-02"

var (
	// parenYear matches a "(1999)" year group anywhere in a title.
	parenYear = regexp.MustCompile(`\(\d{4}\)`)

	// trailingYear matches a bare year token at the end of a title.
	trailingYear = regexp.MustCompile(`\s(19\d{2}|20\d{2})$`)
)

// CleanTitle strips tag blocks and year tokens a title may carry over from
// an existing folder name. Everything from the first "{" on is dropped.
func CleanTitle(title string) string {
	if i := strings.Index(title, "{"); i >= 0 {
		title = title[:i]
	}
	title = parenYear.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)
	title = trailingYear.ReplaceAllString(title, "")
	title = multiSpace.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}

// FormatMovieName renders "Title (Year) {edition-X} {imdb-ID}".
// Year 0 and empty edition/ID omit their blocks.
func FormatMovieName(title string, year int, externalID, edition string) string {
	parts := []string{Sanitize(CleanTitle(title))}
	parts = appendYear(parts, year)
	if e := Sanitize(edition); e != "" {
		parts = append(parts, "{edition-"+e+"}")
	}
	parts = appendExternalID(parts, externalID)
	return strings.Join(parts, " ")
}

// FormatTVShowFolderName renders "Title (Year) {imdb-ID}".
func FormatTVShowFolderName(title string, year int, externalID string) string {
	parts := []string{Sanitize(CleanTitle(title))}
	parts = appendYear(parts, year)
	parts = appendExternalID(parts, externalID)
	return strings.Join(parts, " ")
}

// FormatSeasonFolderName renders "Season 01". Season 0 holds specials.
func FormatSeasonFolderName(season int) string {
	return fmt.Sprintf("Season %02d", season)
}

// FormatTVEpisodeName renders "Show (Year) - s01e01 - Title.ext".
func FormatTVEpisodeName(show string, year, season, episode int, episodeTitle, ext string) string {
	return episodeName(show, year, fmt.Sprintf("s%02de%02d", season, episode), episodeTitle, ext)
}

// FormatTVEpisodeNameDateBased renders "Show (Year) - 2024-03-01 - Title.ext".
func FormatTVEpisodeNameDateBased(show string, year int, airDate time.Time, episodeTitle, ext string) string {
	return episodeName(show, year, airDate.Format(airDateLayout), episodeTitle, ext)
}

func episodeName(show string, year int, marker, episodeTitle, ext string) string {
	parts := []string{Sanitize(CleanTitle(show))}
	parts = appendYear(parts, year)
	parts = append(parts, "-", marker)
	if t := Sanitize(episodeTitle); t != "" {
		parts = append(parts, "-", t)
	}
	return withExt(strings.Join(parts, " "), ext)
}

func appendYear(parts []string, year int) []string {
	if year <= 0 {
		return parts
	}
	return append(parts, "("+strconv.Itoa(year)+")")
}

func appendExternalID(parts []string, externalID string) []string {
	id := Sanitize(externalID)
	if id == "" {
		return parts
	}
	return append(parts, "{"+ExternalIDTag+"-"+id+"}")
}

// withExt appends ".ext" when ext is non-empty. A leading dot is tolerated.
func withExt(base, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return base
	}
	return base + "." + ext
}
