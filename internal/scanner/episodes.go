package scanner

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parsed is what a single parse rule extracted from an episode file name.
// Season is nil when the name carries none; the directory season (or 1)
// applies then. Episode 0 marks a date-based episode.
type Parsed struct {
	Season  *int
	Episode int
	Title   string
	AirDate time.Time
}

// EpisodeRule pairs a compiled pattern with an extraction function. Rules
// are evaluated in order by ParseEpisode; first match wins. Extract may
// still reject a match (an impossible air date, for example).
type EpisodeRule struct {
	Name    string
	Pattern *regexp.Regexp
	Extract func(base string, loc []int) (Parsed, bool)
}

var (
	reSeasonEpisode = regexp.MustCompile(`(?i)s(\d{1,2})e(\d{1,2})`)
	reLeadingNumber = regexp.MustCompile(`^\s*(\d{1,3})(?:\D+?(.*))?$`)
	reAirDate       = regexp.MustCompile(`(19\d{2}|20\d{2})[.\- ](\d{2})[.\- ](\d{2})`)
)

// EpisodeRules is the ordered episode parser table.
var EpisodeRules = []EpisodeRule{
	{"season-episode", reSeasonEpisode, extractSeasonEpisode},
	{"leading-number", reLeadingNumber, extractLeadingNumber},
	{"air-date", reAirDate, extractAirDate},
}

// ParseEpisode runs base (a file name without extension) through the rule
// table. It reports false when no rule matches.
func ParseEpisode(base string) (Parsed, bool) {
	for _, rule := range EpisodeRules {
		loc := rule.Pattern.FindStringSubmatchIndex(base)
		if loc == nil {
			continue
		}
		if p, ok := rule.Extract(base, loc); ok {
			return p, true
		}
	}
	return Parsed{}, false
}

func group(base string, loc []int, n int) string {
	if loc[2*n] < 0 {
		return ""
	}
	return base[loc[2*n]:loc[2*n+1]]
}

func extractSeasonEpisode(base string, loc []int) (Parsed, bool) {
	season, _ := strconv.Atoi(group(base, loc, 1))
	episode, _ := strconv.Atoi(group(base, loc, 2))
	return Parsed{
		Season:  &season,
		Episode: episode,
		Title:   CleanEpisodeTitle(base[loc[1]:]),
	}, true
}

func extractLeadingNumber(base string, loc []int) (Parsed, bool) {
	episode, _ := strconv.Atoi(group(base, loc, 1))
	return Parsed{
		Episode: episode,
		Title:   CleanEpisodeTitle(group(base, loc, 2)),
	}, true
}

func extractAirDate(base string, loc []int) (Parsed, bool) {
	year, _ := strconv.Atoi(group(base, loc, 1))
	month, _ := strconv.Atoi(group(base, loc, 2))
	day, _ := strconv.Atoi(group(base, loc, 3))

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes 2021-02-30 to March; reject those.
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return Parsed{}, false
	}
	return Parsed{
		AirDate: date,
		Title:   CleanEpisodeTitle(base[loc[1]:]),
	}, true
}

var (
	bracketGroupRe = regexp.MustCompile(`\[[^\]]+\]`)
	parenGroupRe   = regexp.MustCompile(`\([^)]+\)`)
	qualityTokenRe = regexp.MustCompile(`(?i)\b(?:1080p|2160p|720p|4k|uhd|hdr|dv|webrip|web[\s-]?dl|bluray|remux|x264|x265|h264|h265|hevc|aac|ddp|atmos)\b`)
	spaceRunRe     = regexp.MustCompile(`\s{2,}`)
)

var separatorReplacer = strings.NewReplacer(" - ", " ", "-", " ", "_", " ", ".", " ")

// CleanEpisodeTitle turns the text around an episode marker into a title:
// separators become spaces, bracketed groups and release-quality tokens go.
// An empty result means no title.
func CleanEpisodeTitle(raw string) string {
	s := separatorReplacer.Replace(raw)
	s = bracketGroupRe.ReplaceAllString(s, "")
	s = parenGroupRe.ReplaceAllString(s, "")
	s = qualityTokenRe.ReplaceAllString(s, "")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var reSeasonDir = regexp.MustCompile(`(?i)season\s*(\d{1,2})`)

// seasonFromDirs returns the season named by the nearest directory in dirs
// (ordered root to leaf). "Specials" is season 0.
func seasonFromDirs(dirs []string) (int, bool) {
	for i := len(dirs) - 1; i >= 0; i-- {
		if strings.EqualFold(dirs[i], "specials") {
			return 0, true
		}
		if m := reSeasonDir.FindStringSubmatch(dirs[i]); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
