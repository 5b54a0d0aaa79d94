package media

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cehbz/torrentname"
)

// Folder-name parsing.
//
// Folders arrive either already Plex-named ("Title (1999) {imdb-tt...}") or
// as release names ("Title.1999.1080p.BluRay.x264-GRP"). Plex-style tags are
// pulled out first; the remainder goes through the release parser, with a
// plain cleanup as the fallback.
var (
	// externalIDTagRe matches an existing {imdb-tt0133093} block.
	externalIDTagRe = regexp.MustCompile(`(?i)\{imdb-(tt\d+)\}`)

	// editionTagRe matches an existing {edition-Director's Cut} block.
	editionTagRe = regexp.MustCompile(`(?i)\{edition-([^}]+)\}`)

	// tagBlockRe matches any {...} block.
	tagBlockRe = regexp.MustCompile(`\{[^}]*\}`)

	// parenYearRe matches "(1999)".
	parenYearRe = regexp.MustCompile(`\(((?:19|20)\d{2})\)`)

	// bareYearRe matches a year token between separators.
	bareYearRe = regexp.MustCompile(`(?:^|[\s._\-\[(])((?:19|20)\d{2})(?:[\s._\-\])]|$)`)

	// editionKeywordRe matches release tags that name a cut of a movie.
	editionKeywordRe = regexp.MustCompile(`(?i)\b(director'?s[\s._]cut|extended(?:[\s._]cut|[\s._]edition)?|unrated|theatrical(?:[\s._]cut)?|final[\s._]cut|remastered|ultimate[\s._](?:cut|edition)|special[\s._]edition|criterion)\b`)

	// releaseTagsRe removes codec/resolution/source tags from fallback titles.
	releaseTagsRe = regexp.MustCompile(`(?i)\b(?:HDR|DV|x265|x264|H\.?264|H\.?265|HEVC|AVC|AAC|AC3|DDP?5?\.?1?|DTS|ATMOS|WEB-?DL|WEBRip|BluRay|BDRip|DVDRip|HDTV|REMUX|720p|1080p|2160p|4K|UHD|10bit|PROPER|REPACK)\b`)
)

// FolderName is what a folder's name says about its contents.
type FolderName struct {
	Title      string
	Year       int
	Edition    string
	ExternalID string
}

// ParseFolderName extracts title, year, edition, and an existing external ID
// tag from a folder name.
func ParseFolderName(name string) FolderName {
	var fn FolderName

	if m := externalIDTagRe.FindStringSubmatch(name); m != nil {
		fn.ExternalID = strings.ToLower(m[1])
	}
	if m := editionTagRe.FindStringSubmatch(name); m != nil {
		fn.Edition = strings.TrimSpace(m[1])
	}
	rest := strings.TrimSpace(tagBlockRe.ReplaceAllString(name, " "))

	// Already Plex-named: everything before "(YYYY)" is the title.
	if loc := parenYearRe.FindStringSubmatchIndex(rest); loc != nil {
		fn.Year, _ = strconv.Atoi(rest[loc[2]:loc[3]])
		if title := tidy(rest[:loc[0]]); title != "" {
			fn.Title = title
			return fn
		}
	}

	if fn.Edition == "" {
		if m := editionKeywordRe.FindString(rest); m != "" {
			fn.Edition = editionName(m)
		}
	}

	if info := torrentname.Parse(rest); info != nil && strings.TrimSpace(info.Title) != "" {
		fn.Title = tidy(editionKeywordRe.ReplaceAllString(info.Title, " "))
		if fn.Year == 0 && info.Year > 0 {
			fn.Year = info.Year
		}
		if fn.Title != "" {
			return fn
		}
	}

	fn.Title, fn.Year = fallbackTitle(rest, fn.Year)
	return fn
}

// fallbackTitle cuts the name at the first year token and strips release tags.
func fallbackTitle(name string, year int) (string, int) {
	title := name
	if loc := bareYearRe.FindStringSubmatchIndex(name); loc != nil && loc[2] > 0 {
		if year == 0 {
			year, _ = strconv.Atoi(name[loc[2]:loc[3]])
		}
		title = name[:loc[2]]
	}
	title = editionKeywordRe.ReplaceAllString(title, " ")
	title = releaseTagsRe.ReplaceAllString(tidy(title), " ")
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		title = strings.TrimSpace(name)
	}
	return title, year
}

// tidy turns release separators into spaces and trims leftover brackets.
func tidy(s string) string {
	s = strings.NewReplacer(".", " ", "_", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " -([")
}

// editionName normalizes a matched edition keyword: "directors.cut" becomes
// "Directors Cut".
func editionName(raw string) string {
	words := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '.' || r == '_' || r == ' '
	})
	for i, w := range words {
		lower := strings.ToLower(w)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}
