package tmdb

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Match thresholds for Jaro-Winkler scores.
const (
	minMatchScore = 0.70
	yearBonus     = 1.05
	yearPenalty   = 0.90
)

// romanNumeralRegex matches Roman numerals II-IX after a space. Standalone
// "I" and "X" are left alone ("I Robot", "American History X").
var romanNumeralRegex = regexp.MustCompile(`(?i) (ii|iii|iv|v|vi|vii|viii|ix)\b`)

var romanToArabic = map[string]string{
	"II": "2", "III": "3", "IV": "4", "V": "5",
	"VI": "6", "VII": "7", "VIII": "8", "IX": "9",
}

var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// normalizeTitle reduces a title to a comparable form: lowercase, no
// accents, no punctuation, no leading articles, Arabic sequence numbers.
func normalizeTitle(title string) string {
	s := strings.ToLower(title)

	s = romanNumeralRegex.ReplaceAllStringFunc(s, func(match string) string {
		if arabic, ok := romanToArabic[strings.ToUpper(strings.TrimSpace(match))]; ok {
			return " " + arabic
		}
		return match
	})

	s = removeAccents(s)

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ".", " ")

	// "Léon: The Professional" strips the article from each part.
	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = stripLeadingArticle(strings.TrimSpace(part))
	}
	s = strings.Join(parts, " ")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

func stripLeadingArticle(s string) string {
	for _, art := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, art) {
			return strings.TrimPrefix(s, art)
		}
	}
	return s
}

// titleScore is the Jaro-Winkler similarity of two normalized titles,
// adjusted when sequence numbers disagree.
func titleScore(query, candidate string) float64 {
	q := normalizeTitle(query)
	c := normalizeTitle(candidate)
	if q == "" || c == "" {
		return 0
	}
	score := float64(edlib.JaroWinklerSimilarity(q, c))
	return adjustScoreForNumbers(score, numberRegex.FindAllString(q, -1), numberRegex.FindAllString(c, -1))
}

// adjustScoreForNumbers rewards matching sequence numbers and penalizes
// missing or different ones.
func adjustScoreForNumbers(score float64, queryNums, candidateNums []string) float64 {
	if len(queryNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}
	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range queryNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}

// bestCandidate picks the result that best matches title and year. Results
// are in provider relevance order; ties keep the earlier one. When nothing
// scores above the threshold the first result wins, since the provider
// already ranked it.
func bestCandidate(title string, year int, results []SearchResult) (SearchResult, float64, bool) {
	if len(results) == 0 {
		return SearchResult{}, 0, false
	}

	bestIdx, bestScore := -1, 0.0
	for i, r := range results {
		score := titleScore(title, r.DisplayTitle())
		alt := r.OriginalTitle
		if alt == "" {
			alt = r.OriginalName
		}
		if alt != "" {
			score = max(score, titleScore(title, alt))
		}
		if year > 0 {
			switch ry := r.Year(); {
			case ry == year:
				score = min(score*yearBonus, 1.0)
			case ry != 0 && abs(ry-year) > 1:
				score *= yearPenalty
			}
		}
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}

	if bestIdx < 0 || bestScore < minMatchScore {
		return results[0], bestScore, true
	}
	return results[bestIdx], bestScore, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
