// Package query classifies a line of user input into one of the historian's
// lookup intents.
package query

import (
	"regexp"
	"strconv"
	"strings"
)

type Kind string

const (
	KindWiki      Kind = "wiki"
	KindYear      Kind = "year"
	KindYearRange Kind = "year_range"
	KindWarsRange Kind = "wars_range"
	KindName      Kind = "name"
)

// Intent is the classified query with whatever parameters the matching rule
// extracted. Only the fields relevant to Kind are set.
type Intent struct {
	Kind  Kind
	Raw   string
	Topic string
	Year  int
	Start int
	End   int
}

const wikiPrefix = "wiki"

var (
	yearRe      = regexp.MustCompile(`\b(\d{3,4})\b`)
	yearRangeRe = regexp.MustCompile(`(\d{4})-(\d{4})`)
	warsRangeRe = regexp.MustCompile(`(?i)(\d{4})\s*(?:AD|BC)?\s*to\s*(\d{4})\s*(?:AD|BC)?`)
)

// Classify applies the routing rules in priority order; the first that matches wins.
func Classify(q string) Intent {
	if len(q) >= len(wikiPrefix) && strings.EqualFold(q[:len(wikiPrefix)], wikiPrefix) {
		return Intent{Kind: KindWiki, Raw: q, Topic: strings.TrimSpace(q[len(wikiPrefix):])}
	}
	if y, ok := ExtractYear(q); ok && y != 0 {
		return Intent{Kind: KindYear, Raw: q, Year: y}
	}
	if start, end, ok := matchRange(yearRangeRe, q); ok {
		return Intent{Kind: KindYearRange, Raw: q, Start: start, End: end}
	}
	lower := strings.ToLower(q)
	if strings.Contains(lower, "wars") && strings.Contains(lower, "occurred") {
		if start, end, ok := matchRange(warsRangeRe, q); ok {
			return Intent{Kind: KindWarsRange, Raw: q, Start: start, End: end}
		}
	}
	return Intent{Kind: KindName, Raw: q}
}

// ExtractYear returns the first whole-word run of 3 or 4 digits.
func ExtractYear(q string) (int, bool) {
	m := yearRe.FindStringSubmatch(q)
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return y, true
}

func matchRange(re *regexp.Regexp, q string) (int, int, bool) {
	m := re.FindStringSubmatch(q)
	if m == nil {
		return 0, 0, false
	}
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	end, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}
