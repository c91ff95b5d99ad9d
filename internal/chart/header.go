package chart

import (
	"regexp"
	"strings"
)

// Header pattern: "<TRACK> - <date text> - Race <N>". The text often comes
// out of layout extraction with the spaces squeezed ("AQUEDUCT-January1,2025-Race1"),
// so separators tolerate missing whitespace.
var headerRe = regexp.MustCompile(`(?i)([A-Z\s.]+?)\s*-\s*(.*?)\s*-\s*Race\s*(\d+)`)

var (
	monthDayRe   = regexp.MustCompile(`([a-zA-Z]+)(\d+)`)
	commaDigitRe = regexp.MustCompile(`(\d+),(\d+)`)
)

// ParseHeader locates the track / date / race-number header anywhere in the
// page text. The second return value is false when no header is present,
// which is the signal to skip the whole page.
func ParseHeader(text string) (Header, bool) {
	m := headerRe.FindStringSubmatch(text)
	if m == nil {
		return Header{}, false
	}
	return Header{
		Track:      strings.TrimSpace(m[1]),
		Date:       normalizeDate(strings.TrimSpace(m[2])),
		RaceNumber: strings.TrimSpace(m[3]),
	}, true
}

// normalizeDate restores the spacing of a compressed date:
// "January1,2023" -> "January 1, 2023". Anything that does not look like a
// month-day-year run passes through unchanged.
func normalizeDate(s string) string {
	s = monthDayRe.ReplaceAllString(s, "${1} ${2}")
	s = commaDigitRe.ReplaceAllString(s, "${1}, ${2}")
	return s
}
