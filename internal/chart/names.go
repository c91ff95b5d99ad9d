package chart

import (
	"regexp"
	"strings"
)

// Name cleanup for jockey and trainer names squeezed together by layout
// extraction ("Elliott,Christopher", "BarreraIII", "Bond, H.James").

var (
	// Surname prefixes that legitimately glue a capital onto a lowercase
	// letter; the generic case split is undone for these.
	namePrefixRe = regexp.MustCompile(`\b(De|Mc|Mac|O)\s+([A-Z])`)
	periodCapRe  = regexp.MustCompile(`\.([A-Z])`)
)

// SegmentName restores spacing in a compressed personal name. The transform
// is idempotent: applying it to already-clean input is a no-op.
func SegmentName(s string) string {
	s = spaceAfterComma(s)
	s = splitCaseTransitions(s)
	s = namePrefixRe.ReplaceAllString(s, "${1}${2}")
	s = periodCapRe.ReplaceAllString(s, ". ${1}")
	return s
}

// spaceAfterComma inserts a space after commas, but only when the string
// has no ", " at all — a name with any properly spaced comma is taken as
// already clean.
func spaceAfterComma(s string) string {
	if strings.Contains(s, ",") && !strings.Contains(s, ", ") {
		return strings.ReplaceAll(s, ",", ", ")
	}
	return s
}

// splitCaseTransitions inserts a space between a lowercase letter and the
// uppercase letter that follows it ("RodriguezCastro" -> "Rodriguez Castro").
func splitCaseTransitions(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if i > 0 && s[i] >= 'A' && s[i] <= 'Z' && s[i-1] >= 'a' && s[i-1] <= 'z' {
			b.WriteByte(' ')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
