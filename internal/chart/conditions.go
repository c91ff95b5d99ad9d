package chart

import (
	"regexp"
	"strings"
)

// Surfaces is the ordered list of recognized track surfaces. Matching takes
// the first case-insensitive substring hit, so order matters.
var Surfaces = []string{"Dirt", "Turf", "All Weather", "Tapeta"}

// SurfaceUnknown is reported when a Distance marker is present but the
// surface text matches none of the known surfaces.
const SurfaceUnknown = "Unknown"

var conditionsRe = regexp.MustCompile(`(?i)Distance:\s*(.*?)\s*On\s*The\s*(.*)`)

// ParseConditions locates "Distance:<text> On The <surface>" in the page
// text. Without a Distance marker it returns the zero value and false.
func ParseConditions(text string) (Conditions, bool) {
	m := conditionsRe.FindStringSubmatch(text)
	if m == nil {
		return Conditions{}, false
	}

	surface := SurfaceUnknown
	raw := strings.ToLower(strings.TrimSpace(m[2]))
	for _, s := range Surfaces {
		if strings.Contains(raw, strings.ToLower(s)) {
			surface = s
			break
		}
	}

	return Conditions{
		Distance: despaceDistance(strings.TrimSpace(m[1])),
		Surface:  surface,
	}, true
}

// despaceDistance recovers word boundaries in a compressed distance, e.g.
// "SixFurlongs" -> "Six Furlongs". Distances that already contain a space,
// or are too short to be compressed words, pass through unchanged.
func despaceDistance(d string) string {
	if strings.Contains(d, " ") || len(d) <= 3 {
		return d
	}
	var b strings.Builder
	b.Grow(len(d) + 4)
	for i, r := range d {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
