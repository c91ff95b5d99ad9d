package chart

import (
	"regexp"
	"strings"
)

// Footer entries look like "1 - Jones, Eduardo" or "1A - Brown, William".
var footerEntryRe = regexp.MustCompile(`^(\d+[A-Za-z]*)\s*-\s*(.*)`)

// ParseTrainersFooter builds the program-number -> trainer-name lookup from
// the trailing "Trainers:" block, reading up to the "Owners:" marker or the
// end of the text. Entries may wrap across lines and are separated by
// semicolons. A page without a Trainers marker yields an empty map.
func ParseTrainersFooter(text string) map[string]string {
	trainers := make(map[string]string)

	const marker = "trainers:"
	i := strings.Index(strings.ToLower(text), marker)
	if i < 0 {
		return trainers
	}
	block := text[i+len(marker):]
	if j := strings.Index(strings.ToLower(block), "owners:"); j >= 0 {
		block = block[:j]
	}
	block = strings.ReplaceAll(block, "\n", " ")

	for _, entry := range strings.Split(block, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		m := footerEntryRe.FindStringSubmatch(entry)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[2])
		name = strings.TrimSuffix(name, ".")
		trainers[m[1]] = SegmentName(name)
	}
	return trainers
}
