package chart

import (
	"regexp"
	"strings"
)

var (
	// Program numbers are digits with an optional letter suffix: 1, 10, 1A.
	programRe = regexp.MustCompile(`^[0-9]+[A-Za-z]*$`)
	// Past-performance dates like 18Dec22 also start with digits; a
	// 3-letter month run in the middle disqualifies the token.
	dateTokenRe = regexp.MustCompile(`[0-9]+[A-Za-z]{3}[0-9]+`)
)

// ParseHorseRow recognizes a single horse line, returning its program
// number and cleaned jockey name. Wager lines and anything else that does
// not carry a program-number token followed by a "Horse(Jockey)" pair are
// rejected.
func ParseHorseRow(line string) (HorseEntry, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return HorseEntry{}, false
	}
	if strings.HasPrefix(line, "$") ||
		strings.Contains(line, "Pick") ||
		strings.Contains(line, "Double") ||
		strings.Contains(line, "Exacta") {
		return HorseEntry{}, false
	}

	parts := strings.Fields(line)
	program := ""
	idx := -1
	for i, p := range parts {
		if p[0] < '0' || p[0] > '9' {
			continue
		}
		if dateTokenRe.MatchString(p) {
			continue
		}
		if programRe.MatchString(p) {
			program = p
			idx = i
			break
		}
	}
	if program == "" {
		return HorseEntry{}, false
	}

	// The name pair usually sits right after the program number.
	if idx+1 < len(parts) {
		cand := parts[idx+1]
		if strings.Contains(cand, "(") && strings.Contains(cand, ")") {
			if horse, jockey, ok := SplitJockeyHorse(cand); ok && horse != "" && jockey != "" && strings.Contains(jockey, ",") {
				return HorseEntry{Program: program, Jockey: jockey}, true
			}
		}
	}

	// Fallback: any later token shaped like Horse(Jockey).
	for _, p := range parts[idx+1:] {
		if strings.Contains(p, "(") && strings.HasSuffix(p, ")") {
			if horse, jockey, ok := SplitJockeyHorse(p); ok && horse != "" && jockey != "" && strings.Contains(jockey, ",") {
				return HorseEntry{Program: program, Jockey: jockey}, true
			}
		}
	}

	return HorseEntry{}, false
}
