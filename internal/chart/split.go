package chart

import "strings"

// SplitJockeyHorse splits a compressed "HorseName(Jockey)" token into the
// horse and jockey names. The jockey segment is the last balanced
// parenthesis group, found by scanning right to left with a depth counter,
// so a horse with its own parenthesized suffix ("Caribbean(AUS)") and a
// jockey with a nested parenthetical ("Huayas,Gherson(Jason)") both resolve
// correctly. Returns false when the token does not end in ")" or no
// balancing "(" exists.
func SplitJockeyHorse(token string) (horse, jockey string, ok bool) {
	if !strings.HasSuffix(token, ")") {
		return "", "", false
	}

	depth := 0
	open := -1
	for i := len(token) - 1; i >= 0; i-- {
		switch token[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				open = i
			}
		}
		if open >= 0 {
			break
		}
	}
	if open < 0 {
		return "", "", false
	}

	horse = strings.TrimSpace(token[:open])
	jockey = strings.TrimSpace(token[open+1 : len(token)-1])

	jockey = spaceAfterComma(jockey)
	jockey = splitCaseTransitions(jockey)
	// A lone "(" is a glued-on suffix and gets a space; a balanced
	// parenthetical inside the jockey segment stays verbatim.
	if strings.Contains(jockey, "(") && !strings.Contains(jockey, " (") && !strings.Contains(jockey, ")") {
		jockey = strings.ReplaceAll(jockey, "(", " (")
	}

	return horse, jockey, true
}
