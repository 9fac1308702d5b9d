package utils

import (
	"strings"
)

// FoldToken trims whitespace and uppercases a raw word-list token.
func FoldToken(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsPlayableToken reports whether a folded token is usable as a dictionary
// entry: non-empty and strictly A-Z. Tokens with digits, punctuation or
// accents are skipped rather than failing the load.
func IsPlayableToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// StripNonLetters removes anything outside A-Z after uppercasing.
// Used to sanitize user-typed letter sets before querying.
func StripNonLetters(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
