// Package quality scores words by a commonness proxy. Lower penalties mean
// a word is easier to recognize; the scores feed both word ordering and
// signature difficulty ranking.
package quality

import "strings"

const (
	// RarePenalty applies per occurrence of J, Q, X or Z.
	RarePenalty = 1.8
	// UncommonPenalty applies per occurrence of K, V, W or Y.
	UncommonPenalty = 0.7
	// DuplicatePenalty applies per letter occurrence beyond the first
	// instance of any repeated letter.
	DuplicatePenalty = 0.35
)

const vowels = "AEIOU"

// LetterPenalty returns the accumulated penalty for rare letters, uncommon
// letters and duplicates in word. The word is expected to be uppercase;
// lowercase input is folded before scoring.
func LetterPenalty(word string) float64 {
	var penalty float64
	var seen [26]int

	for _, r := range strings.ToUpper(word) {
		if r < 'A' || r > 'Z' {
			continue
		}
		switch r {
		case 'J', 'Q', 'X', 'Z':
			penalty += RarePenalty
		case 'K', 'V', 'W', 'Y':
			penalty += UncommonPenalty
		}
		seen[r-'A']++
		if seen[r-'A'] > 1 {
			penalty += DuplicatePenalty
		}
	}
	return penalty
}

// VowelRatio returns the fraction of letters in s that are vowels.
// An empty string has ratio 0.
func VowelRatio(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	count := 0
	for _, r := range strings.ToUpper(s) {
		if IsVowel(r) {
			count++
		}
	}
	return float64(count) / float64(len(s))
}

// IsVowel reports whether r is an uppercase vowel.
func IsVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}
