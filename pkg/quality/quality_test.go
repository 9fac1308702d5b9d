package quality

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLetterPenalty(t *testing.T) {
	testCases := []struct {
		word string
		want float64
	}{
		{"", 0},
		{"CAT", 0},
		{"cat", 0},           // case folded before scoring
		{"QUIZ", 3.6},        // Q + Z
		{"JAZZ", 5.75},       // J + Z + Z + one duplicate
		{"BOOK", 1.05},       // K + one duplicate O
		{"KAYAK", 2.8},       // K, Y, K + duplicate A + duplicate K
		{"LLAMA", 0.7},       // duplicate L + duplicate A
		{"RETRACES", 0.7},    // duplicate R + duplicate E, no rare letters
	}
	for _, tc := range testCases {
		if got := LetterPenalty(tc.word); !almostEqual(got, tc.want) {
			t.Errorf("LetterPenalty(%q) = %v, want %v", tc.word, got, tc.want)
		}
	}
}

// Adding a rare, uncommon or duplicate letter must never lower the penalty.
func TestLetterPenaltyMonotone(t *testing.T) {
	base := "CRATE"
	for _, suffix := range []string{"Q", "Z", "K", "W", "C", "E"} {
		before := LetterPenalty(base)
		after := LetterPenalty(base + suffix)
		if after < before {
			t.Errorf("penalty dropped from %v to %v when adding %q", before, after, suffix)
		}
	}
}

func TestIsVowel(t *testing.T) {
	for _, r := range "AEIOU" {
		if !IsVowel(r) {
			t.Errorf("IsVowel(%q) = false", r)
		}
	}
	for _, r := range "BCXZ" {
		if IsVowel(r) {
			t.Errorf("IsVowel(%q) = true", r)
		}
	}
}

func TestVowelRatio(t *testing.T) {
	testCases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"CAT", 1.0 / 3.0},
		{"AEIOU", 1.0},
		{"XYZ", 0},
		{"crate", 2.0 / 5.0},
	}
	for _, tc := range testCases {
		if got := VowelRatio(tc.in); !almostEqual(got, tc.want) {
			t.Errorf("VowelRatio(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
