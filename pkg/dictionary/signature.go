package dictionary

import "sort"

// Signature is the canonical sorted-letter form of a word. Two words are
// anagrams of each other iff their Signatures are equal, so a Signature
// identifies a whole anagram group.
type Signature string

// Sig computes the Signature of a letter set. Input is folded to uppercase;
// anything outside A-Z is dropped before sorting.
func Sig(letters string) Signature {
	buf := make([]byte, 0, len(letters))
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			buf = append(buf, c)
		}
	}
	sort.Slice(buf, func(i, j int) bool { return buf[i] < buf[j] })
	return Signature(buf)
}

// Len returns the letter count of the signature.
func (s Signature) Len() int { return len(s) }

// Without returns the signature obtained by deleting the letter at index i.
// Deleting from a sorted string keeps the result sorted, so no re-sort is
// needed.
func (s Signature) Without(i int) Signature {
	if i < 0 || i >= len(s) {
		return s
	}
	return s[:i] + s[i+1:]
}

// With returns the signature of s plus one extra letter.
func (s Signature) With(letter byte) Signature {
	return Sig(string(s) + string(letter))
}
