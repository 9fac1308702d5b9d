// Package dictionary owns the full word list and answers membership and
// anagram-group queries. The structure is built once during load and is
// read-only afterward, so it can be shared across any number of readers.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/veldt/laddergen/internal/utils"
)

// ErrSourceUnavailable signals that the backing word list could not be
// read. Loads are all-or-nothing; no partial dictionary is produced.
var ErrSourceUnavailable = errors.New("dictionary: word list source unavailable")

// MaxLetters caps the inputs FindValidWords will accept. Subset-permutation
// search is factorial in the letter count; eight letters is the longest
// ladder rung, so longer inputs are a caller bug, not a workload.
const MaxLetters = 8

// Dictionary is an immutable-after-load word set with two indexes: a
// patricia trie for O(len) membership and a signature map for anagram
// groups.
type Dictionary struct {
	trie       *patricia.Trie
	bySig      map[Signature][]string
	totalWords int
}

// New returns an empty dictionary. Populate it with Load or LoadFile.
func New() *Dictionary {
	return &Dictionary{
		trie:  patricia.NewTrie(),
		bySig: make(map[Signature][]string),
	}
}

// Load inserts every token from r into the dictionary: whitespace-trimmed,
// uppercased, empty tokens discarded, duplicates inserted once. Tokens with
// non-letter runes are skipped with a debug note. A read failure wraps
// ErrSourceUnavailable and leaves the dictionary untouched; tokens are
// staged until the whole source has been read.
func (d *Dictionary) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	staged := make([]string, 0, 1024)
	skipped := 0

	for scanner.Scan() {
		token := utils.FoldToken(scanner.Text())
		if token == "" {
			continue
		}
		if !utils.IsPlayableToken(token) {
			skipped++
			continue
		}
		staged = append(staged, token)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	added := 0
	for _, token := range staged {
		if d.trie.Get(patricia.Prefix(token)) != nil {
			continue
		}
		d.trie.Insert(patricia.Prefix(token), len(token))
		sig := Sig(token)
		d.bySig[sig] = append(d.bySig[sig], token)
		d.totalWords++
		added++
	}

	// Anagram groups are returned alphabetically for determinism.
	for _, words := range d.bySig {
		sort.Strings(words)
	}

	log.Debugf("Dictionary load: %d words added, %d tokens skipped", added, skipped)
	return nil
}

// LoadFile loads a newline-delimited word list from disk.
func (d *Dictionary) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer file.Close()
	return d.Load(file)
}

// Contains reports case-insensitive membership. The empty word is never
// contained.
func (d *Dictionary) Contains(word string) bool {
	if len(word) == 0 {
		return false
	}
	folded := utils.FoldToken(word)
	if !utils.IsPlayableToken(folded) {
		return false
	}
	return d.trie.Get(patricia.Prefix(folded)) != nil
}

// FindAnagrams returns every dictionary word that is a rearrangement of all
// of letters, in alphabetical order. Permuting the input cannot change the
// result because lookup goes through the letters' Signature.
func (d *Dictionary) FindAnagrams(letters string) []string {
	return d.AnagramsOf(Sig(letters))
}

// AnagramsOf returns the anagram group for a signature, or nil when the
// signature has no words.
func (d *Dictionary) AnagramsOf(sig Signature) []string {
	words, ok := d.bySig[sig]
	if !ok {
		return nil
	}
	out := make([]string, len(words))
	copy(out, words)
	return out
}

// FindValidWords returns every dictionary word formable from any subset of
// letters: exactly length letters when length > 0, any length otherwise.
// The search is a backtracking walk over letter positions with duplicate
// letters collapsed per depth, so repeated letters do not multiply the
// candidate set. Inputs longer than MaxLetters return nil.
func (d *Dictionary) FindValidWords(letters string, length int) []string {
	norm := utils.StripNonLetters(letters)
	if len(norm) == 0 {
		return nil
	}
	if len(norm) > MaxLetters {
		log.Warnf("FindValidWords rejected %d-letter input (max %d)", len(norm), MaxLetters)
		return nil
	}
	if length > len(norm) {
		return nil
	}

	pool := []byte(string(Sig(norm)))
	used := make([]bool, len(pool))
	buf := make([]byte, 0, len(pool))
	found := make(map[string]struct{})

	var walk func()
	walk = func() {
		if len(buf) > 0 && (length <= 0 || len(buf) == length) {
			if word := string(buf); d.Contains(word) {
				found[word] = struct{}{}
			}
		}
		if len(buf) == len(pool) || (length > 0 && len(buf) == length) {
			return
		}
		for i := 0; i < len(pool); i++ {
			if used[i] {
				continue
			}
			// Equal letters are interchangeable at the same depth.
			if i > 0 && pool[i] == pool[i-1] && !used[i-1] {
				continue
			}
			used[i] = true
			buf = append(buf, pool[i])
			walk()
			buf = buf[:len(buf)-1]
			used[i] = false
		}
	}
	walk()

	out := make([]string, 0, len(found))
	for word := range found {
		out = append(out, word)
	}
	sort.Strings(out)
	return out
}

// EachSignature visits every anagram group. The words slice must not be
// mutated by fn; it is the dictionary's own storage.
func (d *Dictionary) EachSignature(fn func(sig Signature, words []string)) {
	for sig, words := range d.bySig {
		fn(sig, words)
	}
}

// Stats returns basic counters about the loaded word list.
func (d *Dictionary) Stats() map[string]int {
	return map[string]int{
		"totalWords":      d.totalWords,
		"signatureGroups": len(d.bySig),
	}
}
