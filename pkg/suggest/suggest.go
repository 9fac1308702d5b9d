// Package suggest ranks candidate next letters for a ladder in progress and
// assembles complete chains. The greedy builder is a content-authoring aid:
// each step is independently explainable, and a miss is a normal result,
// not an error. The exhaustive builder trades that interpretability for a
// guarantee, filtering every step through graph reachability.
package suggest

import (
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/veldt/laddergen/internal/utils"
	"github.com/veldt/laddergen/pkg/dictionary"
	"github.com/veldt/laddergen/pkg/graph"
	"github.com/veldt/laddergen/pkg/ladder"
	"github.com/veldt/laddergen/pkg/quality"
)

// highFrequency is the set of letters scored as common additions.
const highFrequency = "ETAOINSHRDLU"

// Policy holds the tuning knobs of the engine. The defaults are deliberate
// choices, not derived constants; they live in config so content authors
// can retune without a rebuild.
type Policy struct {
	ViabilityThreshold float64
	LookaheadSample    int
	ProbeLetters       string
	VowelLow           float64
	VowelHigh          float64
	VowelDecay         float64
	VowelWeight        float64
	LookaheadWeight    float64
	FrequencyWeight    float64
}

// DefaultPolicy returns the stock tuning.
func DefaultPolicy() Policy {
	return Policy{
		ViabilityThreshold: 0.4,
		LookaheadSample:    5,
		ProbeLetters:       "ESRTAIN",
		VowelLow:           0.30,
		VowelHigh:          0.45,
		VowelDecay:         2.5,
		VowelWeight:        0.35,
		LookaheadWeight:    0.45,
		FrequencyWeight:    0.20,
	}
}

// Suggestion is one scored candidate letter. Ephemeral; produced per
// request and never persisted.
type Suggestion struct {
	Letter               string
	ResultingLetters     string
	ValidWords           []string
	ViabilityScore       float64
	VowelRatio           float64
	LetterFrequencyScore float64
	NextLevelScore       float64
}

// Engine proposes next letters over a dictionary. The graph is optional:
// it is only consulted by the exhaustive chain builder and difficulty
// labeling.
type Engine struct {
	dict   *dictionary.Dictionary
	graph  *graph.SignatureGraph
	policy Policy
	cache  *resultCache
}

// maxCachedSets bounds the suggestion result cache.
const maxCachedSets = 4096

// NewEngine creates an engine. g may be nil when only the greedy paths are
// needed.
func NewEngine(dict *dictionary.Dictionary, g *graph.SignatureGraph, policy Policy) *Engine {
	return &Engine{dict: dict, graph: g, policy: policy, cache: newResultCache(maxCachedSets)}
}

// Suggestions returns one scored entry per letter A-Z whose addition to
// currentLetters yields at least one dictionary anagram, sorted by
// descending viability. Ties keep A-to-Z order. The 26 candidates carry no
// shared mutable state, so they are evaluated concurrently.
func (e *Engine) Suggestions(currentLetters string, targetLen int) []Suggestion {
	current := utils.StripNonLetters(currentLetters)
	if current == "" {
		return nil
	}
	if cached, ok := e.cache.get(current, targetLen); ok {
		return cached
	}

	candidates := make([]*Suggestion, 26)
	var wg sync.WaitGroup
	for i := 0; i < 26; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			candidates[i] = e.scoreLetter(current, byte('A'+i), targetLen)
		}(i)
	}
	wg.Wait()

	out := make([]Suggestion, 0, 26)
	for _, c := range candidates {
		if c != nil {
			out = append(out, *c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ViabilityScore > out[j].ViabilityScore
	})
	e.cache.put(current, targetLen, out)
	return out
}

// Stats reports engine cache counters.
func (e *Engine) Stats() map[string]int {
	return e.cache.stats()
}

// scoreLetter evaluates a single candidate letter, returning nil when the
// letter yields no valid words at all.
func (e *Engine) scoreLetter(current string, letter byte, targetLen int) *Suggestion {
	resulting := current + string(letter)
	validWords := e.dict.FindAnagrams(resulting)
	if len(validWords) == 0 {
		return nil
	}
	sortWords(validWords)

	vowelRatio := quality.VowelRatio(resulting)
	vowelScore := e.vowelScore(vowelRatio)
	freqScore := 0.5
	if strings.IndexByte(highFrequency, letter) >= 0 {
		freqScore = 1.0
	}
	lookahead := e.lookaheadScore(validWords, targetLen)

	p := e.policy
	viability := p.VowelWeight*vowelScore + p.LookaheadWeight*lookahead + p.FrequencyWeight*freqScore

	return &Suggestion{
		Letter:               string(letter),
		ResultingLetters:     resulting,
		ValidWords:           validWords,
		ViabilityScore:       viability,
		VowelRatio:           vowelRatio,
		LetterFrequencyScore: freqScore,
		NextLevelScore:       lookahead,
	}
}

// vowelScore is 1.0 inside the preferred band and decays linearly outside
// it, floored at zero.
func (e *Engine) vowelScore(ratio float64) float64 {
	p := e.policy
	switch {
	case ratio < p.VowelLow:
		score := 1.0 - p.VowelDecay*(p.VowelLow-ratio)
		if score < 0 {
			return 0
		}
		return score
	case ratio > p.VowelHigh:
		score := 1.0 - p.VowelDecay*(ratio-p.VowelHigh)
		if score < 0 {
			return 0
		}
		return score
	default:
		return 1.0
	}
}

// lookaheadScore samples up to LookaheadSample of the valid words and
// probes whether each can grow by at least one of the probe letters. At the
// terminal rung there is nothing to look ahead to and the term is fixed at
// 1.0.
func (e *Engine) lookaheadScore(validWords []string, targetLen int) float64 {
	if targetLen >= ladder.MaxLetterCount {
		return 1.0
	}
	sample := e.policy.LookaheadSample
	if sample > len(validWords) {
		sample = len(validWords)
	}
	if sample == 0 {
		return 0
	}
	succeeded := 0
	for _, word := range validWords[:sample] {
		for i := 0; i < len(e.policy.ProbeLetters); i++ {
			if len(e.dict.FindAnagrams(word+string(e.policy.ProbeLetters[i]))) > 0 {
				succeeded++
				break
			}
		}
	}
	return float64(succeeded) / float64(sample)
}

// BuildChain greedily assembles a full six-rung chain from a 3-letter
// dictionary word. At every rung it takes the first suggestion, in
// score-descending order, whose viability clears the policy threshold; if
// none clears it the build aborts with (nil, false). There is no
// backtracking to earlier rungs.
func (e *Engine) BuildChain(startWord string) ([]ladder.Level, bool) {
	start := utils.FoldToken(startWord)
	if len(start) != ladder.MinLetterCount || !e.dict.Contains(start) {
		log.Debugf("BuildChain: %q is not a %d-letter dictionary word", start, ladder.MinLetterCount)
		return nil, false
	}

	levels := make([]ladder.Level, 0, ladder.ChainLength)
	levels = append(levels, ladder.Level{
		LetterCount:     ladder.MinLetterCount,
		StartingLetters: start,
		SuggestedWord:   start,
	})

	current := start
	for target := ladder.MinLetterCount + 1; target <= ladder.MaxLetterCount; target++ {
		chosen := e.firstViable(e.Suggestions(current, target))
		if chosen == nil {
			log.Debugf("BuildChain: no viable letter at %d letters from %q", target, current)
			return nil, false
		}
		next := longestWord(chosen.ValidWords)
		levels = append(levels, ladder.Level{
			LetterCount:   target,
			AddedLetter:   chosen.Letter,
			SuggestedWord: next,
		})
		current = next
	}
	return levels, true
}

// firstViable returns the first suggestion clearing the threshold, which is
// not necessarily the highest-scoring one a caller might pick by hand.
func (e *Engine) firstViable(suggestions []Suggestion) *Suggestion {
	for i := range suggestions {
		if suggestions[i].ViabilityScore >= e.policy.ViabilityThreshold {
			return &suggestions[i]
		}
	}
	return nil
}

// BuildChainExhaustive assembles a chain by walking the signature graph,
// admitting only children that provably reach the final length. Unlike
// BuildChain it can never abort mid-ladder: once a start is reachable,
// every admitted step keeps the guarantee. Requires a built graph.
func (e *Engine) BuildChainExhaustive(startWord string) ([]ladder.Level, bool) {
	if e.graph == nil {
		log.Warn("BuildChainExhaustive called without a signature graph")
		return nil, false
	}
	start := utils.FoldToken(startWord)
	if len(start) != ladder.MinLetterCount || !e.dict.Contains(start) {
		return nil, false
	}
	sig := dictionary.Sig(start)
	if !e.graph.CanReachLength(sig, ladder.MinLetterCount, ladder.MaxLetterCount) {
		return nil, false
	}

	levels := make([]ladder.Level, 0, ladder.ChainLength)
	levels = append(levels, ladder.Level{
		LetterCount:     ladder.MinLetterCount,
		StartingLetters: start,
		SuggestedWord:   start,
	})

	for cur := ladder.MinLetterCount; cur < ladder.MaxLetterCount; cur++ {
		next, ok := e.pickReachableChild(sig, cur)
		if !ok {
			// Unreachable only if the reachability invariant is broken.
			log.Errorf("exhaustive build lost the path at %q (%d letters)", sig, cur)
			return nil, false
		}
		word, _ := e.graph.RepresentativeWord(next)
		levels = append(levels, ladder.Level{
			LetterCount:   cur + 1,
			AddedLetter:   addedLetter(sig, next),
			SuggestedWord: word,
		})
		sig = next
	}
	return levels, true
}

// pickReachableChild returns the easiest child of sig that still reaches
// the final length.
func (e *Engine) pickReachableChild(sig dictionary.Signature, cur int) (dictionary.Signature, bool) {
	children := e.graph.NextSignatures(sig)
	var best dictionary.Signature
	bestScore := 0.0
	found := false
	for _, child := range children {
		if !e.graph.CanReachLength(child, cur+1, ladder.MaxLetterCount) {
			continue
		}
		score := e.graph.DifficultyScore(child)
		if !found || score < bestScore {
			best, bestScore, found = child, score, true
		}
	}
	return best, found
}

// ChainDifficulty labels a finished chain from the average difficulty of
// its rung signatures. Falls back to medium without a graph.
func (e *Engine) ChainDifficulty(levels []ladder.Level) ladder.Difficulty {
	if e.graph == nil || len(levels) == 0 {
		return ladder.Medium
	}
	total := 0.0
	for _, lvl := range levels {
		total += e.graph.DifficultyScore(dictionary.Sig(lvl.SuggestedWord))
	}
	avg := total / float64(len(levels))
	switch {
	case avg < 2.0:
		return ladder.Easy
	case avg < 5.0:
		return ladder.Medium
	default:
		return ladder.Hard
	}
}

// addedLetter returns the single letter present in child but not in parent.
// Both signatures are sorted, so one two-pointer pass finds the insertion.
func addedLetter(parent, child dictionary.Signature) string {
	i := 0
	for ; i < parent.Len(); i++ {
		if parent[i] != child[i] {
			return string(child[i])
		}
	}
	return string(child[child.Len()-1])
}

// sortWords orders longer words first, alphabetical within a length.
func sortWords(words []string) {
	sort.SliceStable(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
}

// longestWord returns the first entry of a sortWords-ordered slice.
func longestWord(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[0]
}
