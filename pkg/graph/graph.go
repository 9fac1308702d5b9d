// Package graph precomputes the signature graph: letter-multiset vertices
// partitioned by length, single-letter-addition edges between adjacent
// lengths, and memoized forward-reachability to a target length. Edges only
// ever increase length, so the graph is a DAG and every reachability walk
// terminates.
package graph

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/veldt/laddergen/pkg/dictionary"
	"github.com/veldt/laddergen/pkg/ladder"
	"github.com/veldt/laddergen/pkg/quality"
)

type reachKey struct {
	sig    dictionary.Signature
	length int
	target int
}

// SignatureGraph is built once from a dictionary. After Build returns, every
// map except the reachability memo is read-only and safe for concurrent
// readers; the memo is guarded by its own lock.
type SignatureGraph struct {
	wordsBySig map[dictionary.Signature][]string
	nextBySig  map[dictionary.Signature][]dictionary.Signature
	byLength   map[int][]dictionary.Signature
	starts     []dictionary.Signature

	mu    sync.RWMutex
	reach map[reachKey]bool

	built bool
}

// New returns an empty, unbuilt graph.
func New() *SignatureGraph {
	return &SignatureGraph{
		wordsBySig: make(map[dictionary.Signature][]string),
		nextBySig:  make(map[dictionary.Signature][]dictionary.Signature),
		byLength:   make(map[int][]dictionary.Signature),
		reach:      make(map[reachKey]bool),
	}
}

// Build constructs the graph from dict. Calling it again is a no-op. An
// empty dictionary yields an empty graph and no viable starts, not an
// error.
func (g *SignatureGraph) Build(dict *dictionary.Dictionary) {
	if g.built {
		return
	}
	g.built = true

	// Partition signatures by length; only ladder-rung lengths matter.
	dict.EachSignature(func(sig dictionary.Signature, words []string) {
		n := sig.Len()
		if n < ladder.MinLetterCount || n > ladder.MaxLetterCount {
			return
		}
		ranked := make([]string, len(words))
		copy(ranked, words)
		sort.SliceStable(ranked, func(i, j int) bool {
			pi, pj := quality.LetterPenalty(ranked[i]), quality.LetterPenalty(ranked[j])
			if pi != pj {
				return pi < pj
			}
			return ranked[i] < ranked[j]
		})
		g.wordsBySig[sig] = ranked
		g.byLength[n] = append(g.byLength[n], sig)
	})
	for _, sigs := range g.byLength {
		sort.Slice(sigs, func(i, j int) bool { return sigs[i] < sigs[j] })
	}

	// Edge s -> s' exists iff deleting one letter instance of s' yields s.
	// Signatures are sorted, so equal adjacent letters delete to the same
	// parent and are skipped once.
	edges := 0
	for n := ladder.MinLetterCount + 1; n <= ladder.MaxLetterCount; n++ {
		for _, child := range g.byLength[n] {
			for i := 0; i < child.Len(); i++ {
				if i > 0 && child[i] == child[i-1] {
					continue
				}
				parent := child.Without(i)
				if _, ok := g.wordsBySig[parent]; ok {
					g.nextBySig[parent] = append(g.nextBySig[parent], child)
					edges++
				}
			}
		}
	}
	for _, children := range g.nextBySig {
		sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })
	}

	// Viable starts: every 3-letter signature with a path to length 8.
	for _, sig := range g.byLength[ladder.MinLetterCount] {
		if g.CanReachLength(sig, ladder.MinLetterCount, ladder.MaxLetterCount) {
			g.starts = append(g.starts, sig)
		}
	}

	log.Debugf("Signature graph built: %d signatures, %d edges, %d viable starts",
		len(g.wordsBySig), edges, len(g.starts))
}

// NextSignatures returns the direct children of s, or nil when s has none
// or is unknown.
func (g *SignatureGraph) NextSignatures(s dictionary.Signature) []dictionary.Signature {
	children, ok := g.nextBySig[s]
	if !ok {
		return nil
	}
	out := make([]dictionary.Signature, len(children))
	copy(out, children)
	return out
}

// Words returns the dictionary words sharing s, best-ranked first: ascending
// letter penalty, alphabetical on ties. Unknown signatures yield nil.
func (g *SignatureGraph) Words(s dictionary.Signature) []string {
	words, ok := g.wordsBySig[s]
	if !ok {
		return nil
	}
	out := make([]string, len(words))
	copy(out, words)
	return out
}

// RepresentativeWord returns the best-ranked word for s, or ("", false)
// when s has no words.
func (g *SignatureGraph) RepresentativeWord(s dictionary.Signature) (string, bool) {
	words := g.wordsBySig[s]
	if len(words) == 0 {
		return "", false
	}
	return words[0], true
}

// CanReachLength reports whether s can reach target length from cur via
// graph edges. Results are memoized; already-cached keys are answered under
// a read lock.
func (g *SignatureGraph) CanReachLength(s dictionary.Signature, cur, target int) bool {
	if cur == target {
		return true
	}
	if cur > target {
		return false
	}

	key := reachKey{sig: s, length: cur, target: target}
	g.mu.RLock()
	cached, ok := g.reach[key]
	g.mu.RUnlock()
	if ok {
		return cached
	}

	reachable := false
	for _, child := range g.nextBySig[s] {
		if g.CanReachLength(child, cur+1, target) {
			reachable = true
			break
		}
	}

	g.mu.Lock()
	g.reach[key] = reachable
	g.mu.Unlock()
	return reachable
}

// ViableStarts returns every length-3 signature with a path to length 8,
// sorted for determinism.
func (g *SignatureGraph) ViableStarts() []dictionary.Signature {
	out := make([]dictionary.Signature, len(g.starts))
	copy(out, g.starts)
	return out
}

// DifficultyScore ranks s by how hard its rung tends to be: fewer available
// words and rarer or duplicated letters raise the score. Advisory only; a
// high score never disqualifies a signature.
func (g *SignatureGraph) DifficultyScore(s dictionary.Signature) float64 {
	count := len(g.wordsBySig[s])
	if count < 1 {
		count = 1
	}
	score := 10.0 / float64(count)
	if rep, ok := g.RepresentativeWord(s); ok {
		score += quality.LetterPenalty(rep)
	}
	return score
}

// SignaturesOfLength returns the known signatures of a given length, sorted.
func (g *SignatureGraph) SignaturesOfLength(n int) []dictionary.Signature {
	sigs, ok := g.byLength[n]
	if !ok {
		return nil
	}
	out := make([]dictionary.Signature, len(sigs))
	copy(out, sigs)
	return out
}

// Stats returns basic counters for logging and the IPC info command.
func (g *SignatureGraph) Stats() map[string]int {
	edges := 0
	for _, children := range g.nextBySig {
		edges += len(children)
	}
	return map[string]int{
		"signatures":   len(g.wordsBySig),
		"edges":        edges,
		"viableStarts": len(g.starts),
	}
}
