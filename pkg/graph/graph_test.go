package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt/laddergen/pkg/dictionary"
	"github.com/veldt/laddergen/pkg/graph"
)

// buildFixture loads a dictionary with one complete CAT..RETRACES ladder and
// a dead-end start (DOG), then builds the graph over it.
func buildFixture(t *testing.T) (*dictionary.Dictionary, *graph.SignatureGraph) {
	t.Helper()
	words := []string{
		"CAT", "ACT", "DOG",
		"CART",
		"CRATE", "TRACE", "REACT",
		"TRACES",
		"CRATERS",
		"RETRACES",
	}
	dict := dictionary.New()
	require.NoError(t, dict.Load(strings.NewReader(strings.Join(words, "\n"))))
	g := graph.New()
	g.Build(dict)
	return dict, g
}

// TestBuild_EmptyDictionary verifies an empty dictionary yields an empty
// graph rather than an error.
func TestBuild_EmptyDictionary(t *testing.T) {
	g := graph.New()
	g.Build(dictionary.New())
	assert.Empty(t, g.ViableStarts())
	assert.Equal(t, 0, g.Stats()["signatures"])
}

// TestNextSignatures verifies edges connect adjacent lengths only and are
// deduplicated.
func TestNextSignatures(t *testing.T) {
	_, g := buildFixture(t)

	next := g.NextSignatures(dictionary.Sig("CAT"))
	assert.Equal(t, []dictionary.Signature{"ACRT"}, next)

	for _, child := range next {
		assert.Equal(t, dictionary.Sig("CAT").Len()+1, child.Len())
	}

	assert.Nil(t, g.NextSignatures("XYZ"))
	assert.Nil(t, g.NextSignatures(dictionary.Sig("DOG")))
}

// TestWords verifies word ordering and the unknown-signature behavior.
func TestWords(t *testing.T) {
	_, g := buildFixture(t)

	// Anagrams share a letter multiset, so penalties tie and order is
	// alphabetical.
	assert.Equal(t, []string{"CRATE", "REACT", "TRACE"}, g.Words(dictionary.Sig("TRACE")))
	assert.Equal(t, []string{"ACT", "CAT"}, g.Words(dictionary.Sig("CAT")))
	assert.Nil(t, g.Words("QQQ"))
}

func TestRepresentativeWord(t *testing.T) {
	_, g := buildFixture(t)

	rep, ok := g.RepresentativeWord(dictionary.Sig("TRACE"))
	assert.True(t, ok)
	assert.Equal(t, "CRATE", rep)

	_, ok = g.RepresentativeWord("QQQ")
	assert.False(t, ok)
}

// TestCanReachLength exercises the recursive definition: reachability at a
// length equals reachability of some child at length+1.
func TestCanReachLength(t *testing.T) {
	_, g := buildFixture(t)

	catSig := dictionary.Sig("CAT")
	dogSig := dictionary.Sig("DOG")

	// Reaching your own length is trivially true.
	assert.True(t, g.CanReachLength(catSig, 3, 3))
	assert.True(t, g.CanReachLength(dogSig, 3, 3))

	assert.True(t, g.CanReachLength(catSig, 3, 8))
	assert.False(t, g.CanReachLength(dogSig, 3, 4))
	assert.False(t, g.CanReachLength(dogSig, 3, 8))

	// The recursion must hold exactly at every intermediate length.
	sig := catSig
	for length := 3; length < 8; length++ {
		require.True(t, g.CanReachLength(sig, length, 8))
		children := g.NextSignatures(sig)
		require.NotEmpty(t, children)
		found := false
		for _, child := range children {
			if g.CanReachLength(child, length+1, 8) {
				sig = child
				found = true
				break
			}
		}
		require.True(t, found, "no reachable child at length %d", length)
	}
	assert.True(t, g.CanReachLength(sig, 8, 8))

	// Memoized answers stay stable on repeat queries.
	assert.True(t, g.CanReachLength(catSig, 3, 8))
	assert.False(t, g.CanReachLength(dogSig, 3, 8))
}

// TestViableStarts verifies exactly the length-3 signatures with a full
// path to length 8 are listed.
func TestViableStarts(t *testing.T) {
	_, g := buildFixture(t)

	starts := g.ViableStarts()
	assert.Equal(t, []dictionary.Signature{"ACT"}, starts)
	assert.NotContains(t, starts, dictionary.Sig("DOG"))
}

func TestDifficultyScore(t *testing.T) {
	_, g := buildFixture(t)

	// Three anagrams, penalty 0: 10/3.
	assert.InDelta(t, 10.0/3.0, g.DifficultyScore(dictionary.Sig("TRACE")), 1e-9)
	// Single word, penalty 0: 10.
	assert.InDelta(t, 10.0, g.DifficultyScore(dictionary.Sig("DOG")), 1e-9)
	// Unknown signatures rank as hard but never fail.
	assert.InDelta(t, 10.0, g.DifficultyScore("QQQ"), 1e-9)
}

func TestSignaturesOfLength(t *testing.T) {
	_, g := buildFixture(t)

	assert.Equal(t, []dictionary.Signature{"ACT", "DGO"}, g.SignaturesOfLength(3))
	assert.Nil(t, g.SignaturesOfLength(2))
}
