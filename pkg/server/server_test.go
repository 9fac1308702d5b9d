package server

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/veldt/laddergen/pkg/config"
	"github.com/veldt/laddergen/pkg/dictionary"
	"github.com/veldt/laddergen/pkg/graph"
	"github.com/veldt/laddergen/pkg/ladder"
	"github.com/veldt/laddergen/pkg/suggest"
)

// runServer feeds encoded requests through a buffer-backed server and
// returns a decoder over everything it wrote.
func runServer(t *testing.T, requests ...Request) *msgpack.Decoder {
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
	if err := dict.Load(strings.NewReader(strings.Join(words, "\n"))); err != nil {
		t.Fatalf("fixture load: %v", err)
	}
	g := graph.New()
	g.Build(dict)
	engine := suggest.NewEngine(dict, g, suggest.DefaultPolicy())

	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range requests {
		if err := enc.Encode(&req); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	srv := NewServerWithIO(dict, g, engine, config.DefaultConfig(), &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("server returned error: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready map[string]string
	if err := dec.Decode(&ready); err != nil {
		t.Fatalf("decode ready frame: %v", err)
	}
	if ready["status"] != "ready" {
		t.Fatalf("ready frame = %v", ready)
	}
	return dec
}

func TestServerContains(t *testing.T) {
	dec := runServer(t,
		Request{ID: "1", Cmd: "contains", Word: "crate"},
		Request{ID: "2", Cmd: "contains", Word: "ZOOT"},
	)

	var resp BoolResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.OK || resp.ID != "1" {
		t.Errorf("contains(crate) = %+v", resp)
	}
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.OK {
		t.Errorf("contains(ZOOT) = %+v", resp)
	}
}

func TestServerAnagrams(t *testing.T) {
	dec := runServer(t, Request{ID: "1", Cmd: "anagrams", Letters: "TCA"})

	var resp WordsResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 || resp.Words[0] != "ACT" || resp.Words[1] != "CAT" {
		t.Errorf("anagrams(TCA) = %+v", resp)
	}
}

func TestServerReachAndStarts(t *testing.T) {
	dec := runServer(t,
		Request{ID: "1", Cmd: "reach", Sig: "ACT", Length: 3, Target: 8},
		Request{ID: "2", Cmd: "reach", Sig: "DGO", Length: 3, Target: 8},
		Request{ID: "3", Cmd: "viable_starts"},
	)

	var reach BoolResponse
	if err := dec.Decode(&reach); err != nil {
		t.Fatal(err)
	}
	if !reach.OK {
		t.Error("ACT must reach length 8")
	}
	if err := dec.Decode(&reach); err != nil {
		t.Fatal(err)
	}
	if reach.OK {
		t.Error("DGO must not reach length 8")
	}

	var starts SigsResponse
	if err := dec.Decode(&starts); err != nil {
		t.Fatal(err)
	}
	if starts.Count != 1 || starts.Sigs[0] != "ACT" {
		t.Errorf("viable_starts = %+v", starts)
	}
}

func TestServerSuggestAndChain(t *testing.T) {
	dec := runServer(t,
		Request{ID: "1", Cmd: "suggest", Letters: "CAT", Target: 4},
		Request{ID: "2", Cmd: "chain", Word: "CAT"},
		Request{ID: "3", Cmd: "chain", Word: "DOG"},
	)

	var sugg SuggestResponse
	if err := dec.Decode(&sugg); err != nil {
		t.Fatal(err)
	}
	if sugg.Count == 0 {
		t.Fatal("expected suggestions for CAT")
	}
	if sugg.Suggestions[0].Letter != "R" {
		t.Errorf("top suggestion = %+v", sugg.Suggestions[0])
	}

	var chain ChainResponse
	if err := dec.Decode(&chain); err != nil {
		t.Fatal(err)
	}
	if !chain.OK || chain.Chain == nil || len(chain.Chain.Levels) != ladder.ChainLength {
		t.Errorf("chain(CAT) = %+v", chain)
	}
	if !chain.Chain.IsComplete() {
		t.Errorf("served chain fails validation: %v", chain.Chain.ValidationErrors())
	}

	// A miss is a normal response, not an error frame.
	if err := dec.Decode(&chain); err != nil {
		t.Fatal(err)
	}
	if chain.OK {
		t.Error("DOG has no viable chain")
	}
}

// The max-letters guard applies to the stripped letter set, so separators
// and case never count against the limit.
func TestServerSuggestNormalizesLetters(t *testing.T) {
	dec := runServer(t,
		Request{ID: "1", Cmd: "suggest", Letters: "c a t"},
		Request{ID: "2", Cmd: "suggest", Letters: "CRATERS X Z"},
		Request{ID: "3", Cmd: "suggest", Letters: " - "},
	)

	var sugg SuggestResponse
	if err := dec.Decode(&sugg); err != nil {
		t.Fatal(err)
	}
	if sugg.Count == 0 || sugg.Suggestions[0].Letter != "R" {
		t.Errorf("spaced letters must suggest like CAT, got %+v", sugg)
	}

	// Nine letters after stripping, over the default limit of eight.
	var frame ErrorFrame
	if err := dec.Decode(&frame); err != nil {
		t.Fatal(err)
	}
	if frame.Code != 400 {
		t.Errorf("oversized letter set = %+v", frame)
	}

	// Nothing left after stripping counts as a missing parameter.
	if err := dec.Decode(&frame); err != nil {
		t.Fatal(err)
	}
	if frame.Code != 400 {
		t.Errorf("empty letter set = %+v", frame)
	}
}

func TestServerValidateChain(t *testing.T) {
	bad := &ladder.Chain{
		Name:       "broken",
		Difficulty: ladder.Easy,
		Levels: []ladder.Level{
			{LetterCount: 3, StartingLetters: "CAT"},
			{LetterCount: 4, AddedLetter: "R"},
		},
	}
	dec := runServer(t, Request{ID: "1", Cmd: "validate_chain", Chain: bad})

	var resp ValidateResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Complete || len(resp.Problems) == 0 {
		t.Errorf("validate_chain = %+v", resp)
	}
}

func TestServerUnknownCommand(t *testing.T) {
	dec := runServer(t, Request{ID: "1", Cmd: "frobnicate"})

	var frame ErrorFrame
	if err := dec.Decode(&frame); err != nil {
		t.Fatal(err)
	}
	if frame.Code != 400 || frame.ID != "1" {
		t.Errorf("error frame = %+v", frame)
	}
}
