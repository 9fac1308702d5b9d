/*
Package server implements msgpack IPC for the anagram-ladder engine.

The protocol is a request/response stream over stdin/stdout using binary
msgpack encoding. Each request carries an ID, a command name, and the
arguments that command needs; each response echoes the ID so clients can
pipeline requests.

A membership query:

	{"id": "q1", "cmd": "contains", "w": "crate"}

An anagram query and its response:

	{"id": "q2", "cmd": "anagrams", "lt": "act"}
	{"id": "q2", "words": ["ACT", "CAT"], "c": 2, "t": 38}

Letter suggestions for a ladder in progress:

	{"id": "q3", "cmd": "suggest", "lt": "CAT", "tgt": 4, "l": 5}

Chain construction, greedy or reachability-filtered:

	{"id": "q4", "cmd": "chain", "w": "CAT"}
	{"id": "q5", "cmd": "chain", "w": "CAT", "ex": true}

Reachability and graph queries operate on signatures:

	{"id": "q6", "cmd": "reach", "sig": "ACT", "len": 3, "tgt": 8}
	{"id": "q7", "cmd": "next_sigs", "sig": "ACT"}

Every command is synchronous and side-effect-free apart from reachability
cache fills. Search misses (no anagrams, no viable chain) come back as
empty result sets with ok=false where relevant, never as error frames;
error frames are reserved for malformed requests and unknown commands.
*/
package server

import "github.com/veldt/laddergen/pkg/ladder"

// Request is the single envelope for all commands. Unused fields stay at
// their zero value and are omitted on the wire.
type Request struct {
	ID         string        `msgpack:"id"`
	Cmd        string        `msgpack:"cmd"`
	Word       string        `msgpack:"w,omitempty"`
	Letters    string        `msgpack:"lt,omitempty"`
	Sig        string        `msgpack:"sig,omitempty"`
	Length     int           `msgpack:"len,omitempty"`
	Target     int           `msgpack:"tgt,omitempty"`
	Limit      int           `msgpack:"l,omitempty"`
	Exhaustive bool          `msgpack:"ex,omitempty"`
	Chain      *ladder.Chain `msgpack:"chain,omitempty"`
}

// BoolResponse answers contains and reach.
type BoolResponse struct {
	ID        string `msgpack:"id"`
	OK        bool   `msgpack:"ok"`
	TimeTaken int64  `msgpack:"t"`
}

// WordsResponse answers anagrams, valid_words and words.
type WordsResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"words"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// SigsResponse answers next_sigs and viable_starts.
type SigsResponse struct {
	ID        string   `msgpack:"id"`
	Sigs      []string `msgpack:"sigs"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// SuggestionEntry is one ranked candidate letter on the wire.
type SuggestionEntry struct {
	Letter     string   `msgpack:"letter"`
	Letters    string   `msgpack:"lt"`
	Words      []string `msgpack:"words"`
	Viability  float64  `msgpack:"v"`
	VowelRatio float64  `msgpack:"vr"`
}

// SuggestResponse answers suggest.
type SuggestResponse struct {
	ID          string            `msgpack:"id"`
	Suggestions []SuggestionEntry `msgpack:"s"`
	Count       int               `msgpack:"c"`
	TimeTaken   int64             `msgpack:"t"`
}

// ChainResponse answers chain. OK is false when no viable chain exists
// from the requested start, which is a normal outcome.
type ChainResponse struct {
	ID        string        `msgpack:"id"`
	OK        bool          `msgpack:"ok"`
	Chain     *ladder.Chain `msgpack:"chain,omitempty"`
	TimeTaken int64         `msgpack:"t"`
}

// ValidateResponse answers validate_chain with every violated invariant.
type ValidateResponse struct {
	ID       string   `msgpack:"id"`
	Complete bool     `msgpack:"complete"`
	Problems []string `msgpack:"problems,omitempty"`
}

// StatsResponse answers stats.
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// ErrorFrame reports a malformed or unknown request.
type ErrorFrame struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
