package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/veldt/laddergen/internal/utils"
	"github.com/veldt/laddergen/pkg/config"
	"github.com/veldt/laddergen/pkg/dictionary"
	"github.com/veldt/laddergen/pkg/graph"
	"github.com/veldt/laddergen/pkg/ladder"
	"github.com/veldt/laddergen/pkg/suggest"
)

// Server handles the IPC for ladder queries over stdin/stdout.
type Server struct {
	dict   *dictionary.Dictionary
	graph  *graph.SignatureGraph
	engine *suggest.Engine
	cfg    *config.Config

	dec *msgpack.Decoder
	enc *msgpack.Encoder
}

// NewServer creates an IPC server bound to stdin/stdout.
func NewServer(dict *dictionary.Dictionary, g *graph.SignatureGraph, engine *suggest.Engine, cfg *config.Config) *Server {
	return NewServerWithIO(dict, g, engine, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server on explicit streams; tests use buffers.
func NewServerWithIO(dict *dictionary.Dictionary, g *graph.SignatureGraph, engine *suggest.Engine, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		dict:   dict,
		graph:  g,
		engine: engine,
		cfg:    cfg,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
	}
}

// Start begins the request loop. Returns nil on clean EOF.
func (s *Server) Start() error {
	log.Debug("Starting ladder IPC server")
	s.send(map[string]string{"status": "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handle(req)
	}
}

// handle dispatches one request. Every branch replies exactly once.
func (s *Server) handle(req Request) {
	start := time.Now()
	switch req.Cmd {
	case "contains":
		s.send(BoolResponse{ID: req.ID, OK: s.dict.Contains(req.Word), TimeTaken: us(start)})
	case "anagrams":
		words := s.dict.FindAnagrams(req.Letters)
		s.send(WordsResponse{ID: req.ID, Words: words, Count: len(words), TimeTaken: us(start)})
	case "valid_words":
		words := s.dict.FindValidWords(req.Letters, req.Length)
		s.send(WordsResponse{ID: req.ID, Words: words, Count: len(words), TimeTaken: us(start)})
	case "words":
		words := s.graph.Words(dictionary.Signature(req.Sig))
		s.send(WordsResponse{ID: req.ID, Words: words, Count: len(words), TimeTaken: us(start)})
	case "representative":
		word, ok := s.graph.RepresentativeWord(dictionary.Signature(req.Sig))
		if !ok {
			s.send(WordsResponse{ID: req.ID, TimeTaken: us(start)})
			return
		}
		s.send(WordsResponse{ID: req.ID, Words: []string{word}, Count: 1, TimeTaken: us(start)})
	case "next_sigs":
		s.send(sigsResponse(req.ID, s.graph.NextSignatures(dictionary.Signature(req.Sig)), start))
	case "viable_starts":
		s.send(sigsResponse(req.ID, s.graph.ViableStarts(), start))
	case "reach":
		ok := s.graph.CanReachLength(dictionary.Signature(req.Sig), req.Length, req.Target)
		s.send(BoolResponse{ID: req.ID, OK: ok, TimeTaken: us(start)})
	case "suggest":
		s.handleSuggest(req, start)
	case "chain":
		s.handleChain(req, start)
	case "validate_chain":
		s.handleValidate(req)
	case "stats":
		stats := s.dict.Stats()
		for k, v := range s.graph.Stats() {
			stats[k] = v
		}
		s.send(StatsResponse{ID: req.ID, Stats: stats})
	case "health":
		s.send(map[string]string{"id": req.ID, "status": "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown command: %s", req.Cmd), 400)
	}
}

func (s *Server) handleSuggest(req Request, start time.Time) {
	// The limit guards the letter multiset, not the raw bytes, so strip
	// separators and case before measuring.
	letters := utils.StripNonLetters(req.Letters)
	if letters == "" {
		s.sendError(req.ID, "Missing 'lt' parameter", 400)
		return
	}
	if len(letters) > s.cfg.Server.MaxLetters {
		s.sendError(req.ID, fmt.Sprintf("Letter set exceeds maximum length of %d", s.cfg.Server.MaxLetters), 400)
		return
	}
	target := req.Target
	if target == 0 {
		target = len(letters) + 1
	}
	limit := req.Limit
	if limit < 1 || limit > s.cfg.Server.MaxSuggestions {
		limit = s.cfg.Server.DefaultLimit
	}

	suggestions := s.engine.Suggestions(letters, target)
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	entries := make([]SuggestionEntry, len(suggestions))
	for i, sg := range suggestions {
		entries[i] = SuggestionEntry{
			Letter:     sg.Letter,
			Letters:    sg.ResultingLetters,
			Words:      sg.ValidWords,
			Viability:  sg.ViabilityScore,
			VowelRatio: sg.VowelRatio,
		}
	}
	s.send(SuggestResponse{ID: req.ID, Suggestions: entries, Count: len(entries), TimeTaken: us(start)})
}

func (s *Server) handleChain(req Request, start time.Time) {
	if req.Word == "" {
		s.sendError(req.ID, "Missing 'w' parameter", 400)
		return
	}
	var levels []ladder.Level
	var ok bool
	if req.Exhaustive {
		levels, ok = s.engine.BuildChainExhaustive(req.Word)
	} else {
		levels, ok = s.engine.BuildChain(req.Word)
	}
	if !ok {
		// A miss is data, not an error: the client offers another start.
		s.send(ChainResponse{ID: req.ID, OK: false, TimeTaken: us(start)})
		return
	}
	chain := &ladder.Chain{
		Name:       levels[0].StartingLetters,
		Difficulty: s.engine.ChainDifficulty(levels),
		Levels:     levels,
	}
	s.send(ChainResponse{ID: req.ID, OK: true, Chain: chain, TimeTaken: us(start)})
}

func (s *Server) handleValidate(req Request) {
	if req.Chain == nil {
		s.sendError(req.ID, "Missing 'chain' parameter", 400)
		return
	}
	problems := req.Chain.ValidationErrors()
	s.send(ValidateResponse{ID: req.ID, Complete: len(problems) == 0, Problems: problems})
}

func sigsResponse(id string, sigs []dictionary.Signature, start time.Time) SigsResponse {
	out := make([]string, len(sigs))
	for i, sig := range sigs {
		out[i] = string(sig)
	}
	return SigsResponse{ID: id, Sigs: out, Count: len(out), TimeTaken: us(start)}
}

func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorFrame{ID: id, Error: message, Code: code})
}

// us returns elapsed microseconds since start.
func us(start time.Time) int64 {
	return time.Since(start).Microseconds()
}
