// Package cli handles cmd line input for testing ladder construction and
// letter suggestions interactively.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/veldt/laddergen/internal/logger"
	"github.com/veldt/laddergen/internal/utils"
	"github.com/veldt/laddergen/pkg/dictionary"
	"github.com/veldt/laddergen/pkg/graph"
	"github.com/veldt/laddergen/pkg/ladder"
	"github.com/veldt/laddergen/pkg/suggest"
)

// InputHandler processes user input from stdin. Plain letters get scored
// next-letter suggestions; colon commands drive chain construction and
// dictionary checks.
type InputHandler struct {
	dict         *dictionary.Dictionary
	graph        *graph.SignatureGraph
	engine       *suggest.Engine
	out          *log.Logger
	suggestLimit int
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler.
func NewInputHandler(dict *dictionary.Dictionary, g *graph.SignatureGraph, engine *suggest.Engine, limit int) *InputHandler {
	return &InputHandler{
		dict:         dict,
		graph:        g,
		engine:       engine,
		out:          logger.NewWithConfig("", log.GetLevel(), false, false, log.TextFormatter),
		suggestLimit: limit,
	}
}

// Start begins the interface loop. It terminates when stdin closes.
func (h *InputHandler) Start() error {
	h.out.Print("laddergen CLI")
	h.out.Print("type letters for suggestions, :chain WORD / :xchain WORD to build a ladder,")
	h.out.Print(":anagrams LETTERS, :check WORD, :starts (Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	if strings.HasPrefix(line, ":") {
		h.handleCommand(line)
		return
	}

	letters := utils.StripNonLetters(line)
	if letters == "" {
		h.out.Errorf("No letters in input: %q", line)
		return
	}
	if len(letters) >= ladder.MaxLetterCount {
		h.out.Errorf("Letter set too long: %q (max %d before adding)", letters, ladder.MaxLetterCount-1)
		return
	}

	start := time.Now()
	suggestions := h.engine.Suggestions(letters, len(letters)+1)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for letters '%s'", elapsed, letters)

	if len(suggestions) == 0 {
		h.out.Warnf("No playable letters from '%s'", letters)
		return
	}
	if len(suggestions) > h.suggestLimit {
		suggestions = suggestions[:h.suggestLimit]
	}

	h.out.Printf("Found %d candidate letters for '%s':", len(suggestions), letters)
	for i, s := range suggestions {
		clLetter := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Letter)
		h.out.Printf("%2d. +%s  score %.2f  vowels %.2f  words: %s",
			i+1, clLetter, s.ViabilityScore, s.VowelRatio, strings.Join(s.ValidWords, ", "))
	}
}

func (h *InputHandler) handleCommand(line string) {
	fields := strings.Fields(line)
	cmd := fields[0]
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case ":chain", ":xchain":
		if arg == "" {
			h.out.Errorf("usage: %s WORD", cmd)
			return
		}
		start := time.Now()
		var levels []ladder.Level
		var ok bool
		if cmd == ":xchain" {
			levels, ok = h.engine.BuildChainExhaustive(arg)
		} else {
			levels, ok = h.engine.BuildChain(arg)
		}
		if !ok {
			h.out.Warnf("No viable chain from '%s'", strings.ToUpper(arg))
			return
		}
		h.out.Printf("Chain from '%s' (%v):", strings.ToUpper(arg), time.Since(start))
		for _, lvl := range levels {
			if lvl.StartingLetters != "" {
				h.out.Printf("  %d  %s", lvl.LetterCount, lvl.SuggestedWord)
			} else {
				h.out.Printf("  %d  +%s -> %s", lvl.LetterCount, lvl.AddedLetter, lvl.SuggestedWord)
			}
		}
	case ":anagrams":
		words := h.dict.FindAnagrams(arg)
		if len(words) == 0 {
			h.out.Warnf("No anagrams of '%s'", arg)
			return
		}
		h.out.Printf("%s: %s", dictionary.Sig(arg), strings.Join(words, ", "))
	case ":check":
		h.out.Printf("%s in dictionary: %v", strings.ToUpper(arg), h.dict.Contains(arg))
	case ":starts":
		starts := h.graph.ViableStarts()
		h.out.Printf("%d viable 3-letter starts", len(starts))
		for i, sig := range starts {
			if i >= h.suggestLimit {
				h.out.Printf("  ... and %d more", len(starts)-i)
				break
			}
			rep, _ := h.graph.RepresentativeWord(sig)
			h.out.Printf("  %s (%s)  difficulty %.2f", sig, rep, h.graph.DifficultyScore(sig))
		}
	default:
		h.out.Errorf("Unknown command: %s", cmd)
	}
}
