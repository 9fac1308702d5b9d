// Copyright 2026 The Laddergen Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the anagram-ladder IPC server and authoring CLI.

Laddergen builds and validates anagram ladders: six-rung word progressions
from 3 to 8 letters where each rung adds one letter and rearranges the
result into a new dictionary word. The engine loads a newline-delimited
word list once, precomputes the signature graph, and then answers
membership, anagram, reachability, suggestion and chain queries.

# Usage

Start the msgpack IPC server with default settings:

	laddergen -wordlist /path/to/words.txt

Run the interactive authoring CLI:

	laddergen -wordlist words.txt -c

Build one chain and export it as TOML:

	laddergen -wordlist words.txt -start cat -export chain.toml

# Configuration

Runtime tuning is managed through a TOML file holding the suggestion
policy and server limits:

	[suggest]
	viability_threshold = 0.4
	lookahead_sample = 5
	probe_letters = "ESRTAIN"

	[server]
	max_letters = 8
	default_limit = 10

The config file is created with defaults if it does not exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests carry
an id, a command, and command arguments; responses echo the id and include
microsecond timing. See pkg/server for the full command set.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/veldt/laddergen/internal/cli"
	"github.com/veldt/laddergen/pkg/config"
	"github.com/veldt/laddergen/pkg/dictionary"
	"github.com/veldt/laddergen/pkg/graph"
	"github.com/veldt/laddergen/pkg/ladder"
	"github.com/veldt/laddergen/pkg/server"
	"github.com/veldt/laddergen/pkg/suggest"
)

const (
	Version = "0.3.0"
	AppName = "laddergen"
	gh      = "https://github.com/veldt/laddergen"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires the dictionary, graph, engine and chosen front end together.
// It does not implement any engine logic itself.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	wordList := flag.String("wordlist", "", "Path to the newline-delimited word list")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run interactive CLI -- useful for authoring and debugging")
	limit := flag.Int("limit", 10, "Number of suggestions to show in CLI mode")
	startWord := flag.String("start", "", "Build a single chain from this 3-letter word and exit")
	exhaustive := flag.Bool("exhaustive", false, "Use the reachability-filtered builder for -start")
	exportPath := flag.String("export", "", "Write the -start chain to this TOML file")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, _ := config.LoadConfigWithPriority(*configPath)
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	listPath := *wordList
	if listPath == "" {
		listPath = appConfig.Dict.WordList
	}

	dict := dictionary.New()
	if err := dict.LoadFile(listPath); err != nil {
		log.Fatalf("Failed to load word list: %v", err)
	}
	log.Debugf("Dictionary ready: %v", dict.Stats())

	g := graph.New()
	g.Build(dict)
	log.Debugf("Graph ready: %v", g.Stats())

	engine := suggest.NewEngine(dict, g, appConfig.Policy())

	if *startWord != "" {
		runChainOnce(engine, *startWord, *exhaustive, *exportPath)
		return
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(dict, g, engine, *limit)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(dict, g, engine, appConfig)
	showStartupInfo(listPath, dict.Stats()["totalWords"])
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// runChainOnce is the export-tooling path: build one chain, print it, and
// optionally persist it as TOML.
func runChainOnce(engine *suggest.Engine, startWord string, exhaustive bool, exportPath string) {
	var levels []ladder.Level
	var ok bool
	if exhaustive {
		levels, ok = engine.BuildChainExhaustive(startWord)
	} else {
		levels, ok = engine.BuildChain(startWord)
	}
	if !ok {
		log.SetLevel(log.InfoLevel)
		log.Warnf("No viable chain from %q", startWord)
		os.Exit(1)
	}

	chain := &ladder.Chain{
		Name:        levels[0].StartingLetters,
		Description: fmt.Sprintf("Ladder starting from %s", levels[0].StartingLetters),
		Difficulty:  engine.ChainDifficulty(levels),
		Levels:      levels,
	}

	log.SetLevel(log.InfoLevel)
	for _, lvl := range chain.Levels {
		if lvl.StartingLetters != "" {
			log.Infof("%d  %s", lvl.LetterCount, lvl.SuggestedWord)
		} else {
			log.Infof("%d  +%s -> %s", lvl.LetterCount, lvl.AddedLetter, lvl.SuggestedWord)
		}
	}
	if exportPath != "" {
		if err := exportChain(chain, exportPath); err != nil {
			log.Fatalf("Failed to export chain: %v", err)
		}
		log.Infof("Chain written to %s", exportPath)
	}
}

// printVersion renders the version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ laddergen ] Builds and validates anagram ladders")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(listPath string, totalWords int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" laddergen ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("word list: ( %s )", listPath)
	log.Infof("words loaded: %d", totalWords)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
