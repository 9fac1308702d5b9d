// Package ladder defines the chain and level value types shared between the
// suggestion engine, the IPC server and export tooling, plus the structural
// validation over them. The package does no file I/O itself; the struct
// tags define the persistence shape for whoever does.
package ladder

import (
	"fmt"
	"strings"
)

const (
	// ChainLength is the number of rungs in a full ladder.
	ChainLength = 6
	// MinLetterCount is the letter count of the first rung.
	MinLetterCount = 3
	// MaxLetterCount is the letter count of the final rung.
	MaxLetterCount = 8
)

// Difficulty is the advisory difficulty label carried by a chain.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func (d Difficulty) valid() bool {
	return d == Easy || d == Medium || d == Hard
}

// Level is one rung of a ladder. The first rung carries StartingLetters;
// every later rung carries the single AddedLetter. SuggestedWord is
// advisory only and never enforced.
type Level struct {
	LetterCount     int    `toml:"letter_count" msgpack:"n"`
	StartingLetters string `toml:"starting_letters,omitempty" msgpack:"start,omitempty"`
	AddedLetter     string `toml:"added_letter,omitempty" msgpack:"add,omitempty"`
	SuggestedWord   string `toml:"suggested_word,omitempty" msgpack:"word,omitempty"`
}

// Chain is a full six-rung ladder from 3 to 8 letters.
type Chain struct {
	Name        string     `toml:"name" msgpack:"name"`
	Description string     `toml:"description" msgpack:"desc"`
	Difficulty  Difficulty `toml:"difficulty" msgpack:"diff"`
	Levels      []Level    `toml:"levels" msgpack:"levels"`
}

// IsComplete reports whether every structural invariant holds.
func (c *Chain) IsComplete() bool {
	return len(c.ValidationErrors()) == 0
}

// ValidationErrors returns a human-readable entry for every violated
// invariant. Malformed chains are reported, never returned as an error;
// callers decide whether to block on them.
func (c *Chain) ValidationErrors() []string {
	var errs []string

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "chain name is empty")
	}
	if !c.Difficulty.valid() {
		errs = append(errs, fmt.Sprintf("difficulty %q is not one of easy, medium, hard", c.Difficulty))
	}
	if len(c.Levels) != ChainLength {
		errs = append(errs, fmt.Sprintf("chain has %d levels, want exactly %d", len(c.Levels), ChainLength))
	}

	for i, lvl := range c.Levels {
		wantCount := MinLetterCount + i
		if i < ChainLength && lvl.LetterCount != wantCount {
			errs = append(errs, fmt.Sprintf("level %d has letter count %d, want %d", i+1, lvl.LetterCount, wantCount))
		}
		if i == 0 {
			if len(lvl.StartingLetters) != MinLetterCount {
				errs = append(errs, fmt.Sprintf("level 1 starting letters %q must be exactly %d letters", lvl.StartingLetters, MinLetterCount))
			}
			if lvl.AddedLetter != "" {
				errs = append(errs, "level 1 must not carry an added letter")
			}
		} else {
			if len(lvl.AddedLetter) != 1 {
				errs = append(errs, fmt.Sprintf("level %d added letter %q must be a single letter", i+1, lvl.AddedLetter))
			}
			if lvl.StartingLetters != "" {
				errs = append(errs, fmt.Sprintf("level %d must not carry starting letters", i+1))
			}
		}
	}
	return errs
}
