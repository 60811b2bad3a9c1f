// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Classification: per-letter judgement of a guess (absent/present/correct).
//   - Tile, GuessResult: the scored form of one guess.
//   - Status: session lifecycle (playing → won/lost).

package game

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/go-term/internal/words"
)

// Classification is the evaluation of a single guessed letter.
// The values are ordered: Absent < Present < Correct. Unseen is the zero
// value and only appears in a KeyboardState for letters never guessed.
type Classification uint8

const (
	Unseen  Classification = iota // never guessed (keyboard only)
	Absent                        // letter not available in the secret
	Present                       // letter in the secret, different position
	Correct                       // letter in the secret at this position
)

func (c Classification) String() string {
	switch c {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	default:
		return "unseen"
	}
}

// MarshalText encodes the classification as its lowercase name.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a name produced by MarshalText.
func (c *Classification) UnmarshalText(b []byte) error {
	switch string(b) {
	case "unseen":
		*c = Unseen
	case "absent":
		*c = Absent
	case "present":
		*c = Present
	case "correct":
		*c = Correct
	default:
		return fmt.Errorf("game: unknown classification %q", b)
	}
	return nil
}

// Tile is one scored letter of a guess.
type Tile struct {
	Letter byte
	Class  Classification
}

// GuessResult is a scored guess: one tile per position, plus whether every
// position was Correct.
type GuessResult struct {
	Word  string
	Tiles [words.WordLength]Tile
	Win   bool
}

// Marks returns the classifications in position order.
func (r GuessResult) Marks() []Classification {
	out := make([]Classification, len(r.Tiles))
	for i, t := range r.Tiles {
		out[i] = t.Class
	}
	return out
}

// Status is the lifecycle state of a Session.
type Status uint8

const (
	InProgress Status = iota
	Won
	Lost
)

// String reports the coarse state name used on the wire ("playing"/"won"/"lost").
func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

// Terminal reports whether no further guesses are accepted.
func (s Status) Terminal() bool { return s == Won || s == Lost }
