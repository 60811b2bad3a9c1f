// Package render draws the board and keyboard after every turn.
//
// Two renderers are provided: ANSI repaints the whole screen with coloured
// tiles and is used when stdout is a terminal; Plain writes one text line
// per accepted guess and suits pipes, logs and tests.
package render

import (
	"io"

	"github.com/robalobadob/wordle/apps/go-term/internal/game"
)

// Renderer receives the game state from the play loop.
type Renderer interface {
	// Draw shows the accepted guesses, empty rows up to maxAttempts, and the keyboard.
	Draw(board []game.GuessResult, maxAttempts int, kb *game.KeyboardState)
	// Prompt shows the partially typed guess.
	Prompt(partial string)
	// Notice shows a transient message such as "not in word list".
	Notice(msg string)
}

// qwerty rows with their left indentation.
var keyboardRows = []struct {
	indent string
	keys   string
}{
	{"     ", "qwertyuiop"},
	{"      ", "asdfghjkl"},
	{"        ", "zxcvbnm"},
}

// New returns an ANSI renderer when colour is true and a Plain one otherwise.
func New(w io.Writer, colour bool) Renderer {
	if colour {
		return NewANSI(w)
	}
	return NewPlain(w)
}
