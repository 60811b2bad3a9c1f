package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordle/apps/go-term/internal/game"
)

// Plain prints the latest guess and the keyboard as text:
// [x] correct, (x) present, " x " absent. Absent keys print as " - ".
type Plain struct {
	w io.Writer
}

// NewPlain writes to w.
func NewPlain(w io.Writer) *Plain { return &Plain{w: w} }

func tile(letter byte, c game.Classification) string {
	switch c {
	case game.Correct:
		return "[" + string(letter) + "]"
	case game.Present:
		return "(" + string(letter) + ")"
	default:
		return " " + string(letter) + " "
	}
}

// FormatGuess renders one scored guess in the plain notation.
func FormatGuess(r game.GuessResult) string {
	var b strings.Builder
	for _, t := range r.Tiles {
		b.WriteString(tile(t.Letter, t.Class))
	}
	return b.String()
}

func (p *Plain) Draw(board []game.GuessResult, maxAttempts int, kb *game.KeyboardState) {
	if len(board) == 0 {
		return
	}
	fmt.Fprintf(p.w, "%d/%d %s\n", len(board), maxAttempts, FormatGuess(board[len(board)-1]))
	for _, r := range keyboardRows {
		var b strings.Builder
		for i := 0; i < len(r.keys); i++ {
			k := r.keys[i]
			if c := kb.StatusOf(k); c == game.Absent {
				b.WriteString(" - ")
			} else {
				b.WriteString(tile(k, c))
			}
		}
		fmt.Fprintf(p.w, "    %s\n", b.String())
	}
}

// Prompt is a no-op: the terminal echoes line input itself.
func (p *Plain) Prompt(string) {}

func (p *Plain) Notice(msg string) { fmt.Fprintln(p.w, msg) }
