package render

import (
	"bytes"
	"io"
	"strings"

	"github.com/robalobadob/wordle/apps/go-term/internal/game"
	"github.com/robalobadob/wordle/apps/go-term/internal/words"
)

const (
	csi        = "\x1b["
	clearHome  = csi + "H" + csi + "2J"
	reset      = csi + "0m"
	bgCorrect  = csi + "102;30m"
	bgPresent  = csi + "103;30m"
	bgAbsent   = csi + "100;30m"
	boardInset = "           "
	crlf       = "\r\n" // raw mode disables output post-processing
)

// ANSI repaints the full screen on every change.
type ANSI struct {
	w       io.Writer
	board   []game.GuessResult
	rows    int
	kb      *game.KeyboardState
	partial string
	notice  string
}

// NewANSI writes escape sequences to w. Wrap w with go-colorable on Windows.
func NewANSI(w io.Writer) *ANSI {
	return &ANSI{w: w, rows: game.DefaultMaxAttempts, kb: game.NewKeyboardState()}
}

func (a *ANSI) Draw(board []game.GuessResult, maxAttempts int, kb *game.KeyboardState) {
	a.board, a.rows, a.kb = board, maxAttempts, kb
	a.partial, a.notice = "", ""
	a.paint()
}

func (a *ANSI) Prompt(partial string) {
	a.partial = partial
	a.notice = ""
	a.paint()
}

// Notice also clears the typed word: a rejected guess is discarded.
func (a *ANSI) Notice(msg string) {
	a.notice = msg
	a.partial = ""
	a.paint()
}

func colourOf(c game.Classification) string {
	switch c {
	case game.Correct:
		return bgCorrect
	case game.Present:
		return bgPresent
	case game.Absent:
		return bgAbsent
	default:
		return ""
	}
}

func (a *ANSI) paint() {
	var b bytes.Buffer
	b.WriteString(clearHome)

	for row := 0; row < a.rows; row++ {
		b.WriteString(boardInset)
		switch {
		case row < len(a.board):
			for _, t := range a.board[row].Tiles {
				b.WriteString(colourOf(t.Class))
				b.WriteByte(t.Letter)
			}
			b.WriteString(reset)
		case row == len(a.board):
			b.WriteString(a.partial)
			b.WriteString(strings.Repeat(".", words.WordLength-len(a.partial)))
		default:
			b.WriteString(strings.Repeat(".", words.WordLength))
		}
		b.WriteString(crlf)
	}
	b.WriteString(crlf)

	for _, r := range keyboardRows {
		b.WriteString(r.indent)
		for i := 0; i < len(r.keys); i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			k := r.keys[i]
			if col := colourOf(a.kb.StatusOf(k)); col != "" {
				b.WriteString(col)
				b.WriteByte(k)
				b.WriteString(reset)
			} else {
				b.WriteByte(k)
			}
		}
		b.WriteString(crlf)
	}
	b.WriteString(crlf)
	if a.notice != "" {
		b.WriteString(boardInset)
		b.WriteString(a.notice)
		b.WriteString(crlf)
	}
	_, _ = a.w.Write(b.Bytes())
}
