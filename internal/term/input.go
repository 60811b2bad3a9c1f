package term

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/robalobadob/wordle/apps/go-term/internal/words"
)

// ErrInterrupted is returned when the player presses Ctrl-C in raw mode.
var ErrInterrupted = errors.New("interrupted")

// InputSource supplies complete candidate guesses. ReadGuess blocks until a
// guess is available; io.EOF means the player is gone.
type InputSource interface {
	ReadGuess() (string, error)
}

const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyBackspace = 0x08
	keyEscape    = 0x1b
	keyDelete    = 0x7f
)

// KeyReader assembles guesses from raw keystrokes: letters are appended up
// to words.WordLength, backspace removes the last letter, and Enter submits
// only when the word is complete. Escape sequences (arrow keys etc.) are
// ignored.
type KeyReader struct {
	r *bufio.Reader

	// OnChange, if set, is called with the partial word after every edit.
	OnChange func(partial string)
}

// NewKeyReader reads keystrokes from r.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReader(r)}
}

func (k *KeyReader) changed(buf []byte) {
	if k.OnChange != nil {
		k.OnChange(string(buf))
	}
}

// ReadGuess returns the next complete guess.
func (k *KeyReader) ReadGuess() (string, error) {
	buf := make([]byte, 0, words.WordLength)
	for {
		b, err := k.r.ReadByte()
		if err != nil {
			return "", err
		}
		switch {
		case b == keyCtrlC:
			return "", ErrInterrupted
		case b == keyCtrlD:
			return "", io.EOF
		case b == keyDelete || b == keyBackspace:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				k.changed(buf)
			}
		case b == '\r' || b == '\n':
			if len(buf) == words.WordLength {
				return string(buf), nil
			}
		case b == keyEscape:
			if err := k.skipEscape(); err != nil {
				return "", err
			}
		case b >= 'A' && b <= 'Z':
			b += 'a' - 'A'
			fallthrough
		case b >= 'a' && b <= 'z':
			if len(buf) < words.WordLength {
				buf = append(buf, b)
				k.changed(buf)
			}
		}
	}
}

// skipEscape consumes a CSI/SS3 sequence following ESC.
func (k *KeyReader) skipEscape() error {
	if k.r.Buffered() == 0 {
		return nil // lone Escape key
	}
	b, err := k.r.ReadByte()
	if err != nil {
		return err
	}
	if b != '[' && b != 'O' {
		return k.r.UnreadByte()
	}
	for {
		b, err := k.r.ReadByte()
		if err != nil {
			return err
		}
		if b >= 0x40 && b <= 0x7e {
			return nil
		}
	}
}

// LineReader reads one guess per line, for input that is not a terminal.
// Lines are trimmed and lowercased; validation is left to the session.
type LineReader struct {
	sc *bufio.Scanner
}

// NewLineReader reads lines from r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{sc: bufio.NewScanner(r)}
}

// ReadGuess returns the next non-empty line.
func (l *LineReader) ReadGuess() (string, error) {
	for l.sc.Scan() {
		if w := strings.ToLower(strings.TrimSpace(l.sc.Text())); w != "" {
			return w, nil
		}
	}
	if err := l.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
