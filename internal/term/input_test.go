package term

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func TestKeyReaderEditing(t *testing.T) {
	var seen []string
	k := NewKeyReader(strings.NewReader("pl\x7fLA\rne\x1b[Dx\rcrane\n"))
	k.OnChange = func(p string) { seen = append(seen, p) }

	got, err := k.ReadGuess()
	if err != nil {
		t.Fatal(err)
	}
	if got != "plane" {
		t.Fatalf("first guess = %q, want plane", got)
	}
	// x after the arrow key is dropped: the word is already full
	if seen[2] != "p" {
		t.Fatalf("backspace not reported: %v", seen)
	}

	got, err = k.ReadGuess()
	if err != nil {
		t.Fatal(err)
	}
	if got != "crane" {
		t.Fatalf("second guess = %q, want crane", got)
	}

	if _, err := k.ReadGuess(); err != io.EOF {
		t.Fatalf("err = %v, want EOF", err)
	}
}

func TestKeyReaderEnterNeedsFullWord(t *testing.T) {
	k := NewKeyReader(strings.NewReader("abc\r\rde\r"))
	got, err := k.ReadGuess()
	if err != nil || got != "abcde" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestKeyReaderControlKeys(t *testing.T) {
	if _, err := NewKeyReader(strings.NewReader("ab\x03")).ReadGuess(); !errors.Is(err, ErrInterrupted) {
		t.Fatalf("ctrl-c err = %v", err)
	}
	if _, err := NewKeyReader(strings.NewReader("ab\x04")).ReadGuess(); err != io.EOF {
		t.Fatalf("ctrl-d err = %v", err)
	}
}

func TestLineReader(t *testing.T) {
	l := NewLineReader(strings.NewReader("  PLANE \n\ncranes\n"))
	if g, _ := l.ReadGuess(); g != "plane" {
		t.Fatalf("got %q", g)
	}
	if g, _ := l.ReadGuess(); g != "cranes" {
		t.Fatalf("got %q", g)
	}
	if _, err := l.ReadGuess(); err != io.EOF {
		t.Fatalf("err = %v, want EOF", err)
	}
}

func TestAcquireRejectsNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "in")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := Acquire(f, nil); !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("err = %v, want ErrNotTerminal", err)
	}
}
