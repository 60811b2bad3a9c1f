package game

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/robalobadob/wordle/apps/go-term/internal/words"
)

func testDict(t *testing.T) *words.Dictionary {
	t.Helper()
	list := []string{
		"plane", "plank", "crane", "fight", "nepal", "eerie", "pious",
		"moons", "spool", "react", "ghost", "quick", "brown", "jumpy",
	}
	sort.Strings(list)
	d, err := words.NewDictionary(list)
	if err != nil {
		t.Fatalf("NewDictionary: %v", err)
	}
	return d
}

func TestSessionWinFirstGuess(t *testing.T) {
	s, err := NewSession(testDict(t), "plane")
	if err != nil {
		t.Fatal(err)
	}
	res, st, err := s.Submit("plane")
	if err != nil {
		t.Fatal(err)
	}
	if st != Won || s.Status != Won {
		t.Fatalf("status = %v, want won", st)
	}
	if s.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", s.Attempts)
	}
	if !res.Win {
		t.Fatalf("result not all correct: %v", res.Marks())
	}
	if got := s.Summary(); got != "OK plane 1/6" {
		t.Fatalf("summary = %q", got)
	}
}

func TestSessionLosesAfterMaxAttempts(t *testing.T) {
	s, err := NewSession(testDict(t), "plane")
	if err != nil {
		t.Fatal(err)
	}
	wrong := []string{"crane", "fight", "ghost", "quick", "brown", "jumpy"}
	for i, g := range wrong {
		_, st, err := s.Submit(g)
		if err != nil {
			t.Fatalf("guess %d %q: %v", i+1, g, err)
		}
		if i < len(wrong)-1 && st != InProgress {
			t.Fatalf("after guess %d status = %v, want playing", i+1, st)
		}
	}
	if s.Status != Lost {
		t.Fatalf("status = %v, want lost", s.Status)
	}
	if s.FinishedAt.IsZero() {
		t.Fatalf("FinishedAt not set")
	}
	if _, _, err := s.Submit("plane"); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("7th guess err = %v, want ErrSessionClosed", err)
	}
	if s.Attempts != 6 || s.Status != Lost {
		t.Fatalf("closed session changed: attempts=%d status=%v", s.Attempts, s.Status)
	}
	if got := s.Summary(); got != "FAIL plane" {
		t.Fatalf("summary = %q", got)
	}
}

func TestSessionRejectsUnknownWord(t *testing.T) {
	s, _ := NewSession(testDict(t), "plane")
	_, st, err := s.Submit("zzzzz")
	if !errors.Is(err, ErrInvalidWord) {
		t.Fatalf("err = %v, want ErrInvalidWord", err)
	}
	if st != InProgress || s.Attempts != 0 || len(s.Board()) != 0 {
		t.Fatalf("state changed on invalid word: status=%v attempts=%d", st, s.Attempts)
	}
	if s.Keyboard().StatusOf('z') != Unseen {
		t.Fatalf("keyboard updated on invalid word")
	}
}

func TestSessionRejectsMalformed(t *testing.T) {
	s, _ := NewSession(testDict(t), "plane")
	for _, g := range []string{"", "plan", "PLANE", "plane!"} {
		if _, _, err := s.Submit(g); !errors.Is(err, ErrMalformedWord) {
			t.Errorf("Submit(%q) err = %v, want ErrMalformedWord", g, err)
		}
	}
	if s.Attempts != 0 {
		t.Fatalf("attempts = %d, want 0", s.Attempts)
	}
}

func TestNewSessionValidatesSecret(t *testing.T) {
	d := testDict(t)
	if _, err := NewSession(d, "zzzzz"); !errors.Is(err, ErrInvalidWord) {
		t.Fatalf("secret outside corpus err = %v", err)
	}
	if _, err := NewSession(d, "planes"); !errors.Is(err, ErrMalformedWord) {
		t.Fatalf("long secret err = %v", err)
	}
}

func TestSessionOptionsAndKeyboard(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s, err := NewSession(testDict(t), "plane",
		WithMaxAttempts(2), WithID("g1"), WithClock(func() time.Time { return at }))
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != "g1" || !s.StartedAt.Equal(at) {
		t.Fatalf("options not applied: id=%q started=%v", s.ID, s.StartedAt)
	}
	if _, _, err := s.Submit("plank"); err != nil {
		t.Fatal(err)
	}
	if s.Remaining() != 1 {
		t.Fatalf("remaining = %d, want 1", s.Remaining())
	}
	if s.Keyboard().StatusOf('k') != Absent || s.Keyboard().StatusOf('p') != Correct {
		t.Fatalf("keyboard = %v", s.Keyboard().Snapshot())
	}
	if _, st, _ := s.Submit("nepal"); st != Lost {
		t.Fatalf("status after 2 of 2 = %v, want lost", st)
	}
	if len(s.Board()) != 2 {
		t.Fatalf("board has %d rows, want 2", len(s.Board()))
	}
}
