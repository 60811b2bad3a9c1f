// internal/game/session.go
//
// Game session: one secret, a bounded number of attempts, and the keyboard
// state accumulated over the accepted guesses.
//
// State transitions on Submit:
//   - terminal session       → ErrSessionClosed, nothing changes.
//   - malformed guess        → ErrMalformedWord, nothing changes.
//   - guess not in word list → ErrInvalidWord, nothing changes.
//   - otherwise the attempt is consumed and scored:
//       all tiles Correct           → Won.
//       attempts reach MaxAttempts  → Lost.
//       else                        → still playing.
//
// A Session is owned by one player and is not safe for concurrent use.
package game

import (
	"fmt"
	"strconv"
	"time"

	"github.com/robalobadob/wordle/apps/go-term/internal/words"
)

// DefaultMaxAttempts is the number of guesses allowed per session.
const DefaultMaxAttempts = 6

// Validator answers dictionary membership. *words.Dictionary satisfies it.
type Validator interface {
	Validate(word string) bool
}

// Session holds the state of a single game.
type Session struct {
	ID          string
	Secret      string
	MaxAttempts int
	Attempts    int
	Status      Status
	StartedAt   time.Time
	FinishedAt  time.Time

	dict     Validator
	board    []GuessResult
	keyboard *KeyboardState
	now      func() time.Time
}

// Option configures a Session at construction.
type Option func(*Session)

// WithMaxAttempts overrides DefaultMaxAttempts. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 1 {
			s.MaxAttempts = n
		}
	}
}

// WithID sets the session identifier.
func WithID(id string) Option {
	return func(s *Session) { s.ID = id }
}

// WithClock replaces time.Now for StartedAt/FinishedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession starts a game against secret, which must be a member of dict.
func NewSession(dict Validator, secret string, opts ...Option) (*Session, error) {
	if !words.IsWord(secret) {
		return nil, fmt.Errorf("secret %q: %w", secret, ErrMalformedWord)
	}
	if !dict.Validate(secret) {
		return nil, fmt.Errorf("secret %q: %w", secret, ErrInvalidWord)
	}
	s := &Session{
		Secret:      secret,
		MaxAttempts: DefaultMaxAttempts,
		dict:        dict,
		keyboard:    NewKeyboardState(),
		now:         time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.StartedAt = s.now()
	return s, nil
}

// Submit validates, scores and records one guess.
// On error the session is left untouched.
func (s *Session) Submit(word string) (GuessResult, Status, error) {
	if s.Status.Terminal() {
		return GuessResult{}, s.Status, ErrSessionClosed
	}
	if !words.IsWord(word) {
		return GuessResult{}, s.Status, ErrMalformedWord
	}
	if !s.dict.Validate(word) {
		return GuessResult{}, s.Status, ErrInvalidWord
	}

	res, err := Score(s.Secret, word)
	if err != nil {
		return GuessResult{}, s.Status, err
	}
	s.Attempts++
	s.board = append(s.board, res)
	s.keyboard.Update(res)

	if res.Win {
		s.finish(Won)
	} else if s.Attempts >= s.MaxAttempts {
		s.finish(Lost)
	}
	return res, s.Status, nil
}

func (s *Session) finish(st Status) {
	s.Status = st
	s.FinishedAt = s.now()
}

// Finished reports whether the session is Won or Lost.
func (s *Session) Finished() bool { return s.Status.Terminal() }

// Remaining returns the number of guesses left.
func (s *Session) Remaining() int { return s.MaxAttempts - s.Attempts }

// Board returns the accepted guesses in order.
func (s *Session) Board() []GuessResult {
	return append([]GuessResult(nil), s.board...)
}

// Keyboard returns the live keyboard state. Callers must not modify it.
func (s *Session) Keyboard() *KeyboardState { return s.keyboard }

// Summary returns the end-of-game line: "OK <secret> <n>/<max>" on a win,
// "FAIL <secret>" on a loss, "" while the game is in progress.
func (s *Session) Summary() string {
	switch s.Status {
	case Won:
		return "OK " + s.Secret + " " + strconv.Itoa(s.Attempts) + "/" + strconv.Itoa(s.MaxAttempts)
	case Lost:
		return "FAIL " + s.Secret
	default:
		return ""
	}
}
