package game

import "errors"

var (
	// ErrInvalidWord: the guess is well-formed but not in the dictionary.
	// The attempt is not consumed; callers should re-prompt.
	ErrInvalidWord = errors.New("not in word list")

	// ErrMalformedWord: the guess is not exactly five lowercase letters.
	ErrMalformedWord = errors.New("invalid guess")

	// ErrSessionClosed: a guess was submitted after the game was won or lost.
	ErrSessionClosed = errors.New("game finished")
)
