// Package term owns the interactive terminal: switching stdin into raw mode
// for the duration of a game and reading guesses keystroke by keystroke.
//
// Raw mode is a scoped resource. Acquire returns a Mode whose Restore must be
// deferred by the caller; Restore is idempotent and also runs when the
// process receives SIGINT, SIGTERM or SIGHUP, so the terminal is never left
// raw on any exit path.
package term

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mattn/go-isatty"
	xterm "golang.org/x/term"
)

// ErrNotTerminal is returned by Acquire when the file is not a terminal.
var ErrNotTerminal = errors.New("term: not a terminal")

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Mode is an acquired raw-mode terminal.
type Mode struct {
	fd   int
	old  *xterm.State
	once sync.Once
	sigs chan os.Signal
	done chan struct{}
	err  error
}

// Acquire puts f into raw mode. If a termination signal arrives before
// Restore, the terminal is restored first and then onSignal is called
// (typically to exit the process). onSignal may be nil.
func Acquire(f *os.File, onSignal func(os.Signal)) (*Mode, error) {
	if !IsTerminal(f) {
		return nil, ErrNotTerminal
	}
	fd := int(f.Fd())
	old, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	m := &Mode{
		fd:   fd,
		old:  old,
		sigs: make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	signal.Notify(m.sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go m.watch(onSignal)
	return m, nil
}

func (m *Mode) watch(onSignal func(os.Signal)) {
	select {
	case sig := <-m.sigs:
		_ = m.Restore()
		if onSignal != nil {
			onSignal(sig)
		}
	case <-m.done:
	}
}

// Restore returns the terminal to the state it had before Acquire.
// Safe to call more than once and from several goroutines.
func (m *Mode) Restore() error {
	m.once.Do(func() {
		signal.Stop(m.sigs)
		close(m.done)
		m.err = xterm.Restore(m.fd, m.old)
	})
	return m.err
}
