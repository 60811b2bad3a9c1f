// main.go
//
// Entry point for the terminal Wordle client.
// Responsibilities:
//   - Parse flags and the WORD-LIST argument (file or glob).
//   - Configure zerolog (console writer on stderr, quiet while playing).
//   - Play one game in the terminal, or print stats, or host games over HTTP.
//
// Exit codes: 0 after a finished game (won or lost) or --help, 1 on a
// missing/invalid word list or setup failure, 130 when interrupted.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-term/internal/config"
	"github.com/robalobadob/wordle/apps/go-term/internal/daily"
	"github.com/robalobadob/wordle/apps/go-term/internal/game"
	"github.com/robalobadob/wordle/apps/go-term/internal/history"
	"github.com/robalobadob/wordle/apps/go-term/internal/render"
	"github.com/robalobadob/wordle/apps/go-term/internal/term"
	"github.com/robalobadob/wordle/apps/go-term/internal/words"
)

const helpText = `Usage:       wordle [flags] WORD-LIST [flags]
Description: Wordle in the terminal. Starts a game of wordle given the
             WORD-LIST. It must be a sorted list of 5-letter words separated
             by newlines; a glob pattern merges several lists.

Flags:
`

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

type options struct {
	daily bool
	stats bool
	serve string
	plain bool
	list  string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// parseArgs reads flags and the word list argument. A nil error with
// help=true means usage was printed.
func parseArgs(args []string, stdout io.Writer) (opts options, help bool, err error) {
	fs := flag.NewFlagSet("wordle", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.BoolVar(&opts.daily, "daily", false, "play the word of the day")
	fs.BoolVar(&opts.stats, "stats", false, "print your statistics and exit")
	fs.StringVar(&opts.serve, "serve", "", "host games over HTTP on `ADDR` (host:port, or a host to use PORT)")
	fs.BoolVar(&opts.plain, "plain", false, "no colours, read one guess per line")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), helpText)
		fs.PrintDefaults()
	}

	// flags may follow WORD-LIST, so parse again after each positional
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return opts, true, nil
			}
			return opts, false, err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
	if len(positional) > 1 {
		err := fmt.Errorf("expected one WORD-LIST, got %d arguments", len(positional))
		fmt.Fprintln(fs.Output(), err)
		fs.Usage()
		return opts, false, err
	}
	if len(positional) == 1 {
		opts.list = positional[0]
	}
	return opts, false, nil
}

func run(args []string, stdout io.Writer) int {
	opts, help, err := parseArgs(args, stdout)
	if help {
		return exitOK
	}
	if err != nil {
		return exitFailure
	}
	cfg := config.Load()

	switch {
	case opts.serve != "":
		setupLogging(cfg.LogLevel, zerolog.InfoLevel)
		return serve(cfg, opts)
	case opts.stats:
		setupLogging(cfg.LogLevel, zerolog.WarnLevel)
		return printStats(cfg, stdout)
	}

	setupLogging(cfg.LogLevel, zerolog.WarnLevel)
	if opts.list == "" {
		fmt.Fprintln(stdout, "[ !! ] Missing word list. See '--help'.")
		return exitFailure
	}
	dict, err := words.Load(opts.list)
	if err != nil {
		fmt.Fprintf(stdout, "[ !! ] %v\n", err)
		return exitFailure
	}
	log.Debug().Int("words", dict.Len()).Str("path", opts.list).Msg("corpus loaded")

	hist := openHistory(cfg)
	if hist != nil {
		defer hist.Close()
	}
	return playLocal(cfg, opts, dict, hist, stdout)
}

// setupLogging sends zerolog to a colour-aware stderr at level (or def).
func setupLogging(level string, def zerolog.Level) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = def
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        colorable.NewColorableStderr(),
		TimeFormat: time.Kitchen,
	})
}

// openHistory opens the history database, or returns nil when it is
// disabled or unavailable. Play never depends on it.
func openHistory(cfg config.Config) *history.Store {
	if cfg.HistoryDSN == "" {
		return nil
	}
	h, err := history.Open(cfg.HistoryDSN)
	if err != nil {
		log.Warn().Err(err).Str("dsn", cfg.HistoryDSN).Msg("history disabled")
		return nil
	}
	return h
}

// playLocal runs one game against the local terminal.
func playLocal(cfg config.Config, opts options, dict *words.Dictionary, hist *history.Store, stdout io.Writer) int {
	ctx := context.Background()

	mode := "random"
	var picker words.Picker = words.RandomPicker{}
	if opts.daily {
		dp := daily.Picker{Salt: cfg.DailySalt}
		if hist != nil {
			played, err := hist.DailyPlayed(ctx, history.LocalPlayer, dp.Date())
			if err != nil {
				log.Warn().Err(err).Msg("daily played check")
			} else if played {
				fmt.Fprintf(stdout, "[ !! ] Already played the daily word for %s.\n", dp.Date())
				return exitFailure
			}
		}
		mode, picker = "daily", dp
	}

	sess, err := game.NewSession(dict, picker.Pick(dict))
	if err != nil {
		fmt.Fprintf(stdout, "[ !! ] %v\n", err)
		return exitFailure
	}

	var (
		in  term.InputSource
		out render.Renderer
		raw *term.Mode
	)
	if !opts.plain && term.IsTerminal(os.Stdin) && term.IsTerminal(os.Stdout) {
		raw, err = term.Acquire(os.Stdin, func(os.Signal) { os.Exit(exitInterrupted) })
		if err != nil {
			fmt.Fprintf(stdout, "[ !! ] %v\n", err)
			return exitFailure
		}
		defer raw.Restore()

		out = render.New(colorable.NewColorableStdout(), true)
		kr := term.NewKeyReader(os.Stdin)
		kr.OnChange = out.Prompt
		in = kr
	} else {
		out = render.New(stdout, false)
		in = term.NewLineReader(os.Stdin)
	}

	err = play(sess, in, out)
	if raw != nil {
		_ = raw.Restore()
	}
	switch {
	case errors.Is(err, term.ErrInterrupted):
		return exitInterrupted
	case errors.Is(err, io.EOF):
		// input closed before the game ended; nothing to report or record
		return exitOK
	case err != nil:
		fmt.Fprintf(stdout, "[ !! ] %v\n", err)
		return exitFailure
	}

	fmt.Fprintln(stdout, sess.Summary())
	if hist != nil {
		rec := history.Record{
			PlayerID:    history.LocalPlayer,
			Mode:        mode,
			Date:        daily.DateKey(sess.StartedAt),
			Secret:      sess.Secret,
			Attempts:    sess.Attempts,
			MaxAttempts: sess.MaxAttempts,
			Won:         sess.Status == game.Won,
			StartedAt:   sess.StartedAt,
			FinishedAt:  sess.FinishedAt,
		}
		if err := hist.RecordGame(ctx, rec); err != nil {
			log.Warn().Err(err).Msg("record game")
		}
	}
	return exitOK
}

// play reads guesses until the session is over. Rejected words are
// reported through the renderer and do not use up an attempt.
func play(sess *game.Session, in term.InputSource, out render.Renderer) error {
	out.Draw(sess.Board(), sess.MaxAttempts, sess.Keyboard())
	for !sess.Finished() {
		guess, err := in.ReadGuess()
		if err != nil {
			return err
		}
		_, _, err = sess.Submit(guess)
		switch {
		case errors.Is(err, game.ErrInvalidWord), errors.Is(err, game.ErrMalformedWord):
			out.Notice(err.Error())
			continue
		case err != nil:
			return err
		}
		out.Draw(sess.Board(), sess.MaxAttempts, sess.Keyboard())
	}
	return nil
}

// printStats prints the local player's statistics.
func printStats(cfg config.Config, stdout io.Writer) int {
	hist := openHistory(cfg)
	if hist == nil {
		fmt.Fprintln(stdout, "[ !! ] History is disabled (WORDLE_DB).")
		return exitFailure
	}
	defer hist.Close()

	st, err := hist.Stats(context.Background(), history.LocalPlayer)
	if err != nil {
		fmt.Fprintf(stdout, "[ !! ] %v\n", err)
		return exitFailure
	}
	writeStats(stdout, st, game.DefaultMaxAttempts)
	return exitOK
}

func writeStats(w io.Writer, st history.Stats, maxAttempts int) {
	fmt.Fprintf(w, "Played:         %d\n", st.Played)
	fmt.Fprintf(w, "Win %%:          %.0f\n", st.WinRate())
	fmt.Fprintf(w, "Current streak: %d\n", st.CurrentStreak)
	fmt.Fprintf(w, "Max streak:     %d\n", st.MaxStreak)
	fmt.Fprintln(w, "Guess distribution:")
	for n := 1; n <= maxAttempts; n++ {
		fmt.Fprintf(w, "  %d: %d\n", n, st.Distribution[n])
	}
}
