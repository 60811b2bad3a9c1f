// serve.go
//
// Server mode (-serve ADDR): many concurrent games over HTTP sharing one
// corpus. The corpus comes from WORD-LIST, WORDS_FILE or the embedded list,
// and is hot-reloaded when it came from a file.

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-term/assets"
	"github.com/robalobadob/wordle/apps/go-term/internal/config"
	"github.com/robalobadob/wordle/apps/go-term/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-term/internal/store"
	"github.com/robalobadob/wordle/apps/go-term/internal/words"
)

// loadCorpus loads list, or the embedded list when list is empty.
func loadCorpus(list string) (*words.Corpus, error) {
	if list == "" {
		d, err := assets.Dictionary()
		if err != nil {
			return nil, err
		}
		return words.NewCorpus(d, ""), nil
	}
	d, err := words.Load(list)
	if err != nil {
		return nil, err
	}
	return words.NewCorpus(d, list), nil
}

func serve(cfg config.Config, opts options) int {
	list := opts.list
	if list == "" {
		list = cfg.WordsFile
	}
	corpus, err := loadCorpus(list)
	if err != nil {
		log.Error().Err(err).Str("path", list).Msg("failed to load word list")
		return exitFailure
	}
	source := corpus.Source()
	if source == "" {
		source = assets.Source
	}
	log.Info().Int("words", corpus.Current().Len()).Str("source", source).Msg("corpus loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.WatchWords && corpus.Source() != "" {
		if err := corpus.Watch(ctx); err != nil {
			log.Warn().Err(err).Msg("word list hot reload disabled")
		}
	}

	hist := openHistory(cfg)
	if hist != nil {
		defer hist.Close()
	} else {
		log.Warn().Msg("history disabled: accounts, stats and leaderboard unavailable")
	}

	srv := httpserver.New(store.NewMemoryStore(), corpus, hist, httpserver.Options{
		JWTSecret:      cfg.JWTSecret,
		JWTExpiresDays: cfg.JWTExpiresDays,
		ClientOrigin:   cfg.ClientOrigin,
		DailySalt:      cfg.DailySalt,
	})
	addr := listenAddr(opts.serve, cfg.Port)
	log.Info().Str("addr", addr).Msg("starting wordle server")
	if err := srv.Run(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server exited")
		return exitFailure
	}
	log.Info().Msg("server stopped")
	return exitOK
}

// listenAddr appends port to a -serve address that names only a host.
func listenAddr(serve, port string) string {
	if _, _, err := net.SplitHostPort(serve); err == nil {
		return serve
	}
	return net.JoinHostPort(serve, port)
}
