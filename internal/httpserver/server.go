// internal/httpserver/server.go
//
// HTTP server wiring for multi-player hosting of the game engine.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess, GET /game/{id}.
//   - Daily endpoints (optional auth): mounted under /daily.
//   - Player accounts (auth.go): /auth/signup, /auth/login, /stats/me.
//
// Notes:
//   - Every game owns its own Session and KeyboardState; only the Dictionary
//     is shared, and a corpus reload only affects games created afterwards.
//   - Finished games of signed-in players are written to history (best effort).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-term/internal/daily"
	"github.com/robalobadob/wordle/apps/go-term/internal/game"
	"github.com/robalobadob/wordle/apps/go-term/internal/history"
	"github.com/robalobadob/wordle/apps/go-term/internal/store"
	"github.com/robalobadob/wordle/apps/go-term/internal/words"
)

// Options tunes a Server. Zero values fall back to sensible defaults.
type Options struct {
	JWTSecret      string
	JWTExpiresDays int
	ClientOrigin   string
	DailySalt      string
	MaxAttempts    int
	SessionTTL     time.Duration    // unfinished games are dropped after this
	Now            func() time.Time // clock for sessions and the daily word
}

// Server bundles router, session store, corpus and history.
type Server struct {
	r      *chi.Mux
	store  store.Store
	corpus *words.Corpus
	hist   *history.Store // nil disables accounts and stats
	opts   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, corpus *words.Corpus, hist *history.Store, opts Options) *Server {
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev_secret_change_me"
	}
	if opts.JWTExpiresDays <= 0 {
		opts.JWTExpiresDays = 14
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = game.DefaultMaxAttempts
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), store: st, corpus: corpus, hist: hist, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-go","endpoints":["/health","POST /game/new","POST /game/guess","GET /game/{id}","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"words": s.corpus.Current().Len(), "source": s.corpus.Source()})
	})

	// Game endpoints — OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/{id}", s.handleGetGame)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
// Stale sessions are swept in the background while running.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	go s.sweepLoop(ctx)

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	}
}

func (s *Server) sweepLoop(ctx context.Context) {
	t := time.NewTicker(10 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.store.Sweep(ctx, s.opts.Now().Add(-s.opts.SessionTTL)); n > 0 {
				log.Info().Int("sessions", n).Msg("swept stale games")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeGameErr maps engine and store errors to HTTP responses.
func writeGameErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrMalformedWord):
		writeErr(w, http.StatusBadRequest, "invalid_guess")
	case errors.Is(err, game.ErrInvalidWord):
		writeErr(w, http.StatusUnprocessableEntity, "not_in_word_list")
	case errors.Is(err, game.ErrSessionClosed):
		writeErr(w, http.StatusConflict, "game_finished")
	default:
		log.Error().Err(err).Msg("game request")
		writeErr(w, http.StatusInternalServerError, "internal")
	}
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode   string `json:"mode"`   // "random" (default) | "daily"
	Answer string `json:"answer"` // optional fixed answer (testing); never recorded
}

// modeFixed marks games whose answer the client chose. They are playable but
// never written to history, so they cannot inflate stats.
const modeFixed = "fixed"

type newGameRes struct {
	GameID      string `json:"gameId"`
	Mode        string `json:"mode"`
	Date        string `json:"date"`
	MaxAttempts int    `json:"maxAttempts"`
	WordLength  int    `json:"wordLength"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	mode := "random"
	var picker words.Picker = words.RandomPicker{}
	switch {
	case req.Mode == "daily":
		s.handleNewDaily(w, r)
		return
	case req.Answer != "":
		mode = modeFixed
		picker = words.FixedPicker(strings.ToLower(strings.TrimSpace(req.Answer)))
	}
	s.startGame(w, r, mode, picker)
}

// startGame creates a session with a secret from picker and stores it.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, mode string, picker words.Picker) {
	dict := s.corpus.Current()
	sess, err := game.NewSession(dict, picker.Pick(dict),
		game.WithMaxAttempts(s.opts.MaxAttempts), game.WithClock(s.opts.Now))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_answer")
		return
	}
	g := &store.Game{
		Session:  sess,
		PlayerID: playerID(r),
		Mode:     mode,
		Date:     daily.DateKey(sess.StartedAt),
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Debug().Str("gameId", sess.ID).Str("mode", mode).Str("player", g.PlayerID).Msg("game created")

	writeJSON(w, http.StatusOK, newGameRes{
		GameID:      sess.ID,
		Mode:        mode,
		Date:        g.Date,
		MaxAttempts: sess.MaxAttempts,
		WordLength:  words.WordLength,
	})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Guess     string                         `json:"guess"`
	Marks     []game.Classification          `json:"marks"`
	State     string                         `json:"state"` // "playing" | "won" | "lost"
	Attempts  int                            `json:"attempts"`
	Remaining int                            `json:"remaining"`
	Keyboard  map[string]game.Classification `json:"keyboard"`
	Answer    string                         `json:"answer,omitempty"`
	Summary   string                         `json:"summary,omitempty"`
}

// handleGuess applies a guess under the game's lock and, once the game is
// over, records it for signed-in players.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	guess := strings.ToLower(strings.TrimSpace(req.Guess))

	var res guessRes
	var finished *history.Record
	err := s.store.Update(r.Context(), req.GameID, func(g *store.Game) error {
		sess := g.Session
		gr, st, err := sess.Submit(guess)
		if err != nil {
			return err
		}
		res = guessRes{
			Guess:     gr.Word,
			Marks:     gr.Marks(),
			State:     st.String(),
			Attempts:  sess.Attempts,
			Remaining: sess.Remaining(),
			Keyboard:  sess.Keyboard().Snapshot(),
		}
		if st.Terminal() {
			res.Answer, res.Summary = sess.Secret, sess.Summary()
			if g.PlayerID != "" && g.Mode != modeFixed {
				finished = recordOf(g)
			}
		}
		return nil
	})
	if err != nil {
		writeGameErr(w, err)
		return
	}

	if finished != nil && s.hist != nil {
		if err := s.hist.RecordGame(r.Context(), *finished); err != nil {
			log.Warn().Err(err).Str("gameId", finished.ID).Msg("record game")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func recordOf(g *store.Game) *history.Record {
	sess := g.Session
	return &history.Record{
		ID:          sess.ID,
		PlayerID:    g.PlayerID,
		Mode:        g.Mode,
		Date:        g.Date,
		Secret:      sess.Secret,
		Attempts:    sess.Attempts,
		MaxAttempts: sess.MaxAttempts,
		Won:         sess.Status == game.Won,
		StartedAt:   sess.StartedAt,
		FinishedAt:  sess.FinishedAt,
	}
}

type rowRes struct {
	Guess string                `json:"guess"`
	Marks []game.Classification `json:"marks"`
}
type gameRes struct {
	GameID      string                         `json:"gameId"`
	Mode        string                         `json:"mode"`
	State       string                         `json:"state"`
	Attempts    int                            `json:"attempts"`
	MaxAttempts int                            `json:"maxAttempts"`
	Board       []rowRes                       `json:"board"`
	Keyboard    map[string]game.Classification `json:"keyboard"`
	Answer      string                         `json:"answer,omitempty"`
}

// handleGetGame returns the board so a client can resume a game.
// The answer is only revealed once the game is over.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var res gameRes
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *store.Game) error {
		sess := g.Session
		res = gameRes{
			GameID:      sess.ID,
			Mode:        g.Mode,
			State:       sess.Status.String(),
			Attempts:    sess.Attempts,
			MaxAttempts: sess.MaxAttempts,
			Board:       []rowRes{},
			Keyboard:    sess.Keyboard().Snapshot(),
		}
		for _, gr := range sess.Board() {
			res.Board = append(res.Board, rowRes{Guess: gr.Word, Marks: gr.Marks()})
		}
		if sess.Finished() {
			res.Answer = sess.Secret
		}
		return nil
	})
	if err != nil {
		writeGameErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
