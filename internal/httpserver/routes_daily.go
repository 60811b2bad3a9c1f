// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
//   - POST /daily/new         → start today's game (same word for everyone)
//   - GET  /daily/leaderboard → winners for today (or ?date=YYYY-MM-DD)
//
// Signed-in players can play the daily game once per date (enforced by
// history); guests may replay it freely since nothing is recorded for them.

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-term/internal/daily"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleNewDaily)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

// maxLeaderboard bounds ?limit= on the leaderboard.
const maxLeaderboard = 100

func (s *Server) dailyPicker() daily.Picker {
	return daily.Picker{Salt: s.opts.DailySalt, Now: s.opts.Now}
}

// handleNewDaily starts a daily game unless the signed-in player already
// finished today's.
func (s *Server) handleNewDaily(w http.ResponseWriter, r *http.Request) {
	picker := s.dailyPicker()
	if pid := playerID(r); pid != "" && s.hist != nil {
		played, err := s.hist.DailyPlayed(r.Context(), pid, picker.Date())
		if err != nil {
			log.Warn().Err(err).Str("player", pid).Msg("daily played check")
		} else if played {
			writeErr(w, http.StatusConflict, "already_played")
			return
		}
	}
	s.startGame(w, r, "daily", picker)
}

// handleLeaderboard lists the day's winners.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		writeErr(w, http.StatusServiceUnavailable, "history_disabled")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.dailyPicker().Date()
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > maxLeaderboard {
		limit = 20
	}
	rows, err := s.hist.DailyLeaderboard(r.Context(), date, limit)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "rows": rows})
}
