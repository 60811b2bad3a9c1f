package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-term/internal/history"
)

const cookieName = "wordle_token"

// ctxPlayerKey is the context key type for the signed-in player id.
type ctxPlayerKey struct{}

// playerID returns the signed-in player's id, or "" for guests.
func playerID(r *http.Request) string {
	id, _ := r.Context().Value(ctxPlayerKey{}).(string)
	return id
}

// mountAuthRoutes registers account routes. Without history they answer 503.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)
	s.r.With(s.requireAuth).Get("/auth/me", s.handleMe)
	s.r.With(s.requireAuth).Get("/stats/me", s.handleStats)
	s.r.With(s.requireAuth).Get("/games/mine", s.handleMyGames)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authRes struct {
	Token   string          `json:"token"`
	Expires time.Time       `json:"expires"`
	Player  *history.Player `json:"player"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		writeErr(w, http.StatusServiceUnavailable, "history_disabled")
		return
	}
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json")
		return
	}
	p, err := s.hist.CreatePlayer(r.Context(), body.Username, body.Password)
	if errors.Is(err, history.ErrUsernameTaken) {
		writeErr(w, http.StatusConflict, "username_taken")
		return
	}
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	s.issueToken(w, p)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		writeErr(w, http.StatusServiceUnavailable, "history_disabled")
		return
	}
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json")
		return
	}
	p, err := s.hist.FindPlayerByName(r.Context(), strings.TrimSpace(body.Username))
	if err != nil || !p.CheckPassword(body.Password) {
		writeErr(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	s.issueToken(w, p)
}

func (s *Server) issueToken(w http.ResponseWriter, p *history.Player) {
	tok, exp, err := s.signJWT(p.ID, p.Username)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeErr(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
	writeJSON(w, http.StatusOK, authRes{Token: tok, Expires: exp, Player: p})
}

// handleLogout clears the auth cookie. Bearer tokens simply expire.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	p, err := s.hist.FindPlayerByID(r.Context(), playerID(r))
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "invalid_token")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.hist.RecentGames(r.Context(), playerID(r), 20)
	if err != nil {
		log.Error().Err(err).Msg("recent games")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	if games == nil {
		games = []history.Record{}
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.hist.Stats(r.Context(), playerID(r))
	if err != nil {
		log.Error().Err(err).Msg("stats")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"played":        st.Played,
		"wins":          st.Wins,
		"winRate":       st.WinRate(),
		"currentStreak": st.CurrentStreak,
		"maxStreak":     st.MaxStreak,
		"distribution":  st.Distribution,
	})
}

// ------------------------------ JWT ----------------------------------------

// signJWT creates an HS256 token carrying the player id and username.
func (s *Server) signJWT(id, username string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(time.Duration(s.opts.JWTExpiresDays) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseJWT validates tok and returns the player id it carries.
func (s *Server) parseJWT(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", errors.New("invalid token")
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return "", errors.New("invalid token")
	}
	return id, nil
}

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// withOptionalAuth decorates requests with the player id if a valid token is
// present. It never rejects; used for routes where guests are allowed.
func (s *Server) withOptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := bearerOrCookie(r); tok != "" {
			if id, err := s.parseJWT(tok); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxPlayerKey{}, id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth enforces a valid token for a player that still exists.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.hist == nil {
			writeErr(w, http.StatusServiceUnavailable, "history_disabled")
			return
		}
		tok := bearerOrCookie(r)
		if tok == "" {
			writeErr(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		id, err := s.parseJWT(tok)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		if _, err := s.hist.FindPlayerByID(r.Context(), id); err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxPlayerKey{}, id)))
	})
}
