// Package history persists finished games and player accounts in SQLite
// and derives per-player statistics from them.
package history

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LocalPlayer is the player id used for games played in the terminal.
const LocalPlayer = "local"

// maxLimit caps the rows returned by list queries.
const maxLimit = 100

var (
	ErrUsernameTaken = errors.New("username taken")
	ErrNotFound      = errors.New("not found")
)

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens the database at dsn and applies pending migrations.
func Open(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Record is one finished game.
type Record struct {
	ID          string    `json:"id"`
	PlayerID    string    `json:"-"`
	Mode        string    `json:"mode"` // "random" | "daily"
	Date        string    `json:"date"` // YYYY-MM-DD the game belongs to
	Secret      string    `json:"answer"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"maxAttempts"`
	Won         bool      `json:"won"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// RecordGame inserts r. A second daily game for the same player and date,
// or a repeated ID, is ignored.
func (s *Store) RecordGame(ctx context.Context, r Record) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Mode == "" {
		r.Mode = "random"
	}
	if r.Date == "" {
		r.Date = r.FinishedAt.UTC().Format("2006-01-02")
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO games
            (id, player_id, mode, date, secret, attempts, max_attempts, won, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.PlayerID, r.Mode, r.Date, r.Secret, r.Attempts, r.MaxAttempts, r.Won,
		r.StartedAt.UTC().Format(time.RFC3339), r.FinishedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// DailyPlayed reports whether the player already has a daily game for date.
func (s *Store) DailyPlayed(ctx context.Context, playerID, date string) (bool, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM games WHERE player_id=? AND date=? AND mode='daily'`,
		playerID, date,
	).Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// RecentGames returns the player's most recently finished games, newest
// first. Limits outside 1..maxLimit fall back to 20.
func (s *Store) RecentGames(ctx context.Context, playerID string, limit int) ([]Record, error) {
	if limit <= 0 || limit > maxLimit {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, mode, date, secret, attempts, max_attempts, won, started_at, finished_at
        FROM games WHERE player_id=?
        ORDER BY finished_at DESC, rowid DESC
        LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r := Record{PlayerID: playerID}
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Mode, &r.Date, &r.Secret, &r.Attempts, &r.MaxAttempts, &r.Won, &started, &finished); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// LBRow is one line of the daily leaderboard.
type LBRow struct {
	Player     string `json:"player"`
	Attempts   int    `json:"attempts"`
	ElapsedSec int    `json:"elapsedSec"`
}

// DailyLeaderboard lists the winners of date's daily game, fewest attempts
// first, then fastest. Limits outside 1..maxLimit fall back to 20.
func (s *Store) DailyLeaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 || limit > maxLimit {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT COALESCE(p.username, g.player_id),
               g.attempts,
               CAST(strftime('%s', g.finished_at) AS INTEGER) - CAST(strftime('%s', g.started_at) AS INTEGER) AS elapsed
        FROM games g
        LEFT JOIN players p ON p.id = g.player_id
        WHERE g.mode = 'daily' AND g.date = ? AND g.won = 1
        ORDER BY g.attempts ASC, elapsed ASC, g.rowid ASC
        LIMIT ?`, date, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Player, &r.Attempts, &r.ElapsedSec); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats summarises a player's finished games.
type Stats struct {
	Played        int         `json:"played"`
	Wins          int         `json:"wins"`
	CurrentStreak int         `json:"currentStreak"`
	MaxStreak     int         `json:"maxStreak"`
	Distribution  map[int]int `json:"distribution"` // attempts → wins
}

// WinRate returns wins as a percentage of games played.
func (st Stats) WinRate() float64 {
	if st.Played == 0 {
		return 0
	}
	return float64(st.Wins) * 100 / float64(st.Played)
}

// Stats computes statistics over the player's games in finishing order.
func (s *Store) Stats(ctx context.Context, playerID string) (Stats, error) {
	st := Stats{Distribution: map[int]int{}}
	rows, err := s.db.QueryContext(ctx, `
        SELECT won, attempts FROM games
        WHERE player_id=?
        ORDER BY finished_at ASC, rowid ASC`, playerID)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var won bool
		var attempts int
		if err := rows.Scan(&won, &attempts); err != nil {
			return st, err
		}
		st.Played++
		if won {
			st.Wins++
			st.Distribution[attempts]++
			st.CurrentStreak++
			if st.CurrentStreak > st.MaxStreak {
				st.MaxStreak = st.CurrentStreak
			}
		} else {
			st.CurrentStreak = 0
		}
	}
	return st, rows.Err()
}

// ------------------------------- players -----------------------------------

// Player is a registered account for the server mode.
type Player struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// validateSignup enforces basic username/password rules.
func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return errors.New("username must be 3–24 chars")
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("username: letters, numbers, underscore only")
		}
	}
	if len(p) < 8 || len(p) > 72 {
		return errors.New("password must be 8–72 chars")
	}
	return nil
}

// CreatePlayer validates input, checks uniqueness, hashes the password and
// inserts a new player.
func (s *Store) CreatePlayer(ctx context.Context, username, password string) (*Player, error) {
	username = strings.TrimSpace(username)
	if err := validateSignup(username, password); err != nil {
		return nil, err
	}
	if _, err := s.FindPlayerByName(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	p := &Player{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(h),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		p.ID, p.Username, p.PasswordHash, p.CreatedAt.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	return p, nil
}

// FindPlayerByName loads a player by case-insensitive username.
func (s *Store) FindPlayerByName(ctx context.Context, username string) (*Player, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM players WHERE username=? COLLATE NOCASE`, username)
	return scanPlayer(row)
}

// FindPlayerByID loads a player by id.
func (s *Store) FindPlayerByID(ctx context.Context, id string) (*Player, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM players WHERE id=?`, id)
	return scanPlayer(row)
}

func scanPlayer(row *sql.Row) (*Player, error) {
	var p Player
	var created string
	if err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &p, nil
}

// CheckPassword is a bcrypt verifier.
func (p *Player) CheckPassword(pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(pw)) == nil
}
