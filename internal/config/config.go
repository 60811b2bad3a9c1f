// Package config reads process configuration from the environment, after
// loading a .env file from the working directory when one exists.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every tunable of the client and server modes.
type Config struct {
	LogLevel       string // LOG_LEVEL; "" means the mode's default
	HistoryDSN     string // WORDLE_DB; "" disables history
	DailySalt      string // DAILY_SALT
	Port           string // PORT (server)
	JWTSecret      string // JWT_SECRET (server)
	JWTExpiresDays int    // JWT_EXPIRES_DAYS (server)
	ClientOrigin   string // CLIENT_ORIGIN (server CORS)
	WordsFile      string // WORDS_FILE: corpus when no argument is given
	WatchWords     bool   // WORDS_WATCH: reload the corpus on change (server)
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		LogLevel:       os.Getenv("LOG_LEVEL"),
		HistoryDSN:     historyDSN(),
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
		Port:           getEnv("PORT", "5175"),
		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays: getInt("JWT_EXPIRES_DAYS", 14),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		WordsFile:      os.Getenv("WORDS_FILE"),
		WatchWords:     getBool("WORDS_WATCH", true),
	}
}

// historyDSN honours an explicitly empty WORDLE_DB as "disabled".
func historyDSN() string {
	if v, ok := os.LookupEnv("WORDLE_DB"); ok {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wordle", "history.db")
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

func getBool(k string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(k)); err == nil {
		return b
	}
	return def
}
