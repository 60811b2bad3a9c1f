// internal/store/memory.go
//
// In-memory session store for the multi-session server.
//
// Characteristics:
//   - Stores *Game values keyed by session ID.
//   - The map is guarded by an RWMutex; each session has its own mutex so
//     guesses on one game never wait on another, and two requests for the
//     same game are applied one at a time.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/go-term/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("not found")

// Game is a stored session plus who is playing it and how it was started.
type Game struct {
	Session  *game.Session
	PlayerID string // "" for guests
	Mode     string // "random" | "daily"
	Date     string // YYYY-MM-DD the secret was chosen for
}

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save adds a game, assigning a session ID when it has none.
	Save(ctx context.Context, g *Game) error

	// Update runs fn with exclusive access to the game.
	Update(ctx context.Context, id string, fn func(*Game) error) error

	// Sweep drops sessions started before cutoff and returns how many.
	Sweep(ctx context.Context, cutoff time.Time) int
}

type entry struct {
	mu sync.Mutex
	g  *Game
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry)}
}

func (m *memory) Save(ctx context.Context, g *Game) error {
	if g.Session.ID == "" {
		g.Session.ID = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[g.Session.ID] = &entry{g: g}
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*Game) error) error {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.g)
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		e.mu.Lock()
		old := e.g.Session.StartedAt.Before(cutoff)
		e.mu.Unlock()
		if old {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
