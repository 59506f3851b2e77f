// Package session keeps live game sessions for the HTTP API.
//
// Sessions live in memory only and expire after a period of inactivity.
// Every [Entry] serializes access to its game, so handlers for the same
// session never interleave.
//
// # Usage
//
//	store := session.NewMemoryStore(30*time.Minute, 1000)
//
//	e, err := store.Create(ctx, game.Options{Seed: 7})
//	if err != nil {
//	    return err
//	}
//
//	e, err = store.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeSessionNotFound) {
//	    // unknown or expired
//	}
//	err = e.Do(func(g *game.Session) error {
//	    _, err := g.RequestPlacement(row, col)
//	    return err
//	})
package session

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/blockfill/pkg/game"
)

// Default limits.
const (
	// DefaultTTL is how long an untouched session survives.
	DefaultTTL = 30 * time.Minute

	// DefaultMaxSessions bounds the number of live sessions.
	DefaultMaxSessions = 1000
)

// Entry is one registered game session.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	mu        sync.Mutex
	game      *game.Session
	expiresAt time.Time
}

// Do runs fn with exclusive access to the session's game.
func (e *Entry) Do(fn func(g *game.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.game)
}

// Snapshot returns the game state under the entry lock.
func (e *Entry) Snapshot() game.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Snapshot()
}

// Store is the interface for session registries.
type Store interface {
	// Create starts a new game and registers it under a fresh ID.
	Create(ctx context.Context, opts game.Options) (*Entry, error)

	// Get returns a live session and extends its lifetime.
	// Unknown and expired IDs yield a SESSION_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Entry, error)

	// Delete removes a session. Deleting an unknown ID is a SESSION_NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and reports how many were removed.
	Cleanup(ctx context.Context) (int, error)

	// Each calls fn for every live session.
	Each(ctx context.Context, fn func(*Entry))

	// Len returns the number of registered sessions, expired or not.
	Len() int
}
