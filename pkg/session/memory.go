package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	bferrors "github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/game"
)

// MemoryStore is an in-memory session registry.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	ttl     time.Duration
	limit   int
	now     func() time.Time
}

// NewMemoryStore creates a registry whose sessions expire after ttl of
// inactivity, holding at most limit sessions. Non-positive values use the
// package defaults.
func NewMemoryStore(ttl time.Duration, limit int) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if limit <= 0 {
		limit = DefaultMaxSessions
	}
	return &MemoryStore{
		entries: make(map[string]*Entry),
		ttl:     ttl,
		limit:   limit,
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, opts game.Options) (*Entry, error) {
	g, err := game.New(opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.limit {
		s.removeExpiredLocked()
	}
	if len(s.entries) >= s.limit {
		return nil, bferrors.New(bferrors.ErrCodeTooManySessions, "session limit of %d reached", s.limit)
	}

	now := s.now()
	e := &Entry{
		ID:        uuid.NewString(),
		CreatedAt: now,
		game:      g,
		expiresAt: now.Add(s.ttl),
	}
	s.entries[e.ID] = e
	return e, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, notFound(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, notFound(id)
	}
	now := s.now()
	if now.After(e.expiresAt) {
		delete(s.entries, id)
		return nil, notFound(id)
	}
	e.expiresAt = now.Add(s.ttl)
	return e, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return notFound(id)
	}
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) Cleanup(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeExpiredLocked(), nil
}

func (s *MemoryStore) Each(ctx context.Context, fn func(*Entry)) {
	s.mu.RLock()
	live := make([]*Entry, 0, len(s.entries))
	now := s.now()
	for _, e := range s.entries {
		if !now.After(e.expiresAt) {
			live = append(live, e)
		}
	}
	s.mu.RUnlock()

	for _, e := range live {
		if ctx.Err() != nil {
			return
		}
		fn(e)
	}
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) removeExpiredLocked() int {
	now := s.now()
	n := 0
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

func notFound(id string) error {
	return bferrors.New(bferrors.ErrCodeSessionNotFound, "session %q not found", id)
}

var _ Store = (*MemoryStore)(nil)
