package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists session state between requests. Implementations must return
// a *NotFoundError from Load for unknown ids. Callers serialize access per
// session id; the store itself only needs to be safe for concurrent use
// across different sessions.
type Store interface {
	Load(ctx context.Context, id uuid.UUID) (*State, error)
	Save(ctx context.Context, state *State) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemoryStore is the default in-process store. Sessions expire after the
// configured TTL measured from their last update; Sweep removes expired ones.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*State
	ttl      time.Duration
}

// NewMemoryStore creates an in-memory store. A non-positive TTL disables
// expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*State),
		ttl:      ttl,
	}
}

// Load returns a copy of the stored state
func (s *MemoryStore) Load(_ context.Context, id uuid.UUID) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return state.Clone(), nil
}

// Save stores a copy of the state
func (s *MemoryStore) Save(_ context.Context, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[state.ID] = state.Clone()
	return nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Sweep removes sessions whose last update is older than the TTL and returns
// how many were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, state := range s.sessions {
		if now.Sub(state.UpdatedAt) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
