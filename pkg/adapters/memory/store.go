package memory

import (
	"context"
	"sync"

	"github.com/aretw0/rechat/pkg/domain"
)

// Store implements ports.StateStore in memory.
// Safe for concurrent use. ConversationState is a value, so no copying is needed
// to keep callers from mutating stored sessions.
type Store struct {
	data map[string]domain.ConversationState
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.ConversationState),
	}
}

// Save persists the state in memory.
func (s *Store) Save(ctx context.Context, sessionID string, state domain.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = state
	return nil
}

// Load retrieves the state from memory.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.data[sessionID]
	if !ok {
		return domain.ConversationState{}, domain.ErrSessionNotFound
	}
	return state, nil
}

// Delete removes the state.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns active sessions.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
