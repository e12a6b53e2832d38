package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.SessionSnapshot
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.SessionSnapshot),
	}
}

// SaveSession stores or replaces the snapshot of a project.
func (s *SessionStore) SaveSession(_ context.Context, snap domain.SessionSnapshot) error {
	if snap.ProjectRoot == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[snap.ProjectRoot] = snap
	return nil
}

// GetSession returns the snapshot of a project, or nil if none exists.
func (s *SessionStore) GetSession(_ context.Context, projectRoot string) (*domain.SessionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.sessions[projectRoot]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}
