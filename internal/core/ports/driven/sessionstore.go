package driven

import (
	"context"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

// SessionStore remembers per-project workspace state between runs.
type SessionStore interface {
	// SaveSession stores or replaces the snapshot for snap.ProjectRoot.
	SaveSession(ctx context.Context, snap domain.SessionSnapshot) error

	// GetSession returns the snapshot for a project root.
	// Returns nil and no error if none exists.
	GetSession(ctx context.Context, projectRoot string) (*domain.SessionSnapshot, error)
}
