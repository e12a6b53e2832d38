package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driven"
)

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// SaveSession stores or replaces the snapshot of a project.
func (s *sessionStore) SaveSession(ctx context.Context, snap domain.SessionSnapshot) error {
	if snap.ProjectRoot == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO workspace_sessions (project_root, slide_id, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(project_root) DO UPDATE SET
			slide_id = excluded.slide_id,
			updated_at = excluded.updated_at
	`, snap.ProjectRoot, snap.SlideID, snap.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// GetSession returns the snapshot of a project.
// Returns nil and no error if none exists.
func (s *sessionStore) GetSession(ctx context.Context, projectRoot string) (*domain.SessionSnapshot, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT project_root, slide_id, updated_at
		FROM workspace_sessions WHERE project_root = ?
	`, projectRoot)

	var snap domain.SessionSnapshot
	var updatedAt string
	if err := row.Scan(&snap.ProjectRoot, &snap.SlideID, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing session time: %w", err)
	}
	snap.UpdatedAt = t
	return &snap, nil
}
