package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

func TestSessionStore_SaveAndGet(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveSession(ctx, domain.SessionSnapshot{ProjectRoot: "/p", SlideID: "a", UpdatedAt: now}))
	require.NoError(t, store.SaveSession(ctx, domain.SessionSnapshot{ProjectRoot: "/p", SlideID: "b", UpdatedAt: now}))

	snap, err := store.GetSession(ctx, "/p")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "b", snap.SlideID)
	assert.Equal(t, now, snap.UpdatedAt)
}

func TestSessionStore_GetMissing(t *testing.T) {
	snap, err := NewSessionStore().GetSession(context.Background(), "/nowhere")

	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSessionStore_RejectsEmptyRoot(t *testing.T) {
	err := NewSessionStore().SaveSession(context.Background(), domain.SessionSnapshot{SlideID: "a"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
