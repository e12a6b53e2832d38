package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckwork/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/services"
)

const projectRoot = "/decks/intro_ppt169_20250101"

func slidePath(name string) string {
	return projectRoot + "/svg_output/" + name + ".svg"
}

type serverFixture struct {
	server    *Server
	files     *memory.FileStore
	workspace *services.Workspace
	canvas    *services.Canvas
	studio    *services.Studio
}

// newServerFixture opens an in-memory project and serves it.
func newServerFixture(t *testing.T, names ...string) *serverFixture {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	files := memory.NewFileStore()
	for _, n := range names {
		files.Write(slidePath(n), "<svg>"+n+"</svg>", clock.Now())
	}

	canvas := services.NewCanvas(domain.DefaultWorkspaceSettings())
	workspace := services.NewWorkspace(services.NewDeck(), files, nil, nil)
	studio := services.NewStudio(services.StudioDeps{
		Scanner:   files,
		Poller:    services.NewFilePoller(files, services.WithClock(clock)),
		Workspace: workspace,
		Canvas:    canvas,
		Clock:     clock,
	})
	t.Cleanup(func() { _ = studio.Close(context.Background()) })

	server, err := NewServer(&Ports{Workspace: workspace, View: canvas, Studio: studio})
	require.NoError(t, err)

	_, req, err := studio.Open(context.Background(), projectRoot)
	require.NoError(t, err)
	require.NoError(t, server.load(context.Background(), req))

	return &serverFixture{
		server:    server,
		files:     files,
		workspace: workspace,
		canvas:    canvas,
		studio:    studio,
	}
}
