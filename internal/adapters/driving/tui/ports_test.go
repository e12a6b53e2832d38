package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckwork/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/services"
)

func validPorts() *Ports {
	files := memory.NewFileStore()
	canvas := services.NewCanvas(domain.DefaultWorkspaceSettings())
	workspace := services.NewWorkspace(services.NewDeck(), files, nil, nil)
	studio := services.NewStudio(services.StudioDeps{
		Scanner:   files,
		Poller:    services.NewFilePoller(files),
		Workspace: workspace,
		Canvas:    canvas,
	})
	return NewPorts(workspace, canvas, studio, services.NewShortcutDispatcher())
}

func TestNewPorts(t *testing.T) {
	ports := validPorts()

	require.NotNil(t, ports)
	assert.NotNil(t, ports.Workspace)
	assert.NotNil(t, ports.View)
	assert.NotNil(t, ports.Studio)
	assert.NotNil(t, ports.Shortcuts)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate_MissingPorts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Ports)
		want   error
	}{
		{"workspace", func(p *Ports) { p.Workspace = nil }, ErrMissingWorkspaceService},
		{"view", func(p *Ports) { p.View = nil }, ErrMissingViewService},
		{"studio", func(p *Ports) { p.Studio = nil }, ErrMissingStudioService},
		{"shortcuts", func(p *Ports) { p.Shortcuts = nil }, ErrMissingShortcutService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ports := validPorts()
			tt.mutate(ports)

			assert.ErrorIs(t, ports.Validate(), tt.want)
		})
	}
}
