// Package tui provides an interactive terminal workspace for deckwork.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/deckwork/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Workspace navigates, reorders and loads slides.
	Workspace driving.WorkspaceService

	// View controls zoom and pan of the preview.
	View driving.ViewService

	// Studio opens, rescans and watches the project.
	Studio driving.StudioService

	// Shortcuts maps logical actions to handlers and gates them
	// while the go-to prompt has focus.
	Shortcuts driving.ShortcutService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	workspace driving.WorkspaceService,
	view driving.ViewService,
	studio driving.StudioService,
	shortcuts driving.ShortcutService,
) *Ports {
	return &Ports{
		Workspace: workspace,
		View:      view,
		Studio:    studio,
		Shortcuts: shortcuts,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Workspace == nil {
		return ErrMissingWorkspaceService
	}
	if p.View == nil {
		return ErrMissingViewService
	}
	if p.Studio == nil {
		return ErrMissingStudioService
	}
	if p.Shortcuts == nil {
		return ErrMissingShortcutService
	}
	return nil
}
