package mcp

import (
	"github.com/custodia-labs/deckwork/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Workspace lists, selects, reorders and loads slides.
	Workspace driving.WorkspaceService

	// View controls the preview zoom. Optional.
	View driving.ViewService

	// Studio describes and rescans the open project. Optional.
	Studio driving.StudioService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Workspace == nil {
		return ErrMissingWorkspaceService
	}
	return nil
}
