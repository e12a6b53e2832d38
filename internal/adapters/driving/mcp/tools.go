package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

// EmptyInput is the input schema of tools without arguments.
type EmptyInput struct{}

// SelectSlideInput is the input schema for the select_slide tool.
// Exactly one of ID and Position should be set.
type SelectSlideInput struct {
	ID       string `json:"id,omitempty" jsonschema:"the id of the slide to select"`
	Position int    `json:"position,omitempty" jsonschema:"1-based position of the slide to select"`
}

// MoveSlideInput is the input schema for the move_slide tool.
type MoveSlideInput struct {
	From int `json:"from" jsonschema:"1-based position of the slide to move"`
	To   int `json:"to" jsonschema:"1-based target position"`
}

// ZoomInput is the input schema for the zoom tool.
type ZoomInput struct {
	Action string  `json:"action" jsonschema:"one of in, out, reset, fit or set"`
	Scale  float64 `json:"scale,omitempty" jsonschema:"target scale for the set action"`
}

// SlideOutput describes one slide of the deck.
type SlideOutput struct {
	Position int    `json:"position"`
	ID       string `json:"id"`
	Path     string `json:"path"`
	Current  bool   `json:"current"`
}

// ListSlidesOutput is the output schema for the list_slides tool.
type ListSlidesOutput struct {
	Slides    []SlideOutput `json:"slides"`
	Count     int           `json:"count"`
	CurrentID string        `json:"current_id,omitempty"`
}

// StatusOutput is the output schema of tools reporting workspace state.
type StatusOutput struct {
	Project    string  `json:"project,omitempty"`
	CurrentID  string  `json:"current_id,omitempty"`
	Position   int     `json:"position"`
	Total      int     `json:"total"`
	Progress   float64 `json:"progress"`
	Loading    bool    `json:"loading"`
	HasContent bool    `json:"has_content"`
	Scale      float64 `json:"scale,omitempty"`
	LoadError  string  `json:"load_error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_slides",
		Description: "List the slides of the open deck in display order",
	}, s.handleListSlides)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_status",
		Description: "Report the current slide, progress and zoom",
	}, s.handleGetStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_slide",
		Description: "Select a slide by id or position and load its content",
	}, s.handleSelectSlide)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "next_slide",
		Description: "Advance to the next slide",
	}, s.handleNextSlide)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "previous_slide",
		Description: "Go back to the previous slide",
	}, s.handlePreviousSlide)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "move_slide",
		Description: "Move a slide to another position in the deck",
	}, s.handleMoveSlide)

	if s.ports.View != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "zoom",
			Description: "Zoom the preview in or out, reset it, fit it or set an exact scale",
		}, s.handleZoom)
	}

	if s.ports.Studio != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "rescan",
			Description: "Re-read the slide directory of the open project",
		}, s.handleRescan)
	}
}

func (s *Server) handleListSlides(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ListSlidesOutput, error) {
	return nil, s.listSlides(), nil
}

func (s *Server) handleGetStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	return nil, s.status(nil), nil
}

func (s *Server) handleSelectSlide(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SelectSlideInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	id := input.ID
	if id == "" {
		slides := s.ports.Workspace.Slides()
		if input.Position < 1 || input.Position > len(slides) {
			return nil, StatusOutput{}, fmt.Errorf("%w: position %d of %d", ErrSlideNotFound, input.Position, len(slides))
		}
		id = slides[input.Position-1].ID
	} else if indexOf(s.ports.Workspace.Slides(), id) < 0 {
		return nil, StatusOutput{}, fmt.Errorf("%w: %s", ErrSlideNotFound, id)
	}

	req := s.ports.Workspace.SelectSlide(id)
	return nil, s.status(s.load(ctx, req)), nil
}

func (s *Server) handleNextSlide(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	req := s.ports.Workspace.NextSlide()
	return nil, s.status(s.load(ctx, req)), nil
}

func (s *Server) handlePreviousSlide(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	req := s.ports.Workspace.PreviousSlide()
	return nil, s.status(s.load(ctx, req)), nil
}

func (s *Server) handleMoveSlide(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MoveSlideInput,
) (*mcp.CallToolResult, ListSlidesOutput, error) {
	total := len(s.ports.Workspace.Slides())
	if input.From < 1 || input.From > total || input.To < 1 || input.To > total {
		return nil, ListSlidesOutput{}, fmt.Errorf(
			"%w: move %d to %d in a deck of %d", domain.ErrInvalidInput, input.From, input.To, total)
	}

	req := s.ports.Workspace.ApplyReorder(domain.ReorderCommand{From: input.From - 1, To: input.To - 1})
	s.load(ctx, req)
	return nil, s.listSlides(), nil
}

func (s *Server) handleZoom(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ZoomInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	view := s.ports.View
	switch input.Action {
	case "in":
		view.ZoomIn()
	case "out":
		view.ZoomOut()
	case "reset":
		view.Reset()
	case "fit":
		view.ResetToFit()
	case "set":
		if input.Scale <= 0 {
			return nil, StatusOutput{}, fmt.Errorf("%w: scale must be positive", domain.ErrInvalidInput)
		}
		view.SetScale(input.Scale)
	default:
		return nil, StatusOutput{}, fmt.Errorf("%w: unknown zoom action %q", domain.ErrInvalidInput, input.Action)
	}
	return nil, s.status(nil), nil
}

func (s *Server) handleRescan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ListSlidesOutput, error) {
	req, err := s.ports.Studio.Rescan(ctx)
	if err != nil {
		return nil, ListSlidesOutput{}, fmt.Errorf("rescanning slides: %w", err)
	}
	s.load(ctx, req)
	return nil, s.listSlides(), nil
}

func (s *Server) listSlides() ListSlidesOutput {
	slides := s.ports.Workspace.Slides()
	current := s.ports.Workspace.State().CurrentSlideID

	out := ListSlidesOutput{
		Slides:    make([]SlideOutput, len(slides)),
		Count:     len(slides),
		CurrentID: current,
	}
	for i, sl := range slides {
		out.Slides[i] = SlideOutput{
			Position: i + 1,
			ID:       sl.ID,
			Path:     sl.Path,
			Current:  sl.ID == current,
		}
	}
	return out
}

// status snapshots the workspace. loadErr is the failure of the load the
// calling tool just ran, if any.
func (s *Server) status(loadErr error) StatusOutput {
	state := s.ports.Workspace.State()
	slides := s.ports.Workspace.Slides()

	out := StatusOutput{
		CurrentID:  state.CurrentSlideID,
		Position:   indexOf(slides, state.CurrentSlideID) + 1,
		Total:      len(slides),
		Progress:   state.Progress,
		Loading:    state.Loading,
		HasContent: state.HasContent,
	}
	if s.ports.View != nil {
		out.Scale = s.ports.View.Scale()
	}
	if s.ports.Studio != nil {
		if info, ok := s.ports.Studio.Project(); ok {
			out.Project = info.Name.Name
		}
	}
	if loadErr != nil {
		out.LoadError = loadErr.Error()
	}
	return out
}

func indexOf(slides []domain.Slide, id string) int {
	if id == "" {
		return -1
	}
	for i, sl := range slides {
		if sl.ID == id {
			return i
		}
	}
	return -1
}
