package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for deckwork resources.
	uriScheme = "deckwork://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "slides",
		Name:        "slides",
		Description: "Slides of the open deck in display order",
		MIMEType:    "application/json",
	}, s.handleSlidesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "slides/{slideId}",
		Name:        "slide-content",
		Description: "SVG document of a specific slide",
		MIMEType:    "image/svg+xml",
	}, s.handleSlideContentResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "project",
		Name:        "project",
		Description: "Name, canvas format and date of the open project",
		MIMEType:    "application/json",
	}, s.handleProjectResource)
}

// handleSlidesResource returns the slide list.
func (s *Server) handleSlidesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(s.listSlides().Slides, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling slides: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSlideContentResource returns the document of one slide.
// The read does not change the selection.
func (s *Server) handleSlideContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	slideID := extractSlideID(req.Params.URI)
	if slideID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	slides := s.ports.Workspace.Slides()
	idx := indexOf(slides, slideID)
	if idx < 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	res := s.ports.Workspace.Load(ctx, domain.LoadRequest{SlideID: slideID, Path: slides[idx].Path})
	if res.Err != nil {
		return nil, fmt.Errorf("reading slide content: %w", res.Err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "image/svg+xml",
			Text:     res.Content,
		}},
	}, nil
}

// handleProjectResource describes the open project.
func (s *Server) handleProjectResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Studio == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	info, ok := s.ports.Studio.Project()
	if !ok {
		return nil, domain.ErrNoProject
	}

	type projectInfo struct {
		Root       string `json:"root"`
		Name       string `json:"name"`
		Format     string `json:"format"`
		Date       string `json:"date,omitempty"`
		Width      int    `json:"width,omitempty"`
		Height     int    `json:"height,omitempty"`
		SlideCount int    `json:"slide_count"`
	}

	out := projectInfo{
		Root:       info.Root,
		Name:       info.Name.Name,
		Format:     info.Name.Format,
		Date:       info.Name.DateFormatted,
		SlideCount: len(s.ports.Workspace.Slides()),
	}
	if canvas, ok := info.Canvas(); ok {
		out.Width, out.Height = canvas.Width, canvas.Height
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling project: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSlideID extracts the slide ID from a URI like deckwork://slides/{slideId}.
// Slide ids may contain slashes.
func extractSlideID(uri string) string {
	const prefix = uriScheme + "slides/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
