package mcp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for deckwork.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "deckwork",
		Version: Version,
	}

	opts := &mcp.ServerOptions{
		Instructions: instructions(ports),
		Logger:       logger.Logger(),
	}
	if ports.Studio != nil {
		// Slide edits are only seen through the studio.
		opts.SubscribeHandler = handleSubscribe
		opts.UnsubscribeHandler = handleUnsubscribe
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, opts),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// instructions tells clients what the server can do with the given ports.
func instructions(p *Ports) string {
	var b strings.Builder
	b.WriteString("deckwork serves one slide deck. Use list_slides and get_status to inspect it. ")
	b.WriteString("select_slide, next_slide, previous_slide and move_slide change the selection or order ")
	b.WriteString("and load the current slide before returning. Slide positions are 1-based.")
	if p.View != nil {
		b.WriteString(" zoom changes the preview scale.")
	}
	if p.Studio != nil {
		b.WriteString(" rescan picks up added or removed slide files.")
		b.WriteString(" Subscribe to " + uriScheme + "slides/{slideId} to be notified when that slide file is edited,")
		b.WriteString(" and to " + uriScheme + "slides for changes to the slide list.")
	}
	return b.String()
}

func handleSubscribe(_ context.Context, req *mcp.SubscribeRequest) error {
	if !strings.HasPrefix(req.Params.URI, uriScheme) {
		return mcp.ResourceNotFoundError(req.Params.URI)
	}
	logger.Debug("mcp: subscribed", "uri", req.Params.URI)
	return nil
}

func handleUnsubscribe(_ context.Context, req *mcp.UnsubscribeRequest) error {
	logger.Debug("mcp: unsubscribed", "uri", req.Params.URI)
	return nil
}

// Follow takes over the studio's change handlers: edited slides and
// rescanned directories are reloaded, then subscribed clients are told
// which resources changed. Without a studio it does nothing.
func (s *Server) Follow(ctx context.Context) {
	studio := s.ports.Studio
	if studio == nil {
		return
	}

	studio.OnFileChange(func(change domain.FileChange, req *domain.LoadRequest) {
		var uris []string
		for _, sl := range s.ports.Workspace.Slides() {
			if sl.Path == change.Path {
				uris = append(uris, uriScheme+"slides/"+sl.ID)
				break
			}
		}
		go s.refresh(ctx, req, uris...)
	})
	studio.OnSlidesChanged(func(_ []domain.Slide, req *domain.LoadRequest) {
		go s.refresh(ctx, req, uriScheme+"slides", uriScheme+"project")
	})
}

// refresh loads req and announces uris as updated.
func (s *Server) refresh(ctx context.Context, req *domain.LoadRequest, uris ...string) {
	if err := s.load(ctx, req); err != nil {
		logger.Warn("mcp: reloading slide", "error", err)
	}
	for _, uri := range uris {
		if err := s.server.ResourceUpdated(ctx, &mcp.ResourceUpdatedNotificationParams{URI: uri}); err != nil {
			logger.Warn("mcp: resource update", "uri", uri, "error", err)
		}
	}
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// load fetches and applies the content of req. A request superseded while
// in flight is dropped by the workspace. Returns the fetch error, if any.
func (s *Server) load(ctx context.Context, req *domain.LoadRequest) error {
	if req == nil {
		return nil
	}
	res := s.ports.Workspace.Load(ctx, *req)
	s.ports.Workspace.Apply(res)
	return res.Err
}
