package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driving"
)

var (
	watchInterval    time.Duration
	watchMetricsAddr string
	watchURL         string
)

var watchCmd = &cobra.Command{
	Use:   "watch [project | paths...]",
	Short: "Log slide edits without the terminal UI",
	Long: `Open a project and print a line whenever a slide file is edited or the
slide directory changes. The current slide is reloaded on every edit.

With --url, the arguments are slide paths relative to the URL and their
Last-Modified headers are polled instead of local files.

Examples:
  deckwork watch ./quarterly_ppt169_20250101
  deckwork watch --interval 500ms
  deckwork watch --url http://localhost:8000/svg_output 01.svg 02.svg
  deckwork watch --metrics-addr :9090`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "poll interval (default from settings)")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	watchCmd.Flags().StringVar(&watchURL, "url", "", "poll slides served from this base URL")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchURL == "" && len(args) > 1 {
		return fmt.Errorf("%w: watch takes one project directory", domain.ErrInvalidInput)
	}
	if watchURL != "" && len(args) == 0 {
		return fmt.Errorf("%w: --url needs at least one slide path", domain.ErrInvalidInput)
	}

	session, err := newSession(SessionOptions{PollInterval: watchInterval, BaseURL: watchURL})
	if err != nil {
		return err
	}
	defer closeSession(cmd, session)

	ctx := cmd.Context()
	out := &linePrinter{cmd: cmd}

	if watchMetricsAddr != "" {
		stop, err := serveMetrics(ctx, watchMetricsAddr, session.Metrics)
		if err != nil {
			return err
		}
		defer stop()
		out.Printf("metrics on http://%s/metrics\n", watchMetricsAddr)
	}

	if watchURL != "" {
		return watchRemote(ctx, session, out, args)
	}
	return watchProject(ctx, session, out, projectArg(args))
}

// watchProject opens a local project and logs its changes until ctx ends.
func watchProject(ctx context.Context, session *Session, out *linePrinter, root string) error {
	studio := session.Studio
	workspace := session.Workspace

	studio.OnFileChange(func(change domain.FileChange, req *domain.LoadRequest) {
		out.Printf("%s  changed  %s\n", change.Current.Format(time.TimeOnly), filepath.Base(change.Path))
		reload(ctx, workspace, req)
	})
	studio.OnSlidesChanged(func(slides []domain.Slide, req *domain.LoadRequest) {
		out.Printf("slide directory changed: %d slides\n", len(slides))
		reload(ctx, workspace, req)
	})

	info, req, err := studio.Open(ctx, root)
	if err != nil {
		return fmt.Errorf("open project: %w", err)
	}
	if req != nil {
		workspace.Apply(workspace.Load(ctx, *req))
	}

	out.Printf("watching %d slides in %s (Ctrl+C to stop)\n", info.SlideCount, info.SlideDir)
	if current, ok := workspace.Current(); ok {
		out.Printf("current slide: %s\n", filepath.Base(current.Path))
	}

	<-ctx.Done()
	return nil
}

// reload loads req off the caller's goroutine, which may be the poller.
func reload(ctx context.Context, workspace driving.WorkspaceService, req *domain.LoadRequest) {
	if req == nil {
		return
	}
	go func() {
		workspace.Apply(workspace.Load(ctx, *req))
	}()
}

// watchRemote polls explicit paths on an HTTP server until ctx ends.
func watchRemote(ctx context.Context, session *Session, out *linePrinter, paths []string) error {
	if session.Poller == nil {
		return errors.New("poller not configured")
	}

	token := session.Poller.Watch(ctx, watchURL, paths, func(change domain.FileChange) {
		out.Printf("%s  changed  %s\n", change.Current.Format(time.TimeOnly), change.Path)
	})
	defer session.Poller.Stop()

	out.Printf("watching %d slides at %s (session %d, Ctrl+C to stop)\n", len(paths), watchURL, token)

	<-ctx.Done()
	return nil
}

// serveMetrics starts an HTTP server exposing handler at /metrics.
func serveMetrics(ctx context.Context, addr string, handler http.Handler) (func(), error) {
	if handler == nil {
		return nil, errors.New("metrics not configured")
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go srv.Serve(ln) //nolint:errcheck

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}, nil
}

// linePrinter serialises output from the poller and directory watcher.
type linePrinter struct {
	mu  sync.Mutex
	cmd *cobra.Command
}

func (p *linePrinter) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cmd.Printf(format, args...)
}
