package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driven"
	"github.com/custodia-labs/deckwork/internal/core/ports/driving"
	"github.com/custodia-labs/deckwork/internal/logger"
)

// Ensure Studio implements the interface.
var _ driving.StudioService = (*Studio)(nil)

// StudioDeps groups the collaborators of a Studio.
// DirWatcher, Sessions, Reporter and Clock are optional.
type StudioDeps struct {
	Scanner    driven.SlideScanner
	DirWatcher driven.DirectoryWatcher
	Sessions   driven.SessionStore
	Poller     *FilePoller
	Workspace  *Workspace
	Canvas     *Canvas
	Reporter   driven.ErrorReporter
	Clock      clockwork.Clock
}

// Studio ties the workspace engine to one open project: it scans slides,
// watches their files and the slide directory, and remembers the selection.
type Studio struct {
	scanner    driven.SlideScanner
	dirWatcher driven.DirectoryWatcher
	sessions   driven.SessionStore
	poller     *FilePoller
	workspace  *Workspace
	canvas     *Canvas
	reporter   driven.ErrorReporter
	clock      clockwork.Clock

	mu              sync.Mutex
	project         *domain.ProjectInfo
	ctx             context.Context
	cancel          context.CancelFunc
	stopDir         func() error
	onFileChange    driving.FileChangeHandler
	onSlidesChanged driving.SlidesChangedHandler
}

// NewStudio creates a studio with no project open.
func NewStudio(deps StudioDeps) *Studio {
	s := &Studio{
		scanner:    deps.Scanner,
		dirWatcher: deps.DirWatcher,
		sessions:   deps.Sessions,
		poller:     deps.Poller,
		workspace:  deps.Workspace,
		canvas:     deps.Canvas,
		reporter:   deps.Reporter,
		clock:      deps.Clock,
	}
	if s.reporter == nil {
		s.reporter = nopReporter{}
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	return s
}

// OnFileChange sets the handler for detected edits. Without a handler the
// studio reloads the current slide on its own.
func (s *Studio) OnFileChange(fn driving.FileChangeHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFileChange = fn
}

// OnSlidesChanged sets the handler for background rescans. Without a
// handler the studio loads the resulting request on its own.
func (s *Studio) OnSlidesChanged(fn driving.SlidesChangedHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSlidesChanged = fn
}

// Workspace returns the coordinator of the studio.
func (s *Studio) Workspace() *Workspace {
	return s.workspace
}

// Canvas returns the view state of the studio.
func (s *Studio) Canvas() *Canvas {
	return s.canvas
}

// Open scans the project at root and starts watching it.
// Any previously open project is closed first.
func (s *Studio) Open(ctx context.Context, root string) (*domain.ProjectInfo, *domain.LoadRequest, error) {
	if root == "" {
		return nil, nil, fmt.Errorf("%w: project root is required", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve project root: %w", err)
	}

	if err := s.Close(ctx); err != nil {
		logger.Warn("studio: closing previous project", "error", err)
	}

	logger.Section("Open Project")

	slides, err := s.scanner.ScanSlides(ctx, abs)
	if err != nil {
		return nil, nil, fmt.Errorf("scan slides: %w", err)
	}

	dirName := filepath.Base(abs)
	info := &domain.ProjectInfo{
		Root:       abs,
		DirName:    dirName,
		Name:       domain.ParseProjectName(dirName),
		SlideDir:   s.scanner.SlideDir(abs),
		SlideCount: len(slides),
	}
	logger.Info("studio: project opened", "root", abs, "slides", len(slides), "format", info.Name.Format)

	preferred := ""
	if s.sessions != nil {
		snap, err := s.sessions.GetSession(ctx, abs)
		if err != nil {
			logger.Warn("studio: reading session", "root", abs, "error", err)
		} else if snap != nil {
			preferred = snap.SlideID
		}
	}

	req := s.workspace.Restore(slides, preferred)
	s.canvas.Reset()

	sctx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	s.mu.Lock()
	s.project = info
	s.ctx = sctx
	s.cancel = cancel
	s.mu.Unlock()

	s.poller.Watch(sctx, abs, slidePaths(slides), s.handleFileChange)

	if s.dirWatcher != nil {
		stop, err := s.dirWatcher.WatchDir(sctx, info.SlideDir, s.handleDirChange)
		if err != nil {
			logger.Warn("studio: slide directory not watched", "dir", info.SlideDir, "error", err)
		} else {
			s.mu.Lock()
			s.stopDir = stop
			s.mu.Unlock()
		}
	}

	return info, req, nil
}

// Rescan re-reads the slide list of the open project.
func (s *Studio) Rescan(ctx context.Context) (*domain.LoadRequest, error) {
	s.mu.Lock()
	project := s.project
	sctx := s.ctx
	s.mu.Unlock()

	if project == nil {
		return nil, domain.ErrNoProject
	}

	slides, err := s.scanner.ScanSlides(ctx, project.Root)
	if err != nil {
		return nil, fmt.Errorf("scan slides: %w", err)
	}

	s.mu.Lock()
	current := s.project == project
	if current {
		s.project.SlideCount = len(slides)
	}
	s.mu.Unlock()
	if !current {
		return nil, domain.ErrNoProject
	}

	req := s.workspace.SetSlides(slides)
	s.poller.Watch(sctx, project.Root, slidePaths(slides), s.handleFileChange)

	logger.Debug("studio: rescanned", "root", project.Root, "slides", len(slides))
	return req, nil
}

// PollNow checks the slide files for edits immediately.
func (s *Studio) PollNow(ctx context.Context) error {
	if _, ok := s.Project(); !ok {
		return domain.ErrNoProject
	}
	return s.poller.PollNow(ctx)
}

// Close stops watching and remembers the current selection.
// Closing when no project is open is a no-op.
func (s *Studio) Close(ctx context.Context) error {
	s.mu.Lock()
	project := s.project
	cancel := s.cancel
	stopDir := s.stopDir
	s.project, s.cancel, s.stopDir, s.ctx = nil, nil, nil, nil
	s.mu.Unlock()

	if project == nil {
		return nil
	}

	s.poller.Stop()
	if stopDir != nil {
		if err := stopDir(); err != nil {
			logger.Warn("studio: stopping directory watch", "error", err)
		}
	}
	if cancel != nil {
		cancel()
	}

	if s.sessions == nil {
		return nil
	}
	snap := domain.SessionSnapshot{
		ProjectRoot: project.Root,
		SlideID:     s.workspace.Deck().CurrentID(),
		UpdatedAt:   s.clock.Now(),
	}
	if err := s.sessions.SaveSession(ctx, snap); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Project returns the open project.
func (s *Studio) Project() (domain.ProjectInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return domain.ProjectInfo{}, false
	}
	return *s.project, true
}

func (s *Studio) handleFileChange(change domain.FileChange) {
	req := s.workspace.Refresh(change.Path)

	s.mu.Lock()
	fn := s.onFileChange
	ctx := s.ctx
	s.mu.Unlock()

	if fn != nil {
		fn(change, req)
		return
	}
	if req != nil && ctx != nil {
		s.workspace.LoadAsync(ctx, req)
	}
}

func (s *Studio) handleDirChange() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		return
	}

	req, err := s.Rescan(ctx)
	if errors.Is(err, domain.ErrNoProject) {
		// Closed while the rescan was pending.
		return
	}
	if err != nil {
		s.reporter.ReportError(err)
		return
	}

	s.mu.Lock()
	fn := s.onSlidesChanged
	s.mu.Unlock()

	if fn != nil {
		fn(s.workspace.Slides(), req)
		return
	}
	if req != nil {
		s.workspace.LoadAsync(ctx, req)
	}
}

func slidePaths(slides []domain.Slide) []string {
	paths := make([]string, len(slides))
	for i, sl := range slides {
		paths[i] = sl.Path
	}
	return paths
}
