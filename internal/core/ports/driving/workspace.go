package driving

import (
	"context"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

// WorkspaceService navigates and reorders the slides of an open project.
// Mutations return the content request they caused, or nil.
type WorkspaceService interface {
	Slides() []domain.Slide
	Current() (domain.Slide, bool)

	SelectSlide(id string) *domain.LoadRequest
	ReorderSlide(from, to int) *domain.LoadRequest
	ApplyReorder(cmd domain.ReorderCommand) *domain.LoadRequest
	NextSlide() *domain.LoadRequest
	PreviousSlide() *domain.LoadRequest
	Refresh(path string) *domain.LoadRequest

	// Load fetches the content of a request without applying it.
	Load(ctx context.Context, req domain.LoadRequest) domain.LoadResult

	// Apply stores a result if it answers the latest request.
	Apply(res domain.LoadResult) bool

	State() domain.WorkspaceState
	Progress() float64
}

// ViewService controls the zoom and pan of the preview canvas.
type ViewService interface {
	SetScale(scale float64)
	ZoomIn()
	ZoomOut()
	Pan(dx, dy float64)
	Reset()
	ResetToFit()
	Transform() domain.ViewTransform
	Scale() float64
	Bounds() (minScale, maxScale float64)

	// OnZoom and OnFit replace the listeners notified of scale changes
	// and fit requests.
	OnZoom(fn func(scale float64))
	OnFit(fn func())
}

// ShortcutService runs the handler bound to a logical action.
// Dispatch reports false while disabled or when nothing is bound.
type ShortcutService interface {
	Bind(action domain.Action, handler func())
	Dispatch(action domain.Action) bool
	SetEnabled(enabled bool)
	Enabled() bool
}

// FileChangeHandler receives a detected edit together with the reload it
// caused, if the edited file is the current slide.
type FileChangeHandler func(change domain.FileChange, req *domain.LoadRequest)

// SlidesChangedHandler receives the rescanned slides and the resulting load.
type SlidesChangedHandler func(slides []domain.Slide, req *domain.LoadRequest)

// StudioService opens and watches a project.
type StudioService interface {
	// Open scans root, restores the last selection and starts watching.
	Open(ctx context.Context, root string) (*domain.ProjectInfo, *domain.LoadRequest, error)

	// Rescan re-reads the slide list of the open project.
	Rescan(ctx context.Context) (*domain.LoadRequest, error)

	// PollNow checks watched files for edits immediately.
	PollNow(ctx context.Context) error

	// Close stops watching and remembers the selection.
	Close(ctx context.Context) error

	// Project returns the open project, if any.
	Project() (domain.ProjectInfo, bool)

	// OnFileChange and OnSlidesChanged replace the default background
	// reload with a caller-supplied handler.
	OnFileChange(fn FileChangeHandler)
	OnSlidesChanged(fn SlidesChangedHandler)
}

// WatchService polls a fixed set of paths for timestamp increases.
type WatchService interface {
	// Watch starts a session and returns its token. Watching the active
	// (root, paths) pair again is a no-op.
	Watch(ctx context.Context, root string, paths []string, onChange func(domain.FileChange)) domain.SessionToken

	// Stop ends the active session.
	Stop()

	// PollNow runs one poll of the active session.
	PollNow(ctx context.Context) error
}
