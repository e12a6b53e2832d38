package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driven"
	"github.com/custodia-labs/deckwork/internal/core/ports/driving"
	"github.com/custodia-labs/deckwork/internal/logger"
)

// Ensure Workspace implements the interface.
var _ driving.WorkspaceService = (*Workspace)(nil)

// Workspace coordinates the deck selection with content loading.
//
// Every mutation re-evaluates the selection. A selection that points at a
// different slide (or a slide whose path changed) yields exactly one
// LoadRequest with a new sequence number. Results are applied only when
// their sequence number is the latest one issued, so a slow fetch for an
// earlier selection can never overwrite the current content.
type Workspace struct {
	deck     *Deck
	fetcher  driven.ContentFetcher
	reporter driven.ErrorReporter
	metrics  driven.Metrics

	// opMu serializes a deck mutation with the reconcile that follows it.
	opMu sync.Mutex

	mu         sync.Mutex
	seq        uint64
	targetID   string
	targetPath string
	content    string
	hasContent bool
	loading    bool
}

// NewWorkspace creates a workspace over deck.
// reporter and metrics may be nil.
func NewWorkspace(
	deck *Deck,
	fetcher driven.ContentFetcher,
	reporter driven.ErrorReporter,
	metrics driven.Metrics,
) *Workspace {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Workspace{
		deck:     deck,
		fetcher:  fetcher,
		reporter: reporter,
		metrics:  metrics,
	}
}

// Deck returns the underlying slide deck.
func (w *Workspace) Deck() *Deck {
	return w.deck
}

// SetSlides replaces the slide collection.
func (w *Workspace) SetSlides(slides []domain.Slide) *domain.LoadRequest {
	w.opMu.Lock()
	defer w.opMu.Unlock()

	w.deck.SetSlides(slides)
	return w.reconcile(false)
}

// Restore replaces the slide collection and selects preferredID when it
// exists, falling back to the usual default selection otherwise. The
// selected slide is always requested again.
func (w *Workspace) Restore(slides []domain.Slide, preferredID string) *domain.LoadRequest {
	w.opMu.Lock()
	defer w.opMu.Unlock()

	w.deck.SetSlides(slides)
	if !w.deck.Select(preferredID) && w.deck.IndexOf(w.deck.CurrentID()) < 0 && len(slides) > 0 {
		w.deck.Select(slides[0].ID)
	}
	return w.reconcile(true)
}

// SelectSlide selects the slide with the given id. Unknown ids are ignored.
func (w *Workspace) SelectSlide(id string) *domain.LoadRequest {
	w.opMu.Lock()
	defer w.opMu.Unlock()

	w.deck.Select(id)
	return w.reconcile(false)
}

// ReorderSlide moves the slide at from to position to.
func (w *Workspace) ReorderSlide(from, to int) *domain.LoadRequest {
	return w.ApplyReorder(domain.ReorderCommand{From: from, To: to})
}

// ApplyReorder performs a reorder command.
func (w *Workspace) ApplyReorder(cmd domain.ReorderCommand) *domain.LoadRequest {
	w.opMu.Lock()
	defer w.opMu.Unlock()

	w.deck.Apply(cmd)
	return w.reconcile(false)
}

// NextSlide selects the following slide.
func (w *Workspace) NextSlide() *domain.LoadRequest {
	w.opMu.Lock()
	defer w.opMu.Unlock()

	w.deck.Next()
	return w.reconcile(false)
}

// PreviousSlide selects the preceding slide.
func (w *Workspace) PreviousSlide() *domain.LoadRequest {
	w.opMu.Lock()
	defer w.opMu.Unlock()

	w.deck.Previous()
	return w.reconcile(false)
}

// Refresh re-requests the current content when path is the current slide's file.
func (w *Workspace) Refresh(path string) *domain.LoadRequest {
	w.opMu.Lock()
	defer w.opMu.Unlock()

	slide, ok := w.deck.Current()
	if !ok || slide.Path != path {
		return nil
	}
	return w.reconcile(true)
}

// reconcile evaluates the selection rules after a mutation.
// Caller must hold opMu.
func (w *Workspace) reconcile(force bool) *domain.LoadRequest {
	if w.deck.CurrentID() == "" && w.deck.Len() > 0 {
		w.deck.Select(w.deck.Slides()[0].ID)
	}

	slide, ok := w.deck.Current()

	w.mu.Lock()
	defer w.mu.Unlock()

	if !ok {
		if w.targetID != "" || w.loading {
			// Invalidate whatever is in flight.
			w.seq++
		}
		w.targetID, w.targetPath = "", ""
		w.content, w.hasContent, w.loading = "", false, false
		return nil
	}

	if !force && slide.ID == w.targetID && slide.Path == w.targetPath {
		return nil
	}

	w.seq++
	w.targetID, w.targetPath = slide.ID, slide.Path
	w.loading = true

	return &domain.LoadRequest{Seq: w.seq, SlideID: slide.ID, Path: slide.Path}
}

// Load fetches the content for a request. It does not change the workspace.
func (w *Workspace) Load(ctx context.Context, req domain.LoadRequest) domain.LoadResult {
	content, err := w.fetcher.FetchContent(ctx, req.Path)
	return domain.LoadResult{Request: req, Content: content, Err: err}
}

// Apply stores a load result if it answers the latest request.
// Returns false when the result is stale and was discarded.
func (w *Workspace) Apply(res domain.LoadResult) bool {
	w.mu.Lock()
	if res.Request.Seq != w.seq {
		latest := w.seq
		w.mu.Unlock()

		w.metrics.StaleContentDiscarded()
		logger.Debug("workspace: discarding stale content",
			"slide", res.Request.SlideID, "seq", res.Request.Seq, "latest", latest)
		return false
	}

	w.loading = false
	if res.Err != nil {
		w.content, w.hasContent = "", false
		w.mu.Unlock()

		w.metrics.ContentFailed()
		loadErr := &domain.ContentLoadError{SlideID: res.Request.SlideID, Path: res.Request.Path, Err: res.Err}
		logger.Warn("workspace: content load failed", "slide", res.Request.SlideID, "error", res.Err)
		w.reporter.ReportError(loadErr)
		return true
	}

	w.content, w.hasContent = res.Content, true
	w.mu.Unlock()

	w.metrics.ContentLoaded()
	return true
}

// LoadAsync loads and applies req on a new goroutine.
// The returned channel yields whether the result was applied.
func (w *Workspace) LoadAsync(ctx context.Context, req *domain.LoadRequest) <-chan bool {
	done := make(chan bool, 1)
	if req == nil {
		done <- false
		close(done)
		return done
	}

	go func() {
		defer close(done)
		done <- w.Apply(w.Load(ctx, *req))
	}()
	return done
}

// State returns a snapshot of the workspace.
func (w *Workspace) State() domain.WorkspaceState {
	progress := w.Progress()
	current := w.deck.CurrentID()

	w.mu.Lock()
	defer w.mu.Unlock()

	return domain.WorkspaceState{
		CurrentSlideID: current,
		Content:        w.content,
		HasContent:     w.hasContent,
		Loading:        w.loading,
		Progress:       progress,
	}
}

// Progress returns the position of the selected slide in percent,
// or 0 when nothing valid is selected.
func (w *Workspace) Progress() float64 {
	slides := w.deck.Slides()
	idx := -1
	current := w.deck.CurrentID()
	for i, s := range slides {
		if s.ID == current {
			idx = i
			break
		}
	}
	if idx < 0 || len(slides) == 0 {
		return 0
	}
	return float64(idx+1) / float64(len(slides)) * 100
}

// Slides returns the slides in display order.
func (w *Workspace) Slides() []domain.Slide {
	return w.deck.Slides()
}

// Current returns the selected slide if it is part of the deck.
func (w *Workspace) Current() (domain.Slide, bool) {
	return w.deck.Current()
}
