package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

func newTestWorkspace(fetch func(ctx context.Context, path string) (string, error)) (*Workspace, *recordingReporter, *countingMetrics) {
	reporter := &recordingReporter{}
	metrics := &countingMetrics{}
	return NewWorkspace(NewDeck(), &fakeContent{FetchFunc: fetch}, reporter, metrics), reporter, metrics
}

func TestWorkspace_SetSlides_SelectsFirst(t *testing.T) {
	w, _, _ := newTestWorkspace(nil)

	req := w.SetSlides(makeSlides("s1", "s2", "s3", "s4"))

	require.NotNil(t, req)
	assert.Equal(t, "s1", req.SlideID)
	assert.Equal(t, "/deck/svg_output/s1.svg", req.Path)
	assert.Equal(t, uint64(1), req.Seq)
	assert.Equal(t, "s1", w.State().CurrentSlideID)
	assert.True(t, w.State().Loading)
}

func TestWorkspace_SetSlides_Empty(t *testing.T) {
	w, _, _ := newTestWorkspace(nil)

	req := w.SetSlides(nil)

	assert.Nil(t, req)
	assert.Equal(t, domain.WorkspaceState{}, w.State())
	assert.Equal(t, 0.0, w.Progress())
}

func TestWorkspace_SameSelectionIssuesNoRequest(t *testing.T) {
	w, _, _ := newTestWorkspace(nil)
	require.NotNil(t, w.SetSlides(makeSlides("s1", "s2")))

	assert.Nil(t, w.SelectSlide("s1"))
	assert.Nil(t, w.SelectSlide("unknown"))
	assert.Nil(t, w.ReorderSlide(0, 1))
	assert.Nil(t, w.SetSlides(makeSlides("s2", "s1")))
}

func TestWorkspace_Progress(t *testing.T) {
	w, _, _ := newTestWorkspace(nil)
	w.SetSlides(makeSlides("s1", "s2", "s3", "s4"))

	w.SelectSlide("s2")
	assert.Equal(t, 50.0, w.Progress())

	w.NextSlide()
	assert.Equal(t, 75.0, w.Progress())

	w.ReorderSlide(2, 0)
	assert.Equal(t, 25.0, w.Progress())
	assert.Equal(t, 25.0, w.State().Progress)
}

func TestWorkspace_LastRequestWins(t *testing.T) {
	w, _, metrics := newTestWorkspace(nil)
	w.SetSlides(makeSlides("s1", "s2", "s3", "s4"))

	req2 := w.SelectSlide("s2")
	req3 := w.SelectSlide("s3")
	require.NotNil(t, req2)
	require.NotNil(t, req3)
	assert.Greater(t, req3.Seq, req2.Seq)

	// slide 3 resolves first, slide 2 resolves late.
	assert.True(t, w.Apply(domain.LoadResult{Request: *req3, Content: "three"}))
	assert.False(t, w.Apply(domain.LoadResult{Request: *req2, Content: "two"}))

	state := w.State()
	assert.Equal(t, "s3", state.CurrentSlideID)
	assert.Equal(t, "three", state.Content)
	assert.True(t, state.HasContent)
	assert.False(t, state.Loading)
	assert.Equal(t, 1, metrics.get(&metrics.stale))
}

func TestWorkspace_LastRequestWins_LateResultInOrder(t *testing.T) {
	w, _, _ := newTestWorkspace(nil)
	w.SetSlides(makeSlides("s1", "s2", "s3"))

	req2 := w.SelectSlide("s2")
	req3 := w.SelectSlide("s3")

	assert.False(t, w.Apply(domain.LoadResult{Request: *req2, Content: "two"}))
	assert.False(t, w.State().HasContent)

	assert.True(t, w.Apply(domain.LoadResult{Request: *req3, Content: "three"}))
	assert.Equal(t, "three", w.State().Content)
}

func TestWorkspace_LoadFailureClearsContent(t *testing.T) {
	w, reporter, metrics := newTestWorkspace(func(_ context.Context, path string) (string, error) {
		if path == "/deck/svg_output/s2.svg" {
			return "", domain.ErrNotFound
		}
		return "ok", nil
	})
	req := w.SetSlides(makeSlides("s1", "s2"))
	require.True(t, w.Apply(w.Load(context.Background(), *req)))
	require.True(t, w.State().HasContent)

	req = w.NextSlide()
	require.NotNil(t, req)
	assert.True(t, w.Apply(w.Load(context.Background(), *req)))

	state := w.State()
	assert.False(t, state.HasContent)
	assert.Empty(t, state.Content)

	errs := reporter.Errors()
	require.Len(t, errs, 1)
	var loadErr *domain.ContentLoadError
	require.True(t, errors.As(errs[0], &loadErr))
	assert.Equal(t, "s2", loadErr.SlideID)
	assert.ErrorIs(t, errs[0], domain.ErrNotFound)
	assert.Equal(t, 1, metrics.get(&metrics.failed))
	assert.Equal(t, 1, metrics.get(&metrics.loaded))
}

func TestWorkspace_InvalidSelection(t *testing.T) {
	w, _, _ := newTestWorkspace(nil)
	w.SetSlides(makeSlides("s1", "s2", "s3"))
	req := w.SelectSlide("s2")
	require.True(t, w.Apply(domain.LoadResult{Request: *req, Content: "two"}))

	// A rescan drops s2 while a reload is in flight.
	inflight := w.Refresh("/deck/svg_output/s2.svg")
	require.NotNil(t, inflight)
	assert.Nil(t, w.SetSlides(makeSlides("s1", "s3")))

	state := w.State()
	assert.Equal(t, "s2", state.CurrentSlideID)
	assert.False(t, state.HasContent)
	assert.Equal(t, 0.0, state.Progress)
	assert.False(t, w.Apply(domain.LoadResult{Request: *inflight, Content: "stale"}))

	// The slide comes back: it is requested again.
	back := w.SetSlides(makeSlides("s1", "s2", "s3"))
	require.NotNil(t, back)
	assert.Equal(t, "s2", back.SlideID)
	assert.Greater(t, back.Seq, inflight.Seq)
}

func TestWorkspace_PathChangeReloads(t *testing.T) {
	w, _, _ := newTestWorkspace(nil)
	w.SetSlides([]domain.Slide{{ID: "s1", Path: "/a.svg"}})

	req := w.SetSlides([]domain.Slide{{ID: "s1", Path: "/b.svg"}})

	require.NotNil(t, req)
	assert.Equal(t, "/b.svg", req.Path)
}

func TestWorkspace_Refresh(t *testing.T) {
	w, _, _ := newTestWorkspace(nil)
	first := w.SetSlides(makeSlides("s1", "s2"))

	assert.Nil(t, w.Refresh("/deck/svg_output/s2.svg"))

	req := w.Refresh("/deck/svg_output/s1.svg")
	require.NotNil(t, req)
	assert.Equal(t, "s1", req.SlideID)
	assert.Greater(t, req.Seq, first.Seq)
}

func TestWorkspace_NavigationClamped(t *testing.T) {
	w, _, _ := newTestWorkspace(nil)
	w.SetSlides(makeSlides("s1", "s2"))

	assert.Nil(t, w.PreviousSlide())
	require.NotNil(t, w.NextSlide())
	assert.Nil(t, w.NextSlide())
	assert.Equal(t, "s2", w.State().CurrentSlideID)
}

func TestWorkspace_Restore(t *testing.T) {
	w, _, _ := newTestWorkspace(nil)

	req := w.Restore(makeSlides("s1", "s2", "s3"), "s3")
	require.NotNil(t, req)
	assert.Equal(t, "s3", req.SlideID)

	w2, _, _ := newTestWorkspace(nil)
	req = w2.Restore(makeSlides("s1", "s2"), "gone")
	require.NotNil(t, req)
	assert.Equal(t, "s1", req.SlideID)
}

func TestWorkspace_LoadAsync(t *testing.T) {
	w, _, _ := newTestWorkspace(nil)
	req := w.SetSlides(makeSlides("s1"))

	applied := <-w.LoadAsync(context.Background(), req)

	assert.True(t, applied)
	assert.Equal(t, "<svg>/deck/svg_output/s1.svg</svg>", w.State().Content)
	assert.False(t, <-w.LoadAsync(context.Background(), nil))
}
