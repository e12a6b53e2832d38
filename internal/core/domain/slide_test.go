package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeckEventKind_String(t *testing.T) {
	assert.Equal(t, "slides_replaced", DeckSlidesReplaced.String())
	assert.Equal(t, "reordered", DeckReordered.String())
	assert.Equal(t, "selection_changed", DeckSelectionChanged.String())
	assert.Equal(t, "unknown", DeckEventKind(42).String())
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "previous_slide", ActionPreviousSlide.String())
	assert.Equal(t, "next_slide", ActionNextSlide.String())
	assert.Equal(t, "zoom_in", ActionZoomIn.String())
	assert.Equal(t, "zoom_out", ActionZoomOut.String())
	assert.Equal(t, "reset_view", ActionResetView.String())
	assert.Equal(t, "fit_view", ActionFitView.String())
	assert.Equal(t, "none", ActionNone.String())
}

func TestWatchEntry_HasBaseline(t *testing.T) {
	assert.False(t, WatchEntry{Path: "a.svg"}.HasBaseline())
	assert.True(t, WatchEntry{Path: "a.svg", LastSeen: time.Unix(100, 0)}.HasBaseline())
}

func TestIdentityTransform(t *testing.T) {
	tr := IdentityTransform()
	assert.Equal(t, 1.0, tr.Scale)
	assert.Equal(t, Point{}, tr.Pan)
}
