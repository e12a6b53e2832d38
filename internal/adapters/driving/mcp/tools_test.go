package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

func TestServer_handleListSlides(t *testing.T) {
	f := newServerFixture(t, "s1", "s2", "s3")

	_, out, err := f.server.handleListSlides(context.Background(), nil, EmptyInput{})

	require.NoError(t, err)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, slidePath("s1"), out.CurrentID)
	require.Len(t, out.Slides, 3)
	assert.Equal(t, 1, out.Slides[0].Position)
	assert.True(t, out.Slides[0].Current)
	assert.Equal(t, slidePath("s3"), out.Slides[2].Path)
	assert.False(t, out.Slides[2].Current)
}

func TestServer_handleGetStatus(t *testing.T) {
	f := newServerFixture(t, "s1", "s2", "s3", "s4")

	_, out, err := f.server.handleGetStatus(context.Background(), nil, EmptyInput{})

	require.NoError(t, err)
	assert.Equal(t, "intro", out.Project)
	assert.Equal(t, 1, out.Position)
	assert.Equal(t, 4, out.Total)
	assert.InDelta(t, 25.0, out.Progress, 1e-9)
	assert.True(t, out.HasContent)
	assert.False(t, out.Loading)
	assert.InDelta(t, 1.0, out.Scale, 1e-9)
	assert.Empty(t, out.LoadError)
}

func TestServer_handleSelectSlide(t *testing.T) {
	ctx := context.Background()

	t.Run("by id", func(t *testing.T) {
		f := newServerFixture(t, "s1", "s2", "s3", "s4")

		_, out, err := f.server.handleSelectSlide(ctx, nil, SelectSlideInput{ID: slidePath("s2")})

		require.NoError(t, err)
		assert.Equal(t, slidePath("s2"), out.CurrentID)
		assert.Equal(t, 2, out.Position)
		assert.InDelta(t, 50.0, out.Progress, 1e-9)
		assert.Equal(t, "<svg>s2</svg>", f.workspace.State().Content)
	})

	t.Run("by position", func(t *testing.T) {
		f := newServerFixture(t, "s1", "s2", "s3")

		_, out, err := f.server.handleSelectSlide(ctx, nil, SelectSlideInput{Position: 3})

		require.NoError(t, err)
		assert.Equal(t, slidePath("s3"), out.CurrentID)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newServerFixture(t, "s1")

		_, _, err := f.server.handleSelectSlide(ctx, nil, SelectSlideInput{ID: "missing"})

		assert.ErrorIs(t, err, ErrSlideNotFound)
		assert.Equal(t, slidePath("s1"), f.workspace.State().CurrentSlideID)
	})

	t.Run("position out of range", func(t *testing.T) {
		f := newServerFixture(t, "s1", "s2")

		_, _, err := f.server.handleSelectSlide(ctx, nil, SelectSlideInput{Position: 3})
		assert.ErrorIs(t, err, ErrSlideNotFound)

		_, _, err = f.server.handleSelectSlide(ctx, nil, SelectSlideInput{})
		assert.ErrorIs(t, err, ErrSlideNotFound)
	})

	t.Run("reports load failure", func(t *testing.T) {
		f := newServerFixture(t, "s1", "s2")
		f.files.Remove(slidePath("s2"))

		_, out, err := f.server.handleSelectSlide(ctx, nil, SelectSlideInput{Position: 2})

		require.NoError(t, err)
		assert.NotEmpty(t, out.LoadError)
		assert.False(t, out.HasContent)
	})
}

func TestServer_handleNextAndPreviousSlide(t *testing.T) {
	ctx := context.Background()
	f := newServerFixture(t, "s1", "s2")

	_, out, err := f.server.handleNextSlide(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Position)

	_, out, err = f.server.handleNextSlide(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Position, "navigation clamps at the last slide")

	_, out, err = f.server.handlePreviousSlide(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Position)
	assert.Equal(t, "<svg>s1</svg>", f.workspace.State().Content)
}

func TestServer_handleMoveSlide(t *testing.T) {
	ctx := context.Background()

	t.Run("moves a slide", func(t *testing.T) {
		f := newServerFixture(t, "s1", "s2", "s3")

		_, out, err := f.server.handleMoveSlide(ctx, nil, MoveSlideInput{From: 1, To: 3})

		require.NoError(t, err)
		require.Len(t, out.Slides, 3)
		assert.Equal(t, slidePath("s2"), out.Slides[0].ID)
		assert.Equal(t, slidePath("s3"), out.Slides[1].ID)
		assert.Equal(t, slidePath("s1"), out.Slides[2].ID)
		assert.True(t, out.Slides[2].Current, "selection follows the moved slide")
	})

	t.Run("rejects positions outside the deck", func(t *testing.T) {
		f := newServerFixture(t, "s1", "s2")

		_, _, err := f.server.handleMoveSlide(ctx, nil, MoveSlideInput{From: 0, To: 2})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, _, err = f.server.handleMoveSlide(ctx, nil, MoveSlideInput{From: 1, To: 5})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleZoom(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input ZoomInput
		want  float64
	}{
		{name: "in", input: ZoomInput{Action: "in"}, want: 1.2},
		{name: "out", input: ZoomInput{Action: "out"}, want: 1 / 1.2},
		{name: "set", input: ZoomInput{Action: "set", Scale: 2.5}, want: 2.5},
		{name: "set clamps", input: ZoomInput{Action: "set", Scale: 50}, want: domain.DefaultMaxScale},
		{name: "reset", input: ZoomInput{Action: "reset"}, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t, "s1")

			_, out, err := f.server.handleZoom(ctx, nil, tt.input)

			require.NoError(t, err)
			assert.InDelta(t, tt.want, out.Scale, 1e-9)
			assert.InDelta(t, tt.want, f.canvas.Scale(), 1e-9)
		})
	}

	t.Run("fit notifies the fit listener", func(t *testing.T) {
		f := newServerFixture(t, "s1")
		fitted := make(chan struct{}, 1)
		f.canvas.OnFit(func() { fitted <- struct{}{} })

		_, _, err := f.server.handleZoom(ctx, nil, ZoomInput{Action: "fit"})

		require.NoError(t, err)
		select {
		case <-fitted:
		case <-time.After(time.Second):
			t.Fatal("fit listener not called")
		}
	})

	t.Run("rejects unknown actions", func(t *testing.T) {
		f := newServerFixture(t, "s1")

		_, _, err := f.server.handleZoom(ctx, nil, ZoomInput{Action: "spin"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, _, err = f.server.handleZoom(ctx, nil, ZoomInput{Action: "set"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleRescan(t *testing.T) {
	ctx := context.Background()
	f := newServerFixture(t, "s1", "s2")
	f.files.Write(slidePath("s3"), "<svg>s3</svg>", time.Now())

	_, out, err := f.server.handleRescan(ctx, nil, EmptyInput{})

	require.NoError(t, err)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, slidePath("s1"), out.CurrentID)

	info, ok := f.studio.Project()
	require.True(t, ok)
	assert.Equal(t, 3, info.SlideCount)
}
