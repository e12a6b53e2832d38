package services

import (
	"math"
	"sync"

	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driving"
)

// Ensure Canvas implements the interface.
var _ driving.ViewService = (*Canvas)(nil)

// CanvasOption configures a Canvas.
type CanvasOption func(*Canvas)

// WithZoomListener sets the callback notified with every new scale.
func WithZoomListener(fn func(scale float64)) CanvasOption {
	return func(c *Canvas) {
		c.onZoom = fn
	}
}

// WithFitListener sets the callback raised by ResetToFit.
func WithFitListener(fn func()) CanvasOption {
	return func(c *Canvas) {
		c.onFit = fn
	}
}

// Canvas holds the zoom and pan of the preview.
// The scale always stays within [MinScale, MaxScale].
type Canvas struct {
	mu        sync.Mutex
	transform domain.ViewTransform
	minScale  float64
	maxScale  float64
	step      float64

	onZoom func(float64)
	onFit  func()
}

// NewCanvas creates a canvas at the identity transform.
// Settings are expected to be validated by the caller.
func NewCanvas(settings domain.WorkspaceSettings, opts ...CanvasOption) *Canvas {
	c := &Canvas{
		transform: domain.IdentityTransform(),
		minScale:  settings.MinScale,
		maxScale:  settings.MaxScale,
		step:      settings.ZoomStep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetScale sets the zoom, clamped to the allowed range. NaN is ignored.
func (c *Canvas) SetScale(scale float64) {
	if math.IsNaN(scale) {
		return
	}

	c.mu.Lock()
	clamped := c.clamp(scale)
	c.transform.Scale = clamped
	onZoom := c.onZoom
	c.mu.Unlock()

	if onZoom != nil {
		onZoom(clamped)
	}
}

// ZoomIn multiplies the scale by the zoom step.
func (c *Canvas) ZoomIn() {
	c.SetScale(c.Scale() * c.step)
}

// ZoomOut divides the scale by the zoom step.
func (c *Canvas) ZoomOut() {
	c.SetScale(c.Scale() / c.step)
}

// Pan shifts the view by the given offset.
func (c *Canvas) Pan(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transform.Pan.X += dx
	c.transform.Pan.Y += dy
}

// Reset restores scale 1.0 and zero pan.
func (c *Canvas) Reset() {
	c.mu.Lock()
	c.transform = domain.IdentityTransform()
	onZoom := c.onZoom
	c.mu.Unlock()

	if onZoom != nil {
		onZoom(1.0)
	}
}

// ResetToFit resets the view and asks the renderer to fit the slide.
func (c *Canvas) ResetToFit() {
	c.Reset()

	c.mu.Lock()
	onFit := c.onFit
	c.mu.Unlock()

	if onFit != nil {
		onFit()
	}
}

// OnZoom replaces the zoom listener. Listeners run on the caller's goroutine.
func (c *Canvas) OnZoom(fn func(scale float64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onZoom = fn
}

// OnFit replaces the fit listener.
func (c *Canvas) OnFit(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFit = fn
}

// Transform returns the current view transform.
func (c *Canvas) Transform() domain.ViewTransform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform
}

// Scale returns the current zoom.
func (c *Canvas) Scale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform.Scale
}

// Bounds returns the allowed zoom range.
func (c *Canvas) Bounds() (minScale, maxScale float64) {
	return c.minScale, c.maxScale
}

func (c *Canvas) clamp(scale float64) float64 {
	return math.Max(c.minScale, math.Min(c.maxScale, scale))
}
