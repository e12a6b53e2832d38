package domain

import (
	"fmt"
	"math"
	"time"
)

// Workspace defaults.
const (
	DefaultPollInterval = 2000 * time.Millisecond
	DefaultMinScale     = 0.1
	DefaultMaxScale     = 5.0
	DefaultZoomStep     = 1.2
)

// WorkspaceSettings holds the tunables of the workspace engine.
type WorkspaceSettings struct {
	// PollInterval is the delay between two timestamp polls.
	PollInterval time.Duration

	// MinScale and MaxScale bound the canvas zoom.
	MinScale float64
	MaxScale float64

	// ZoomStep is the multiplicative factor of one zoom in/out.
	ZoomStep float64
}

// DefaultWorkspaceSettings returns sensible defaults.
func DefaultWorkspaceSettings() WorkspaceSettings {
	return WorkspaceSettings{
		PollInterval: DefaultPollInterval,
		MinScale:     DefaultMinScale,
		MaxScale:     DefaultMaxScale,
		ZoomStep:     DefaultZoomStep,
	}
}

// Validate checks the settings invariants.
func (s WorkspaceSettings) Validate() error {
	if s.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive, got %s", ErrInvalidSettings, s.PollInterval)
	}
	if !isFinite(s.MinScale) || !isFinite(s.MaxScale) || s.MinScale <= 0 {
		return fmt.Errorf("%w: min scale must be a positive number, got %v", ErrInvalidSettings, s.MinScale)
	}
	if s.MaxScale < s.MinScale {
		return fmt.Errorf("%w: max scale %v is below min scale %v", ErrInvalidSettings, s.MaxScale, s.MinScale)
	}
	if s.MinScale > 1.0 || s.MaxScale < 1.0 {
		return fmt.Errorf("%w: scale range [%v, %v] must contain 1.0", ErrInvalidSettings, s.MinScale, s.MaxScale)
	}
	if !isFinite(s.ZoomStep) || s.ZoomStep <= 1.0 {
		return fmt.Errorf("%w: zoom step must be greater than 1, got %v", ErrInvalidSettings, s.ZoomStep)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
