package domain

import "time"

// WorkspaceState is a snapshot of what the workspace currently shows.
type WorkspaceState struct {
	// CurrentSlideID is the selected slide, or empty when nothing is selected.
	// It may name a slide that no longer exists after a rescan.
	CurrentSlideID string

	// Content is the loaded document text of the selected slide.
	Content string

	// HasContent is false while nothing is loaded.
	HasContent bool

	// Loading is true while the latest request has no result yet.
	Loading bool

	// Progress is the position of the selected slide in percent, in [0,100].
	Progress float64
}

// LoadRequest asks for the content of one slide.
// Seq increases strictly with every request a workspace issues.
type LoadRequest struct {
	Seq     uint64
	SlideID string
	Path    string
}

// LoadResult carries the outcome of a LoadRequest.
type LoadResult struct {
	Request LoadRequest
	Content string
	Err     error
}

// SessionSnapshot is what the workspace remembers about a project between runs.
type SessionSnapshot struct {
	ProjectRoot string
	SlideID     string
	UpdatedAt   time.Time
}
