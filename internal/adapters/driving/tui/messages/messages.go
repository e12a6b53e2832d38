// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/deckwork/internal/core/domain"
)

// ProjectOpened carries the outcome of opening a project directory.
type ProjectOpened struct {
	Info    *domain.ProjectInfo
	Request *domain.LoadRequest
	Err     error
}

// ContentLoaded carries the result of a slide content request.
// The result may be stale; the workspace decides whether to apply it.
type ContentLoaded struct {
	Result domain.LoadResult
}

// FileChanged is sent by the poller when a watched slide file was edited.
// Request is set when the edited slide is the current one.
type FileChanged struct {
	Change  domain.FileChange
	Request *domain.LoadRequest
}

// SlidesChanged is sent after the slide directory was rescanned.
type SlidesChanged struct {
	Slides  []domain.Slide
	Request *domain.LoadRequest
}

// Rescanned carries the outcome of a user-requested rescan.
type Rescanned struct {
	Request *domain.LoadRequest
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
