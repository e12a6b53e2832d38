package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driving"
)

// Sender delivers messages into a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Subscribe forwards background studio events to the program as messages.
// Sends happen on their own goroutine: the poller calls back while holding
// its session lock, and the program may be busy stopping that session.
// The returned function restores the studio's default handling.
func Subscribe(s Sender, studio driving.StudioService) func() {
	studio.OnFileChange(func(change domain.FileChange, req *domain.LoadRequest) {
		go s.Send(messages.FileChanged{Change: change, Request: req})
	})
	studio.OnSlidesChanged(func(slides []domain.Slide, req *domain.LoadRequest) {
		go s.Send(messages.SlidesChanged{Slides: slides, Request: req})
	})

	return func() {
		studio.OnFileChange(nil)
		studio.OnSlidesChanged(nil)
	}
}

// ErrorSink returns a function that shows reported errors in the status bar.
func ErrorSink(s Sender) func(error) {
	return func(err error) {
		go s.Send(messages.ErrorOccurred{Err: err})
	}
}
