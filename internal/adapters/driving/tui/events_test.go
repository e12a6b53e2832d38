package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driving"
)

type chanSender chan tea.Msg

func (c chanSender) Send(msg tea.Msg) { c <- msg }

func (c chanSender) next(t *testing.T) tea.Msg {
	t.Helper()
	select {
	case msg := <-c:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message sent")
		return nil
	}
}

// stubStudio records the handlers installed on it.
type stubStudio struct {
	onFileChange    driving.FileChangeHandler
	onSlidesChanged driving.SlidesChangedHandler
}

func (s *stubStudio) Open(context.Context, string) (*domain.ProjectInfo, *domain.LoadRequest, error) {
	return nil, nil, nil
}
func (s *stubStudio) Rescan(context.Context) (*domain.LoadRequest, error) { return nil, nil }
func (s *stubStudio) PollNow(context.Context) error                      { return nil }
func (s *stubStudio) Close(context.Context) error                        { return nil }
func (s *stubStudio) Project() (domain.ProjectInfo, bool)                { return domain.ProjectInfo{}, false }
func (s *stubStudio) OnFileChange(fn driving.FileChangeHandler)          { s.onFileChange = fn }
func (s *stubStudio) OnSlidesChanged(fn driving.SlidesChangedHandler)    { s.onSlidesChanged = fn }

func TestSubscribe_ForwardsStudioEvents(t *testing.T) {
	sender := make(chanSender, 1)
	studio := &stubStudio{}

	unsubscribe := Subscribe(sender, studio)
	require.NotNil(t, studio.onFileChange)
	require.NotNil(t, studio.onSlidesChanged)

	req := &domain.LoadRequest{Seq: 4, SlideID: "a", Path: "a.svg"}
	studio.onFileChange(domain.FileChange{Session: 2, Path: "a.svg"}, req)
	fc, ok := sender.next(t).(messages.FileChanged)
	require.True(t, ok)
	assert.Equal(t, "a.svg", fc.Change.Path)
	assert.Equal(t, req, fc.Request)

	studio.onSlidesChanged([]domain.Slide{{ID: "a", Path: "a.svg"}}, nil)
	sc, ok := sender.next(t).(messages.SlidesChanged)
	require.True(t, ok)
	assert.Len(t, sc.Slides, 1)

	unsubscribe()
	assert.Nil(t, studio.onFileChange)
	assert.Nil(t, studio.onSlidesChanged)
}

func TestErrorSink(t *testing.T) {
	sender := make(chanSender, 1)

	ErrorSink(sender)(errors.New("boom"))

	msg, ok := sender.next(t).(messages.ErrorOccurred)
	require.True(t, ok)
	assert.EqualError(t, msg.Err, "boom")
}
