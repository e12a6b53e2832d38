// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/styles"
)

// State represents the current workspace state for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateGoTo    State = "goto"
)

// Bar displays the slide position, zoom and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	position int
	total    int
	progress float64
	scale    float64
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		scale:  1.0,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	var parts []string
	if s.total > 0 && s.position > 0 {
		parts = append(parts, s.styles.Badge.Render(fmt.Sprintf("%d/%d", s.position, s.total)))
		parts = append(parts, s.styles.Muted.Render(fmt.Sprintf("%.0f%%", s.progress)))
	}
	parts = append(parts, s.styles.Badge.Render(fmt.Sprintf("zoom %.0f%%", s.scale*100)))

	switch s.state {
	case StateLoading:
		parts = append(parts, s.styles.Loading.Render("loading…"))
	case StateError:
		msg := "error"
		if s.message != "" {
			msg = "error: " + s.message
		}
		parts = append(parts, s.styles.Error.Render(msg))
	case StateGoTo:
		parts = append(parts, s.styles.Normal.Render("go to slide"))
	case StateReady:
		if s.message != "" {
			parts = append(parts, s.styles.Muted.Render(s.message))
		}
	}
	return strings.Join(parts, "  ")
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateGoTo {
		bindings = []key.Binding{s.keymap.Confirm, s.keymap.Cancel}
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetPosition sets the 1-based position of the current slide and the deck size.
// A zero position hides the indicator.
func (s *Bar) SetPosition(position, total int, progress float64) {
	s.position = position
	s.total = total
	s.progress = progress
}

// SetScale sets the zoom shown in the bar.
func (s *Bar) SetScale(scale float64) {
	s.scale = scale
}

// Scale returns the zoom shown in the bar.
func (s *Bar) Scale() float64 {
	return s.scale
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the state and message.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
