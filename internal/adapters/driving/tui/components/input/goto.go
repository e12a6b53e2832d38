// Package input provides text input components for the TUI.
package input

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/styles"
)

// GoToInput prompts for a 1-based slide number.
// While it is focused, workspace shortcuts must be disabled.
type GoToInput struct {
	textinput textinput.Model
	styles    *styles.Styles
}

// NewGoToInput creates a blurred go-to prompt.
func NewGoToInput(s *styles.Styles) *GoToInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "slide number"
	ti.CharLimit = 5
	ti.Width = 12

	return &GoToInput{
		textinput: ti,
		styles:    s,
	}
}

// Open clears and focuses the prompt.
func (g *GoToInput) Open() tea.Cmd {
	g.textinput.Reset()
	return g.textinput.Focus()
}

// Close blurs the prompt.
func (g *GoToInput) Close() {
	g.textinput.Blur()
	g.textinput.Reset()
}

// Update handles input messages.
func (g *GoToInput) Update(msg tea.Msg) (*GoToInput, tea.Cmd) {
	var cmd tea.Cmd
	g.textinput, cmd = g.textinput.Update(msg)
	return g, cmd
}

// View renders the prompt.
func (g *GoToInput) View() string {
	label := g.styles.Title.Render("Go to: ")
	field := g.styles.InputField.Render(g.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Number returns the entered slide number.
// Returns false unless the value is a positive integer.
func (g *GoToInput) Number() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(g.textinput.Value()))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Value returns the raw input.
func (g *GoToInput) Value() string {
	return g.textinput.Value()
}

// Focused reports whether the prompt is open.
func (g *GoToInput) Focused() bool {
	return g.textinput.Focused()
}
