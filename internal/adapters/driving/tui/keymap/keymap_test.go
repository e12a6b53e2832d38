package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_NavigationBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.ElementsMatch(t, []string{"left", "up", "backspace", "pgup"}, km.Previous.Keys())
	assert.ElementsMatch(t, []string{"right", "down", " ", "pgdown"}, km.Next.Keys())
}

// Bindings must use the strings bubbletea actually produces for key events.
func TestAction_TerminalKeyEvents(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want domain.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, domain.ActionPreviousSlide},
		{tea.KeyMsg{Type: tea.KeyBackspace}, domain.ActionPreviousSlide},
		{tea.KeyMsg{Type: tea.KeyPgUp}, domain.ActionPreviousSlide},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, domain.ActionNextSlide},
		{tea.KeyMsg{Type: tea.KeyPgDown}, domain.ActionNextSlide},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, km.Action(tt.msg.String()))
		})
	}
}

func TestAction(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key  string
		want domain.Action
	}{
		{"left", domain.ActionPreviousSlide},
		{"up", domain.ActionPreviousSlide},
		{"backspace", domain.ActionPreviousSlide},
		{"pgup", domain.ActionPreviousSlide},
		{"pgdown", domain.ActionNextSlide},
		{"right", domain.ActionNextSlide},
		{"down", domain.ActionNextSlide},
		{" ", domain.ActionNextSlide},
		{"+", domain.ActionZoomIn},
		{"=", domain.ActionZoomIn},
		{"-", domain.ActionZoomOut},
		{"0", domain.ActionResetView},
		{"f", domain.ActionFitView},
		{"x", domain.ActionNone},
		{"K", domain.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, km.Action(tt.key))
		})
	}
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 5)
	assert.Equal(t, km.Quit, bindings[len(bindings)-1])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()

	assert.Len(t, groups, 4)
	assert.Len(t, groups[0], 5) // Previous, Next, GoTo, MoveUp, MoveDown
	assert.Len(t, groups[1], 4) // ZoomIn, ZoomOut, ResetView, FitView
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("K", km.MoveUp))
	assert.True(t, Matches("shift+down", km.MoveDown))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("down", km.Previous))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Previous", km.Previous},
		{"Next", km.Next},
		{"ZoomIn", km.ZoomIn},
		{"ZoomOut", km.ZoomOut},
		{"ResetView", km.ResetView},
		{"FitView", km.FitView},
		{"MoveUp", km.MoveUp},
		{"MoveDown", km.MoveDown},
		{"GoTo", km.GoTo},
		{"Refresh", km.Refresh},
		{"Help", km.Help},
		{"Quit", km.Quit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
