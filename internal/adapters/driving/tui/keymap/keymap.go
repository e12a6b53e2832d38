// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

// KeyMap defines all keybindings for the workspace.
type KeyMap struct {
	// Previous selects the slide before the current one.
	Previous key.Binding

	// Next selects the slide after the current one.
	Next key.Binding

	// ZoomIn enlarges the preview.
	ZoomIn key.Binding

	// ZoomOut shrinks the preview.
	ZoomOut key.Binding

	// ResetView restores 100% zoom and centres the preview.
	ResetView key.Binding

	// FitView fits the slide canvas to the preview area.
	FitView key.Binding

	// Pan keys move the preview within its frame.
	PanLeft  key.Binding
	PanRight key.Binding
	PanUp    key.Binding
	PanDown  key.Binding

	// MoveUp and MoveDown reorder the current slide.
	MoveUp   key.Binding
	MoveDown key.Binding

	// GoTo opens the go-to-slide prompt.
	GoTo key.Binding

	// Refresh rescans the slide directory.
	Refresh key.Binding

	// Confirm submits the go-to prompt.
	Confirm key.Binding

	// Cancel closes the go-to prompt or the help overlay.
	Cancel key.Binding

	// Help toggles the help overlay.
	Help key.Binding

	// Quit exits the application.
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Previous: key.NewBinding(
			key.WithKeys("left", "up", "backspace", "pgup"),
			key.WithHelp("←/↑/bksp", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "down", " ", "pgdown"),
			key.WithHelp("→/↓/space", "next"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "=", "ctrl+="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		ResetView: key.NewBinding(
			key.WithKeys("0", "ctrl+0"),
			key.WithHelp("0", "reset"),
		),
		FitView: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fit"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "pan left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "pan right"),
		),
		PanUp: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "pan up"),
		),
		PanDown: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "pan down"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("J", "move down"),
		),
		GoTo: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns bindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.ZoomIn, k.FitView, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped for the help overlay.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Previous, k.Next, k.GoTo, k.MoveUp, k.MoveDown},
		{k.ZoomIn, k.ZoomOut, k.ResetView, k.FitView},
		{k.PanLeft, k.PanRight, k.PanUp, k.PanDown},
		{k.Refresh, k.Help, k.Quit},
	}
}

// Action maps a key string to the workspace action it triggers.
// Keys without a shortcut action return domain.ActionNone.
func (k *KeyMap) Action(keyStr string) domain.Action {
	switch {
	case Matches(keyStr, k.Previous):
		return domain.ActionPreviousSlide
	case Matches(keyStr, k.Next):
		return domain.ActionNextSlide
	case Matches(keyStr, k.ZoomIn):
		return domain.ActionZoomIn
	case Matches(keyStr, k.ZoomOut):
		return domain.ActionZoomOut
	case Matches(keyStr, k.ResetView):
		return domain.ActionResetView
	case Matches(keyStr, k.FitView):
		return domain.ActionFitView
	default:
		return domain.ActionNone
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
