// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette of the workspace.
type Theme struct {
	// Accent marks the current slide and active controls.
	Accent lipgloss.Color

	// Canvas is the border colour of the slide frame.
	Canvas lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for secondary text such as paths and hints.
	Muted lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color

	// Loading marks pending content loads.
	Loading lipgloss.Color

	// Error marks failures.
	Error lipgloss.Color

	// Border separates the slide list from the preview.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#F59E0B"), // Amber
		Canvas:     lipgloss.Color("#38BDF8"), // Sky
		Foreground: lipgloss.Color("#E5E7EB"),
		Muted:      lipgloss.Color("#6B7280"),
		Bar:        lipgloss.Color("#111827"),
		Loading:    lipgloss.Color("#A78BFA"), // Violet
		Error:      lipgloss.Color("#F87171"), // Red
		Border:     lipgloss.Color("#374151"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title renders the project name.
	Title lipgloss.Style

	// Normal renders regular text.
	Normal lipgloss.Style

	// Muted renders secondary text.
	Muted lipgloss.Style

	// SlideItem renders an entry of the slide list.
	SlideItem lipgloss.Style

	// SlideCurrent renders the selected entry of the slide list.
	SlideCurrent lipgloss.Style

	// SlidePanel frames the slide list.
	SlidePanel lipgloss.Style

	// CanvasFrame draws the outline of the slide canvas.
	CanvasFrame lipgloss.Style

	// Badge renders the zoom and progress indicators.
	Badge lipgloss.Style

	// Loading renders pending state.
	Loading lipgloss.Style

	// Error renders error messages.
	Error lipgloss.Style

	// InputField renders the go-to prompt.
	InputField lipgloss.Style

	// StatusBar renders the bottom bar.
	StatusBar lipgloss.Style

	// Help renders key hints.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		SlideItem: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(1),

		SlideCurrent: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent).
			PaddingLeft(1),

		SlidePanel: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(theme.Border),

		CanvasFrame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Canvas),

		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Canvas),

		Loading: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Loading),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
