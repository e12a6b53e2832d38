// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deckwork/internal/core/domain"
)

// headerLines is the number of rows above the first slide entry.
const headerLines = 2

// SlideList renders the deck in order and marks the current slide.
// It is passive: the workspace owns the selection.
type SlideList struct {
	slides    []domain.Slide
	currentID string
	styles    *styles.Styles
	width     int
	height    int
	offset    int
}

// NewSlideList creates an empty slide list.
func NewSlideList(s *styles.Styles) *SlideList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SlideList{
		styles: s,
		width:  28,
		height: 10,
	}
}

// SetSlides replaces the listed slides and the current slide.
func (l *SlideList) SetSlides(slides []domain.Slide, currentID string) {
	l.slides = slides
	l.currentID = currentID
	l.scrollToCurrent()
}

// SetCurrent marks a slide as current.
func (l *SlideList) SetCurrent(id string) {
	l.currentID = id
	l.scrollToCurrent()
}

// View renders the list.
func (l *SlideList) View() string {
	lines := make([]string, 0, l.height)
	lines = append(lines, l.styles.Title.Render(fmt.Sprintf("Slides (%d)", len(l.slides))), "")

	if len(l.slides) == 0 {
		lines = append(lines, l.styles.Muted.Render(" No slides"))
	}

	end := l.offset + l.visibleCount()
	if end > len(l.slides) {
		end = len(l.slides)
	}
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderSlide(i, l.slides[i]))
	}

	return l.styles.SlidePanel.
		Width(l.width).
		Height(l.height).
		Render(strings.Join(lines, "\n"))
}

func (l *SlideList) renderSlide(index int, slide domain.Slide) string {
	name := strings.TrimSuffix(path.Base(slide.Path), path.Ext(slide.Path))
	label := fmt.Sprintf("%2d %s", index+1, name)

	maxLen := l.width - 3
	if maxLen < 8 {
		maxLen = 8
	}
	if lipgloss.Width(label) > maxLen {
		label = string([]rune(label)[:maxLen-1]) + "…"
	}

	if slide.ID == l.currentID {
		return l.styles.SlideCurrent.Render("▸" + label)
	}
	return l.styles.SlideItem.Render(" " + label)
}

// SlideAt returns the slide rendered on the given row of the list.
func (l *SlideList) SlideAt(row int) (domain.Slide, bool) {
	i := row - headerLines + l.offset
	if row < headerLines || i < 0 || i >= len(l.slides) || i >= l.offset+l.visibleCount() {
		return domain.Slide{}, false
	}
	return l.slides[i], true
}

func (l *SlideList) visibleCount() int {
	n := l.height - headerLines
	if n < 1 {
		n = 1
	}
	return n
}

func (l *SlideList) scrollToCurrent() {
	idx := -1
	for i, s := range l.slides {
		if s.ID == l.currentID {
			idx = i
			break
		}
	}

	visible := l.visibleCount()
	maxOffset := len(l.slides) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	switch {
	case idx < 0:
	case idx < l.offset:
		l.offset = idx
	case idx >= l.offset+visible:
		l.offset = idx - visible + 1
	}
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
}

// SetDimensions sets the component dimensions.
func (l *SlideList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
	l.scrollToCurrent()
}

// Width returns the current width.
func (l *SlideList) Width() int {
	return l.width
}

// Offset returns the index of the first visible slide.
func (l *SlideList) Offset() int {
	return l.offset
}

// Count returns the number of slides.
func (l *SlideList) Count() int {
	return len(l.slides)
}
