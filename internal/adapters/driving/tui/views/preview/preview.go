// Package preview renders the current slide inside a zoomable canvas frame.
package preview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deckwork/internal/core/domain"
)

// Terminal cell size in canvas pixels.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// DefaultFormat is used when the project name carries no known format.
const DefaultFormat = "ppt169"

// headerLines is the number of rows above the canvas frame.
const headerLines = 2

// View shows the loaded slide document inside a frame sized by the
// canvas format and the current view transform.
//
// In fit mode the transform scale is relative to the scale at which the
// whole canvas fits the view; otherwise 1.0 is one canvas pixel per
// CellWidth x CellHeight of a terminal cell.
type View struct {
	styles *styles.Styles

	format     domain.CanvasFormat
	title      string
	content    string
	hasContent bool
	loading    bool
	err        error
	transform  domain.ViewTransform
	fit        bool

	width  int
	height int
}

// NewView creates an empty preview.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		format:    domain.CanvasFormats[DefaultFormat],
		transform: domain.IdentityTransform(),
		width:     80,
		height:    24,
	}
}

// SetFormat selects the canvas format by key. Unknown keys select DefaultFormat.
func (v *View) SetFormat(key string) {
	f, ok := domain.CanvasFormats[domain.NormalizeCanvasFormat(key)]
	if !ok {
		f = domain.CanvasFormats[DefaultFormat]
	}
	v.format = f
}

// Format returns the canvas format.
func (v *View) Format() domain.CanvasFormat {
	return v.format
}

// SetTitle sets the heading shown above the frame.
func (v *View) SetTitle(title string) {
	v.title = title
}

// SetState copies content and loading state from the workspace.
func (v *View) SetState(state domain.WorkspaceState) {
	v.content = state.Content
	v.hasContent = state.HasContent
	v.loading = state.Loading
}

// SetError sets the load error to display. Nil clears it.
func (v *View) SetError(err error) {
	v.err = err
}

// SetTransform sets the zoom and pan.
func (v *View) SetTransform(t domain.ViewTransform) {
	v.transform = t
}

// SetFit switches fit mode.
func (v *View) SetFit(fit bool) {
	v.fit = fit
}

// Fit reports whether fit mode is on.
func (v *View) Fit() bool {
	return v.fit
}

// SetDimensions sets the size of the preview area in cells.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// FitScale returns the scale at which a canvas fills cols x rows cells.
func FitScale(f domain.CanvasFormat, cols, rows int) float64 {
	if f.Width <= 0 || f.Height <= 0 || cols <= 0 || rows <= 0 {
		return 1.0
	}
	sx := float64(cols) * CellWidth / float64(f.Width)
	sy := float64(rows) * CellHeight / float64(f.Height)
	return math.Min(sx, sy)
}

// EffectiveScale returns canvas pixels per pixel after applying fit mode.
func (v *View) EffectiveScale() float64 {
	if !v.fit {
		return v.transform.Scale
	}
	cols, rows := v.area()
	return FitScale(v.format, cols, rows) * v.transform.Scale
}

// FrameSize returns the inner size of the canvas frame in cells,
// clipped to the preview area.
func (v *View) FrameSize() (cols, rows int) {
	areaCols, areaRows := v.area()
	s := v.EffectiveScale()

	cols = int(math.Round(float64(v.format.Width) * s / CellWidth))
	rows = int(math.Round(float64(v.format.Height) * s / CellHeight))

	cols = clamp(cols, 1, areaCols)
	rows = clamp(rows, 1, areaRows)
	return cols, rows
}

// area is the space available inside the frame border.
func (v *View) area() (cols, rows int) {
	return max(v.width-2, 1), max(v.height-headerLines-2, 1)
}

// View renders the preview.
func (v *View) View() string {
	header := v.renderHeader()
	cols, rows := v.FrameSize()

	body := v.renderBody(cols, rows)
	frame := v.styles.CanvasFrame.Render(body)

	return header + "\n\n" + frame
}

func (v *View) renderHeader() string {
	title := v.title
	if title == "" {
		title = "No slide selected"
	}

	parts := []string{v.styles.Title.Render(title)}
	mode := fmt.Sprintf("%s %dx%d", v.format.Name, v.format.Width, v.format.Height)
	if v.fit {
		mode += " fit"
	}
	parts = append(parts, v.styles.Muted.Render(mode))
	parts = append(parts, v.styles.Badge.Render(fmt.Sprintf("%.0f%%", v.transform.Scale*100)))
	if v.loading {
		parts = append(parts, v.styles.Loading.Render("loading…"))
	}
	return strings.Join(parts, "  ")
}

func (v *View) renderBody(cols, rows int) string {
	var lines []string
	switch {
	case v.err != nil:
		lines = []string{v.styles.Error.Render(truncate(v.err.Error(), cols))}
	case !v.hasContent && v.loading:
		lines = []string{v.styles.Loading.Render(truncate("loading…", cols))}
	case !v.hasContent:
		lines = []string{v.styles.Muted.Render(truncate("nothing to preview", cols))}
	default:
		lines = v.visibleLines(cols, rows)
	}

	out := make([]string, rows)
	for i := range out {
		if i < len(lines) {
			out[i] = lines[i]
		}
		if pad := cols - lipgloss.Width(out[i]); pad > 0 {
			out[i] += strings.Repeat(" ", pad)
		}
	}
	return strings.Join(out, "\n")
}

// visibleLines applies the pan offset to the document text.
// Pan offsets are measured in cells; negative offsets show blank margin.
func (v *View) visibleLines(cols, rows int) []string {
	src := strings.Split(strings.ReplaceAll(v.content, "\t", "    "), "\n")

	rowOff := int(math.Round(v.transform.Pan.Y))
	colOff := int(math.Round(v.transform.Pan.X))

	lines := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		i := r + rowOff
		if i < 0 || i >= len(src) {
			lines = append(lines, "")
			continue
		}
		runes := []rune(strings.TrimRight(src[i], "\r"))
		var line string
		switch {
		case colOff >= len(runes):
			line = ""
		case colOff >= 0:
			line = string(runes[colOff:])
		default:
			line = strings.Repeat(" ", -colOff) + string(runes)
		}
		lines = append(lines, truncate(line, cols))
	}
	return lines
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
