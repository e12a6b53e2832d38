package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"

	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui/views/preview"
	"github.com/custodia-labs/deckwork/internal/core/domain"
)

// DoubleClickWindow is the longest gap between two clicks on the preview
// that still counts as a double-click.
const DoubleClickWindow = 400 * time.Millisecond

// Pan step per key press, in cells.
const (
	panStepX = 4
	panStepY = 1
)

const (
	listWidth   = 28
	goToHeight  = 3
	statusLines = 1
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// clock times double-clicks.
	clock clockwork.Clock

	styles *styles.Styles
	keymap *keymap.KeyMap

	slideList *list.SlideList
	preview   *preview.View
	goTo      *input.GoToInput
	statusBar *status.Bar

	// root is the project opened by Init, if any.
	root string

	project domain.ProjectInfo
	opened  bool

	// queued is the load raised by a shortcut handler during the current Update.
	queued *domain.LoadRequest

	// zoomBits and fitRequested are written by view listeners, which may
	// run off the event loop (e.g. Open resets the view), and read by sync.
	zoomBits     atomic.Uint64
	fitRequested atomic.Bool

	showHelp bool

	// err holds the last error that occurred.
	err error

	lastClick    time.Time
	dragging     bool
	dragX, dragY int

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// It binds slide navigation to the shortcut dispatcher and takes over the
// view's zoom and fit listeners.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:     ports,
		ctx:       context.Background(),
		clock:     clockwork.NewRealClock(),
		styles:    s,
		keymap:    km,
		slideList: list.NewSlideList(s),
		preview:   preview.NewView(s),
		goTo:      input.NewGoToInput(s),
		statusBar: status.NewBar(s, km),
	}

	ports.Shortcuts.Bind(domain.ActionPreviousSlide, func() {
		a.queued = a.ports.Workspace.PreviousSlide()
	})
	ports.Shortcuts.Bind(domain.ActionNextSlide, func() {
		a.queued = a.ports.Workspace.NextSlide()
	})
	a.zoomBits.Store(math.Float64bits(ports.View.Scale()))
	ports.View.OnZoom(func(scale float64) {
		a.zoomBits.Store(math.Float64bits(scale))
	})
	ports.View.OnFit(func() {
		a.fitRequested.Store(true)
	})

	a.sync()
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithProject sets the project directory opened on start.
func (a *App) WithProject(root string) *App {
	a.root = root
	return a
}

// WithClock sets the clock used to detect double-clicks.
func (a *App) WithClock(clock clockwork.Clock) *App {
	a.clock = clock
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("deckwork")}
	if a.root != "" {
		cmds = append(cmds, a.openProject(a.root))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case messages.ProjectOpened:
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.project = *msg.Info
		a.opened = true
		a.preview.SetFormat(a.project.Name.Format)
		a.preview.SetFit(true)
		a.statusBar.Clear()
		a.sync()
		return a, a.load(msg.Request)

	case messages.ContentLoaded:
		if !a.ports.Workspace.Apply(msg.Result) {
			// A newer request superseded this one.
			return a, nil
		}
		if msg.Result.Err != nil {
			a.preview.SetError(msg.Result.Err)
			a.fail(msg.Result.Err)
		} else if a.statusBar.State() == status.StateLoading {
			a.statusBar.SetState(status.StateReady)
		}
		a.sync()
		return a, nil

	case messages.FileChanged:
		a.statusBar.SetMessage("updated " + slideName(msg.Change.Path))
		a.sync()
		return a, a.load(msg.Request)

	case messages.SlidesChanged:
		a.statusBar.SetMessage(fmt.Sprintf("%d slides", len(msg.Slides)))
		a.sync()
		return a, a.load(msg.Request)

	case messages.Rescanned:
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.statusBar.Clear()
		a.statusBar.SetMessage("rescanned")
		a.sync()
		return a, a.load(msg.Request)

	case messages.ErrorOccurred:
		// Load failures are shown when their ContentLoaded arrives.
		var loadErr *domain.ContentLoadError
		if errors.As(msg.Err, &loadErr) {
			return a, nil
		}
		a.fail(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	if a.goTo.Focused() {
		var cmd tea.Cmd
		a.goTo, cmd = a.goTo.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleKey routes key presses: the go-to prompt first, then app keys,
// then the shortcut dispatcher.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		return a, tea.Quit
	}
	if a.goTo.Focused() {
		return a.handleGoToKey(msg)
	}

	km := a.keymap
	switch {
	case keymap.Matches(k, km.Quit):
		return a, tea.Quit

	case keymap.Matches(k, km.Help):
		a.showHelp = !a.showHelp
		return a, nil

	case keymap.Matches(k, km.Cancel):
		a.showHelp = false
		return a, nil

	case keymap.Matches(k, km.GoTo):
		a.ports.Shortcuts.SetEnabled(false)
		a.statusBar.SetState(status.StateGoTo)
		cmd := a.goTo.Open()
		a.layout()
		return a, cmd

	case keymap.Matches(k, km.Refresh):
		return a, a.rescan()

	case keymap.Matches(k, km.MoveUp):
		return a, a.moveCurrent(-1)

	case keymap.Matches(k, km.MoveDown):
		return a, a.moveCurrent(1)

	case keymap.Matches(k, km.PanLeft):
		return a, a.pan(-panStepX, 0)

	case keymap.Matches(k, km.PanRight):
		return a, a.pan(panStepX, 0)

	case keymap.Matches(k, km.PanUp):
		return a, a.pan(0, -panStepY)

	case keymap.Matches(k, km.PanDown):
		return a, a.pan(0, panStepY)
	}

	return a, a.dispatch(km.Action(k))
}

func (a *App) handleGoToKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, a.keymap.Cancel):
		a.closeGoTo()
		return a, nil

	case keymap.Matches(k, a.keymap.Confirm):
		n, ok := a.goTo.Number()
		value := strings.TrimSpace(a.goTo.Value())
		a.closeGoTo()
		slides := a.ports.Workspace.Slides()
		if !ok || n > len(slides) {
			a.fail(fmt.Errorf("%w: %q", ErrInvalidSlideNumber, value))
			return a, nil
		}
		req := a.ports.Workspace.SelectSlide(slides[n-1].ID)
		a.sync()
		return a, a.load(req)
	}

	var cmd tea.Cmd
	a.goTo, cmd = a.goTo.Update(msg)
	return a, cmd
}

func (a *App) closeGoTo() {
	a.goTo.Close()
	a.ports.Shortcuts.SetEnabled(true)
	a.statusBar.Clear()
	a.layout()
}

// dispatch runs a shortcut action and returns the load it raised.
func (a *App) dispatch(action domain.Action) tea.Cmd {
	if action == domain.ActionNone {
		return nil
	}
	if action == domain.ActionResetView {
		a.preview.SetFit(false)
	}

	a.queued = nil
	if !a.ports.Shortcuts.Dispatch(action) {
		return nil
	}
	req := a.queued
	a.queued = nil

	a.sync()
	return a.load(req)
}

func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.goTo.Focused() || a.showHelp {
		return a, nil
	}
	inList := msg.X < listWidth+1

	switch {
	case msg.Button == tea.MouseButtonWheelUp && !inList:
		return a, a.dispatch(domain.ActionZoomIn)

	case msg.Button == tea.MouseButtonWheelDown && !inList:
		return a, a.dispatch(domain.ActionZoomOut)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if inList {
			slide, ok := a.slideList.SlideAt(msg.Y)
			if !ok {
				return a, nil
			}
			req := a.ports.Workspace.SelectSlide(slide.ID)
			a.sync()
			return a, a.load(req)
		}

		now := a.clock.Now()
		if !a.lastClick.IsZero() && now.Sub(a.lastClick) <= DoubleClickWindow {
			a.lastClick = time.Time{}
			a.dragging = false
			return a, a.dispatch(domain.ActionResetView)
		}
		a.lastClick = now
		a.dragging = true
		a.dragX, a.dragY = msg.X, msg.Y
		return a, nil

	case msg.Action == tea.MouseActionMotion && a.dragging:
		dx, dy := a.dragX-msg.X, a.dragY-msg.Y
		a.dragX, a.dragY = msg.X, msg.Y
		return a, a.pan(float64(dx), float64(dy))

	case msg.Action == tea.MouseActionRelease:
		a.dragging = false
	}
	return a, nil
}

func (a *App) pan(dx, dy float64) tea.Cmd {
	a.ports.View.Pan(dx, dy)
	a.preview.SetTransform(a.ports.View.Transform())
	return nil
}

// moveCurrent moves the current slide by delta positions.
func (a *App) moveCurrent(delta int) tea.Cmd {
	idx := a.currentIndex()
	if idx < 0 {
		return nil
	}
	req := a.ports.Workspace.ReorderSlide(idx, idx+delta)
	a.sync()
	return a.load(req)
}

func (a *App) currentIndex() int {
	cur, ok := a.ports.Workspace.Current()
	if !ok {
		return -1
	}
	for i, s := range a.ports.Workspace.Slides() {
		if s.ID == cur.ID {
			return i
		}
	}
	return -1
}

// load returns a command fetching the content of req off the event loop.
func (a *App) load(req *domain.LoadRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	a.preview.SetError(nil)
	switch a.statusBar.State() {
	case status.StateGoTo:
	case status.StateError:
		a.statusBar.Clear()
		a.statusBar.SetState(status.StateLoading)
	default:
		a.statusBar.SetState(status.StateLoading)
	}

	r := *req
	ctx := a.ctx
	ws := a.ports.Workspace
	return func() tea.Msg {
		return messages.ContentLoaded{Result: ws.Load(ctx, r)}
	}
}

func (a *App) openProject(root string) tea.Cmd {
	ctx := a.ctx
	studio := a.ports.Studio
	return func() tea.Msg {
		info, req, err := studio.Open(ctx, root)
		return messages.ProjectOpened{Info: info, Request: req, Err: err}
	}
}

func (a *App) rescan() tea.Cmd {
	ctx := a.ctx
	studio := a.ports.Studio
	return func() tea.Msg {
		req, err := studio.Rescan(ctx)
		return messages.Rescanned{Request: req, Err: err}
	}
}

func (a *App) fail(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

// sync copies workspace and view state into the components.
func (a *App) sync() {
	ws := a.ports.Workspace
	state := ws.State()
	slides := ws.Slides()

	a.slideList.SetSlides(slides, state.CurrentSlideID)
	a.preview.SetState(state)
	a.preview.SetTransform(a.ports.View.Transform())
	a.statusBar.SetScale(math.Float64frombits(a.zoomBits.Load()))
	if a.fitRequested.Swap(false) {
		a.preview.SetFit(true)
	}

	position := 0
	title := ""
	if cur, ok := ws.Current(); ok {
		title = slideName(cur.Path)
		position = a.currentIndex() + 1
	}
	a.preview.SetTitle(title)
	a.statusBar.SetPosition(position, len(slides), state.Progress)

	if !state.Loading && a.statusBar.State() == status.StateLoading {
		a.statusBar.SetState(status.StateReady)
	}
}

func (a *App) layout() {
	a.statusBar.SetWidth(a.width)

	bodyHeight := a.height - statusLines
	if a.goTo.Focused() {
		bodyHeight -= goToHeight
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	a.slideList.SetDimensions(listWidth, bodyHeight)
	a.preview.SetDimensions(a.width-listWidth-2, bodyHeight)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	right := a.preview.View()
	if a.showHelp {
		right = a.viewHelp()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, a.slideList.View(), " ", right)

	parts := []string{body}
	if a.goTo.Focused() {
		parts = append(parts, a.goTo.View())
	}
	parts = append(parts, a.statusBar.View())
	return strings.Join(parts, "\n")
}

// viewHelp renders the keybinding overlay.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n")

	for _, group := range a.keymap.FullHelp() {
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("double-click preview  reset view"))
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[esc] close help"))
	return b.String()
}

func slideName(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Project returns the open project.
func (a *App) Project() (domain.ProjectInfo, bool) {
	return a.project, a.opened
}

// Status returns the status bar state.
func (a *App) Status() status.State {
	return a.statusBar.State()
}

// StatusMessage returns the status bar message.
func (a *App) StatusMessage() string {
	return a.statusBar.Message()
}

// FitMode reports whether the preview fits the canvas to the view.
func (a *App) FitMode() bool {
	return a.preview.Fit()
}

// HelpVisible reports whether the help overlay is shown.
func (a *App) HelpVisible() bool {
	return a.showHelp
}

// GoToOpen reports whether the go-to prompt has focus.
func (a *App) GoToOpen() bool {
	return a.goTo.Focused()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.layout()
}
