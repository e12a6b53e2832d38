package services

import (
	"sync"

	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driving"
)

// Ensure ShortcutDispatcher implements the interface.
var _ driving.ShortcutService = (*ShortcutDispatcher)(nil)

// ShortcutDispatcher maps logical actions to handlers.
// Dispatch is suppressed while disabled, e.g. when a text input has focus.
type ShortcutDispatcher struct {
	mu       sync.RWMutex
	handlers map[domain.Action]func()
	enabled  bool
}

// NewShortcutDispatcher creates an enabled dispatcher with no bindings.
func NewShortcutDispatcher() *ShortcutDispatcher {
	return &ShortcutDispatcher{
		handlers: make(map[domain.Action]func()),
		enabled:  true,
	}
}

// Bind sets the handler of an action, replacing any previous one.
func (d *ShortcutDispatcher) Bind(action domain.Action, handler func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[action] = handler
}

// Dispatch runs the handler bound to action.
// Returns false when disabled or when nothing is bound.
func (d *ShortcutDispatcher) Dispatch(action domain.Action) bool {
	d.mu.RLock()
	handler, ok := d.handlers[action]
	enabled := d.enabled
	d.mu.RUnlock()

	if !enabled || !ok || handler == nil {
		return false
	}
	handler()
	return true
}

// SetEnabled turns dispatching on or off.
func (d *ShortcutDispatcher) SetEnabled(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = enabled
}

// Enabled reports whether dispatching is on.
func (d *ShortcutDispatcher) Enabled() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.enabled
}

// BindCanvas binds the zoom and reset actions to a canvas.
func (d *ShortcutDispatcher) BindCanvas(c driving.ViewService) {
	d.Bind(domain.ActionZoomIn, c.ZoomIn)
	d.Bind(domain.ActionZoomOut, c.ZoomOut)
	d.Bind(domain.ActionResetView, c.Reset)
	d.Bind(domain.ActionFitView, c.ResetToFit)
}
