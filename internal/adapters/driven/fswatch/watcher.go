// Package fswatch reports changes to the set of slides in a directory
// using filesystem notifications.
package fswatch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"

	"github.com/custodia-labs/deckwork/internal/core/ports/driven"
	"github.com/custodia-labs/deckwork/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DirectoryWatcher = (*Watcher)(nil)

// DefaultDebounce groups bursts of events, e.g. a renderer rewriting every slide.
const DefaultDebounce = 300 * time.Millisecond

// Watcher creates debounced directory watches.
type Watcher struct {
	debounce time.Duration
	clock    clockwork.Clock
}

// NewWatcher creates a watcher. A non-positive debounce uses DefaultDebounce.
func NewWatcher(debounce time.Duration, clock clockwork.Clock) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Watcher{debounce: debounce, clock: clock}
}

// WatchDir calls onChange after .svg entries of dir are created, removed or
// renamed. Content writes are left to the timestamp poller.
func (w *Watcher) WatchDir(ctx context.Context, dir string, onChange func()) (func() error, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", dir, err)
	}

	dw := &dirWatch{
		dir:      dir,
		watcher:  fw,
		onChange: onChange,
		debounce: w.debounce,
		clock:    w.clock,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	go dw.loop(ctx)

	logger.Debug("fswatch: watching", "dir", dir)
	return dw.stop, nil
}

type dirWatch struct {
	dir      string
	watcher  *fsnotify.Watcher
	onChange func()
	debounce time.Duration
	clock    clockwork.Clock

	mu     sync.Mutex
	timer  clockwork.Timer
	closed bool

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

func (d *dirWatch) loop(ctx context.Context) {
	defer close(d.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stopCh:
			return
		case event, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("fswatch: event", "op", event.Op.String(), "file", event.Name)
			d.schedule()
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("fswatch: watcher error", "dir", d.dir, "error", err)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".svg") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

// schedule restarts the debounce timer.
func (d *dirWatch) schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.debounce, d.fire)
}

func (d *dirWatch) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.onChange == nil {
		return
	}
	d.onChange()
}

func (d *dirWatch) stop() error {
	var err error
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		if d.timer != nil {
			d.timer.Stop()
		}
		d.mu.Unlock()

		close(d.stopCh)
		err = d.watcher.Close()
		<-d.done
		logger.Debug("fswatch: stopped", "dir", d.dir)
	})
	return err
}
