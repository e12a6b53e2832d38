// Package reporter delivers non-fatal workspace errors to the user.
package reporter

import (
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/deckwork/internal/core/ports/driven"
	"github.com/custodia-labs/deckwork/internal/logger"
)

// Ensure the reporters implement the interface.
var (
	_ driven.ErrorReporter = (*Writer)(nil)
	_ driven.ErrorReporter = Func(nil)
	_ driven.ErrorReporter = (*Switch)(nil)
)

// Writer prints each error on its own line and logs it.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates a reporter writing to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// ReportError writes err to the output.
func (w *Writer) ReportError(err error) {
	if err == nil {
		return
	}
	logger.Warn("reported error", "error", err)

	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "error: %v\n", err)
}

// Func adapts a function to driven.ErrorReporter.
type Func func(error)

// ReportError calls f.
func (f Func) ReportError(err error) {
	if f != nil && err != nil {
		f(err)
	}
}

// Switch forwards errors to a target that can be replaced at runtime,
// e.g. from stderr to the status bar once the TUI is up.
type Switch struct {
	mu     sync.RWMutex
	target driven.ErrorReporter
}

// NewSwitch creates a switch forwarding to target. A nil target drops errors.
func NewSwitch(target driven.ErrorReporter) *Switch {
	return &Switch{target: target}
}

// Set replaces the target.
func (s *Switch) Set(target driven.ErrorReporter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = target
}

// ReportError forwards err to the current target.
func (s *Switch) ReportError(err error) {
	s.mu.RLock()
	target := s.target
	s.mu.RUnlock()

	if target != nil && err != nil {
		target.ReportError(err)
	}
}
