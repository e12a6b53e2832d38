package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

// fakeTimestamps is an in-memory TimestampFetcher.
type fakeTimestamps struct {
	mu     sync.Mutex
	times  map[string]time.Time
	errs   map[string]error
	calls  map[string]int
	onCall func(path string)
}

func newFakeTimestamps() *fakeTimestamps {
	return &fakeTimestamps{
		times: make(map[string]time.Time),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (f *fakeTimestamps) set(path string, t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.times[path] = t
	delete(f.errs, path)
}

func (f *fakeTimestamps) fail(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[path] = err
}

func (f *fakeTimestamps) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeTimestamps) FetchTimestamp(_ context.Context, path string) (time.Time, error) {
	f.mu.Lock()
	f.calls[path]++
	onCall := f.onCall
	err := f.errs[path]
	t, ok := f.times[path]
	f.mu.Unlock()

	if onCall != nil {
		onCall(path)
	}
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return time.Time{}, domain.ErrNotFound
	}
	return t, nil
}

// fakeContent is a ContentFetcher backed by a function.
type fakeContent struct {
	FetchFunc func(ctx context.Context, path string) (string, error)
}

func (f *fakeContent) FetchContent(ctx context.Context, path string) (string, error) {
	if f.FetchFunc != nil {
		return f.FetchFunc(ctx, path)
	}
	return "<svg>" + path + "</svg>", nil
}

// recordingReporter collects reported errors.
type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) ReportError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recordingReporter) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]error, len(r.errs))
	copy(out, r.errs)
	return out
}

// countingMetrics counts recorded events.
type countingMetrics struct {
	mu                                          sync.Mutex
	ticks, changes, watchErrs, loaded, failed, stale int
}

func (m *countingMetrics) PollTick()              { m.inc(&m.ticks) }
func (m *countingMetrics) FileChanged()           { m.inc(&m.changes) }
func (m *countingMetrics) WatchError()            { m.inc(&m.watchErrs) }
func (m *countingMetrics) ContentLoaded()         { m.inc(&m.loaded) }
func (m *countingMetrics) ContentFailed()         { m.inc(&m.failed) }
func (m *countingMetrics) StaleContentDiscarded() { m.inc(&m.stale) }

func (m *countingMetrics) inc(n *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*n++
}

func (m *countingMetrics) get(n *int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *n
}

// fakeScanner returns a configurable slide list.
type fakeScanner struct {
	mu     sync.Mutex
	slides []domain.Slide
	err    error
	onScan func()
}

func (s *fakeScanner) setSlides(slides []domain.Slide) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slides = slides
}

func (s *fakeScanner) ScanSlides(_ context.Context, _ string) ([]domain.Slide, error) {
	s.mu.Lock()
	hook := s.onScan
	s.mu.Unlock()
	if hook != nil {
		hook()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Slide, len(s.slides))
	copy(out, s.slides)
	return out, nil
}

func (s *fakeScanner) SlideDir(root string) string {
	return root + "/" + domain.SlideDirName
}

// fakeDirWatcher captures the change callback so tests can trigger it.
type fakeDirWatcher struct {
	mu       sync.Mutex
	dir      string
	onChange func()
	stopped  bool
}

func (w *fakeDirWatcher) WatchDir(_ context.Context, dir string, onChange func()) (func() error, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dir = dir
	w.onChange = onChange
	w.stopped = false
	return func() error {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.stopped = true
		return nil
	}, nil
}

func (w *fakeDirWatcher) trigger() {
	w.mu.Lock()
	fn := w.onChange
	w.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func makeSlides(ids ...string) []domain.Slide {
	slides := make([]domain.Slide, len(ids))
	for i, id := range ids {
		slides[i] = domain.Slide{ID: id, Path: "/deck/svg_output/" + id + ".svg", Index: i}
	}
	return slides
}

func slideIDs(slides []domain.Slide) []string {
	ids := make([]string, len(slides))
	for i, s := range slides {
		ids[i] = s.ID
	}
	return ids
}
