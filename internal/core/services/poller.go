package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driven"
	"github.com/custodia-labs/deckwork/internal/core/ports/driving"
	"github.com/custodia-labs/deckwork/internal/logger"
)

// Ensure FilePoller implements the interface.
var _ driving.WatchService = (*FilePoller)(nil)

// PollerOption configures a FilePoller.
type PollerOption func(*FilePoller)

// WithClock sets the clock driving the poll ticker.
func WithClock(clock clockwork.Clock) PollerOption {
	return func(p *FilePoller) {
		p.clock = clock
	}
}

// WithInterval sets the delay between two polls.
func WithInterval(d time.Duration) PollerOption {
	return func(p *FilePoller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m driven.Metrics) PollerOption {
	return func(p *FilePoller) {
		if m != nil {
			p.metrics = m
		}
	}
}

// WithReporter sets where per-path failures are reported.
func WithReporter(r driven.ErrorReporter) PollerOption {
	return func(p *FilePoller) {
		if r != nil {
			p.reporter = r
		}
	}
}

// FilePoller detects external edits by polling modification timestamps.
//
// One session is active at a time. A session starts when Watch is called
// with a new (root, paths) pair: it records a baseline timestamp for every
// path and then polls every interval, raising a FileChange when a path's
// timestamp moves strictly forward. Stop (or a new Watch) ends the session;
// once it returns, the old session never calls onChange or reports errors.
//
// onChange runs while the session's emit lock is held, so it must not call
// Stop or Watch, nor wait on a goroutine that does.
type FilePoller struct {
	fetcher  driven.TimestampFetcher
	clock    clockwork.Clock
	interval time.Duration
	metrics  driven.Metrics
	reporter driven.ErrorReporter

	mu        sync.Mutex
	session   *pollSession
	lastToken domain.SessionToken
}

type pollSession struct {
	token    domain.SessionToken
	root     string
	paths    []string
	onChange func(domain.FileChange)

	ctx    context.Context
	cancel context.CancelFunc

	// emitMu guards closed and every callback invocation.
	emitMu sync.Mutex
	closed bool

	// pollMu serializes ticks and guards entries.
	pollMu  sync.Mutex
	entries []domain.WatchEntry

	ready chan struct{}
	done  chan struct{}
}

// NewFilePoller creates an idle poller.
func NewFilePoller(fetcher driven.TimestampFetcher, opts ...PollerOption) *FilePoller {
	p := &FilePoller{
		fetcher:  fetcher,
		clock:    clockwork.NewRealClock(),
		interval: domain.DefaultPollInterval,
		metrics:  nopMetrics{},
		reporter: nopReporter{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Watch starts polling paths under root and returns the session token.
// Baselines are read before Watch returns, so any edit made after that
// is detected by a later poll. Watching the pair that is already active
// is a no-op. An empty root or an empty path list stops polling and
// returns 0.
func (p *FilePoller) Watch(
	ctx context.Context,
	root string,
	paths []string,
	onChange func(domain.FileChange),
) domain.SessionToken {
	p.mu.Lock()
	if s := p.session; s != nil && s.root == root && slices.Equal(s.paths, paths) {
		p.mu.Unlock()
		return s.token
	}

	old := p.session
	p.session = nil

	if root == "" || len(paths) == 0 {
		p.mu.Unlock()
		p.teardown(old)
		return 0
	}

	p.lastToken++
	sctx, cancel := context.WithCancel(ctx)
	s := &pollSession{
		token:    p.lastToken,
		root:     root,
		paths:    slices.Clone(paths),
		onChange: onChange,
		ctx:      sctx,
		cancel:   cancel,
		entries:  make([]domain.WatchEntry, len(paths)),
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
	}
	for i, path := range s.paths {
		s.entries[i].Path = path
	}
	p.session = s
	p.mu.Unlock()

	p.teardown(old)

	p.initialize(s)
	close(s.ready)

	logger.Debug("poller: session started", "session", s.token, "root", root, "paths", len(paths))
	go p.run(s)
	return s.token
}

// Stop ends the active session, if any.
func (p *FilePoller) Stop() {
	p.mu.Lock()
	old := p.session
	p.session = nil
	p.mu.Unlock()

	p.teardown(old)
}

// PollNow runs one poll of the active session synchronously.
func (p *FilePoller) PollNow(ctx context.Context) error {
	p.mu.Lock()
	s := p.session
	p.mu.Unlock()

	if s == nil {
		return domain.ErrNoWatchSession
	}

	select {
	case <-s.ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	p.tick(s)
	return nil
}

// Session returns the active session token, or 0 when idle.
func (p *FilePoller) Session() domain.SessionToken {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return 0
	}
	return p.session.token
}

// Entries returns the watch entries of the active session.
func (p *FilePoller) Entries() []domain.WatchEntry {
	p.mu.Lock()
	s := p.session
	p.mu.Unlock()

	if s == nil {
		return nil
	}

	s.pollMu.Lock()
	defer s.pollMu.Unlock()
	return slices.Clone(s.entries)
}

func (p *FilePoller) teardown(s *pollSession) {
	if s == nil {
		return
	}
	s.cancel()

	s.emitMu.Lock()
	s.closed = true
	s.emitMu.Unlock()

	logger.Debug("poller: session stopped", "session", s.token)
}

func (p *FilePoller) run(s *pollSession) {
	defer close(s.done)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.Chan():
			p.tick(s)
		}
	}
}

func (p *FilePoller) initialize(s *pollSession) {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()

	for i, path := range s.paths {
		if s.ctx.Err() != nil {
			return
		}
		ts, err := p.fetcher.FetchTimestamp(s.ctx, path)
		if err != nil {
			p.reportWatchError(s, path, err)
			continue
		}
		s.entries[i].LastSeen = ts
	}
}

func (p *FilePoller) tick(s *pollSession) {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()

	if s.ctx.Err() != nil {
		return
	}
	p.metrics.PollTick()

	for i := range s.entries {
		if s.ctx.Err() != nil {
			return
		}
		entry := s.entries[i]

		ts, err := p.fetcher.FetchTimestamp(s.ctx, entry.Path)
		if err != nil {
			p.reportWatchError(s, entry.Path, err)
			continue
		}

		if entry.HasBaseline() && ts.After(entry.LastSeen) {
			change := domain.FileChange{
				Session:  s.token,
				Path:     entry.Path,
				Previous: entry.LastSeen,
				Current:  ts,
			}
			s.emit(func() {
				p.metrics.FileChanged()
				logger.Debug("poller: file changed", "session", s.token, "path", entry.Path)
				if s.onChange != nil {
					s.onChange(change)
				}
			})
		}
		s.entries[i].LastSeen = ts
	}
}

func (p *FilePoller) reportWatchError(s *pollSession, path string, err error) {
	s.emit(func() {
		p.metrics.WatchError()
		logger.Warn("poller: skipping path", "session", s.token, "path", path, "error", err)
		p.reporter.ReportError(&domain.WatchIOError{Path: path, Err: err})
	})
}

// emit runs fn unless the session has been torn down.
func (s *pollSession) emit(fn func()) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	if s.closed {
		return
	}
	fn()
}

type nopMetrics struct{}

func (nopMetrics) PollTick()              {}
func (nopMetrics) FileChanged()           {}
func (nopMetrics) WatchError()            {}
func (nopMetrics) ContentLoaded()         {}
func (nopMetrics) ContentFailed()         {}
func (nopMetrics) StaleContentDiscarded() {}

type nopReporter struct{}

func (nopReporter) ReportError(error) {}
