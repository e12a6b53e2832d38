package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/deckwork/internal/adapters/driven/config/file"
	"github.com/custodia-labs/deckwork/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/deckwork/internal/adapters/driven/fswatch"
	"github.com/custodia-labs/deckwork/internal/adapters/driven/httpasset"
	"github.com/custodia-labs/deckwork/internal/adapters/driven/reporter"
	"github.com/custodia-labs/deckwork/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/deckwork/internal/adapters/driving/cli"
	"github.com/custodia-labs/deckwork/internal/core/ports/driven"
	"github.com/custodia-labs/deckwork/internal/core/ports/driving"
	"github.com/custodia-labs/deckwork/internal/core/services"
	"github.com/custodia-labs/deckwork/internal/logger"
	"github.com/custodia-labs/deckwork/internal/metrics"
)

// bootstrap builds the settings service and the session factory from the
// global flags. Without --data-dir, data lives next to the configuration.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settings := services.NewSettingsService(configStore)

	dataDir := opts.DataDir
	if dataDir == "" && opts.ConfigDir != "" {
		dataDir = filepath.Join(opts.ConfigDir, "data")
	}

	return &cli.Services{
		Settings: settings,
		NewSession: func(so cli.SessionOptions) (*cli.Session, error) {
			return newSession(settings, dataDir, so)
		},
	}, nil
}

// newSession wires one engine: filesystem or HTTP fetchers, the poller,
// the workspace, the canvas, the studio and its stores.
func newSession(settingsService driving.SettingsService, dataDir string, opts cli.SessionOptions) (*cli.Session, error) {
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("invalid settings, using defaults", "error", err)
		settings = settingsService.GetDefaults()
	}
	if opts.PollInterval > 0 {
		settings.PollInterval = opts.PollInterval
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	files := filesystem.NewStore()
	var timestamps driven.TimestampFetcher = files
	var content driven.ContentFetcher = files
	if opts.BaseURL != "" {
		fetcher, err := httpasset.NewFetcher(opts.BaseURL)
		if err != nil {
			store.Close()
			return nil, err
		}
		timestamps, content = fetcher, fetcher
	}

	stderr := reporter.NewWriter(os.Stderr)
	errs := reporter.NewSwitch(stderr)
	recorder := metrics.NewPrometheusRecorder(nil)

	poller := services.NewFilePoller(timestamps,
		services.WithInterval(settings.PollInterval),
		services.WithMetrics(recorder),
		services.WithReporter(errs),
	)
	canvas := services.NewCanvas(settings)
	workspace := services.NewWorkspace(services.NewDeck(), content, errs, recorder)
	studio := services.NewStudio(services.StudioDeps{
		Scanner:    files,
		DirWatcher: fswatch.NewWatcher(fswatch.DefaultDebounce, nil),
		Sessions:   store.SessionStore(),
		Poller:     poller,
		Workspace:  workspace,
		Canvas:     canvas,
		Reporter:   errs,
	})

	shortcuts := services.NewShortcutDispatcher()
	shortcuts.BindCanvas(canvas)

	logger.Debug("session wired", "data", store.Path(), "interval", settings.PollInterval, "remote", opts.BaseURL != "")

	return &cli.Session{
		Workspace: workspace,
		View:      canvas,
		Studio:    studio,
		Shortcuts: shortcuts,
		Poller:    poller,
		RouteErrors: func(fn func(error)) {
			if fn == nil {
				errs.Set(stderr)
				return
			}
			errs.Set(reporter.Func(fn))
		},
		Metrics: recorder.Handler(),
		Close:   store.Close,
	}, nil
}
