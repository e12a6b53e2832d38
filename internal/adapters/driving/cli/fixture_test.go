package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/deckwork/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/services"
)

const projectRoot = "/decks/quarterly_ppt169_20250101"

func slidePath(name string) string {
	return projectRoot + "/svg_output/" + name + ".svg"
}

// cliFixture injects services over an in-memory project.
type cliFixture struct {
	files    *memory.FileStore
	sessions *memory.SessionStore
	config   *memory.ConfigStore
	clock    *clockwork.FakeClock

	lastOpts SessionOptions
	opened   int
	closed   int
}

func newCLIFixture(t *testing.T, names ...string) *cliFixture {
	t.Helper()

	f := &cliFixture{
		files:    memory.NewFileStore(),
		sessions: memory.NewSessionStore(),
		config:   memory.NewConfigStore(),
		clock:    clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)),
	}
	for _, n := range names {
		f.files.Write(slidePath(n), "<svg>"+n+"</svg>", f.clock.Now())
	}

	prevSettings, prevFactory, prevBootstrap := settingsService, sessionFactory, bootstrap
	settingsService = services.NewSettingsService(f.config)
	sessionFactory = f.newSession
	bootstrap = nil

	t.Cleanup(func() {
		settingsService, sessionFactory, bootstrap = prevSettings, prevFactory, prevBootstrap
		resetFlags()
	})
	return f
}

func (f *cliFixture) newSession(opts SessionOptions) (*Session, error) {
	f.lastOpts = opts
	f.opened++

	pollOpts := []services.PollerOption{services.WithClock(f.clock)}
	if opts.PollInterval > 0 {
		pollOpts = append(pollOpts, services.WithInterval(opts.PollInterval))
	}
	poller := services.NewFilePoller(f.files, pollOpts...)

	canvas := services.NewCanvas(domain.DefaultWorkspaceSettings())
	workspace := services.NewWorkspace(services.NewDeck(), f.files, nil, nil)
	studio := services.NewStudio(services.StudioDeps{
		Scanner:   f.files,
		Sessions:  f.sessions,
		Poller:    poller,
		Workspace: workspace,
		Canvas:    canvas,
		Clock:     f.clock,
	})
	shortcuts := services.NewShortcutDispatcher()
	shortcuts.BindCanvas(canvas)

	return &Session{
		Workspace: workspace,
		View:      canvas,
		Studio:    studio,
		Shortcuts: shortcuts,
		Poller:    poller,
		Close: func() error {
			f.closed++
			return nil
		},
	}, nil
}

// run executes the root command with args. The context is cancelled
// up front so long-running commands return after their setup.
func run(args ...string) (string, error) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return runContext(ctx, args...)
}

func runContext(ctx context.Context, args ...string) (string, error) {
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

// resetFlags restores package flag variables between executions.
func resetFlags() {
	verbose = false
	configDir, dataDir = "", ""
	watchInterval, watchMetricsAddr, watchURL = 0, "", ""
	slidesJSON = false
	tuiLogFile = ""
	resetCommandFlags(rootCmd)
}

// resetCommandFlags puts every flag of cmd and its subcommands back to its
// default. Cobra keeps --help set on a command after it has been run.
func resetCommandFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetCommandFlags(sub)
	}
}
