// Package cli implements the deckwork command line interface.
package cli

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckwork/internal/core/ports/driving"
	"github.com/custodia-labs/deckwork/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

// Services injected by SetServices or built by the bootstrap.
var (
	settingsService driving.SettingsService
	sessionFactory  SessionFactory
	bootstrap       Bootstrap
)

// Options carries the global flags to the bootstrap.
type Options struct {
	ConfigDir string
	DataDir   string
	Verbose   bool
}

// Services are the dependencies the commands run against.
type Services struct {
	Settings   driving.SettingsService
	NewSession SessionFactory
}

// Bootstrap builds the services once the global flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

// SessionOptions tunes one session.
type SessionOptions struct {
	// PollInterval overrides the configured poll interval when positive.
	PollInterval time.Duration

	// BaseURL makes timestamps and content come from an HTTP server
	// instead of the local filesystem.
	BaseURL string
}

// Session is the set of engine services serving one project.
type Session struct {
	Workspace driving.WorkspaceService
	View      driving.ViewService
	Studio    driving.StudioService
	Shortcuts driving.ShortcutService

	// Poller is the file poller behind the studio, usable on its own
	// to watch an explicit list of paths.
	Poller driving.WatchService

	// RouteErrors sends background error reports to fn.
	// A nil fn restores the default route.
	RouteErrors func(fn func(error))

	// Metrics serves the session metrics. May be nil.
	Metrics http.Handler

	// Close releases the stores held by the session.
	Close func() error
}

// SessionFactory builds the services for a new session.
type SessionFactory func(opts SessionOptions) (*Session, error)

var rootCmd = &cobra.Command{
	Use:   "deckwork",
	Short: "Live preview workspace for SVG slide decks",
	Long: `deckwork opens a slide project, lists its rendered SVG slides in order
and previews the current one with zoom and pan. Slide files are polled for
edits and reloaded as soon as they change.

A project is a directory named name_format_YYYYMMDD whose svg_output
sub-directory holds the slides.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.deckwork)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.deckwork/data)")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds the services from the
// global flags. It is skipped for services already set with SetServices.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects the services directly.
func SetServices(s *Services) {
	if s == nil {
		settingsService, sessionFactory = nil, nil
		return
	}
	settingsService = s.Settings
	sessionFactory = s.NewSession
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[annotationNoServices] == "true" {
		return nil
	}
	if bootstrap == nil || (settingsService != nil && sessionFactory != nil) {
		return nil
	}

	services, err := bootstrap(Options{ConfigDir: configDir, DataDir: dataDir, Verbose: verbose})
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

// annotationNoServices marks commands that run without the bootstrap.
const annotationNoServices = "deckwork/no-services"

// newSession builds a session from the injected factory.
func newSession(opts SessionOptions) (*Session, error) {
	if sessionFactory == nil {
		return nil, errors.New("session factory not configured")
	}
	return sessionFactory(opts)
}

// closeSession stops the studio and releases the session stores.
func closeSession(cmd *cobra.Command, s *Session) {
	if err := s.Studio.Close(context.WithoutCancel(cmd.Context())); err != nil {
		cmd.PrintErrf("warning: %v\n", err)
	}
	if s.Close != nil {
		if err := s.Close(); err != nil {
			cmd.PrintErrf("warning: %v\n", err)
		}
	}
}

// projectArg returns the project directory named by args, or the
// working directory.
func projectArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return filepath.Clean(args[0])
	}
	return "."
}
