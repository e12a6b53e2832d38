package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckwork/internal/adapters/driving/tui"
	"github.com/custodia-labs/deckwork/internal/logger"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	// ProgramOptions are appended to the defaults (alt screen, mouse).
	ProgramOptions []tea.ProgramOption
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

var tuiLogFile string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [project]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal workspace for a slide project.

The workspace lists the slides on the left and previews the current one on
the right. Edited slide files are reloaded automatically.

Controls:
  ←/→, space   - Previous / next slide
  bksp, pgup/dn - Previous / next slide
  +/-, wheel   - Zoom in / out
  0, dbl-click - Reset zoom to 100%
  f            - Fit slide to the preview
  h/j/k/l, drag - Pan
  K/J          - Move current slide up / down
  g            - Go to slide number
  r            - Rescan the slide directory
  ?            - Toggle help
  q            - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write verbose logs to this file")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	// The alt screen cannot share the terminal with log output.
	restoreLog, err := redirectLog(tuiLogFile)
	if err != nil {
		return err
	}
	defer restoreLog()

	session, err := newSession(SessionOptions{})
	if err != nil {
		return err
	}
	defer closeSession(cmd, session)

	ports := tui.NewPorts(session.Workspace, session.View, session.Studio, session.Shortcuts)
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).WithProject(projectArg(args))

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	}
	if tuiConfig != nil {
		opts = append(opts, tuiConfig.ProgramOptions...)
	}
	p := tea.NewProgram(app, opts...)

	unsubscribe := tui.Subscribe(p, session.Studio)
	defer unsubscribe()
	if session.RouteErrors != nil {
		session.RouteErrors(tui.ErrorSink(p))
		defer session.RouteErrors(nil)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// redirectLog sends verbose logs to path, or discards them when path is empty.
func redirectLog(path string) (func(), error) {
	if path == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
