package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage workspace settings",
	Long: `View and configure the poll interval and the zoom range of the preview.

Settings are stored in config.toml in the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting. The new value is validated together with the
other settings before it is saved.

Keys:
  workspace.poll_interval_ms  - delay between two polls, in milliseconds
  canvas.min_scale            - smallest zoom factor (at most 1.0)
  canvas.max_scale            - largest zoom factor (at least 1.0)
  canvas.zoom_step            - factor of one zoom step (above 1.0)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil && !errors.Is(err, domain.ErrInvalidSettings) {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	values := settingValues(settings)
	section := ""
	for _, key := range settingsService.Keys() {
		group, _, _ := strings.Cut(key, ".")
		if group != section {
			if section != "" {
				cmd.Println()
			}
			cmd.Printf("[%s]\n", group)
			section = group
		}
		cmd.Printf("  %s = %s\n", key, values[key])
	}

	if err != nil {
		cmd.Println()
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if !slices.Contains(settingsService.Keys(), key) {
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(settingsService.Keys(), ", "))
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s to %s\n", key, value)
	return nil
}

// settingValues renders settings by config key.
func settingValues(s domain.WorkspaceSettings) map[string]string {
	return map[string]string{
		"workspace.poll_interval_ms": strconv.FormatInt(s.PollInterval.Milliseconds(), 10),
		"canvas.min_scale":           strconv.FormatFloat(s.MinScale, 'g', -1, 64),
		"canvas.max_scale":           strconv.FormatFloat(s.MaxScale, 'g', -1, 64),
		"canvas.zoom_step":           strconv.FormatFloat(s.ZoomStep, 'g', -1, 64),
	}
}
