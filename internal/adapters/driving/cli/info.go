package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

var infoCmd = &cobra.Command{
	Use:   "info [project]",
	Short: "Show project details",
	Long: `Show the name, canvas format, date and slide count of a project.

Project directories are named name_format_YYYYMMDD, for example
quarterly_review_ppt169_20250101. Unrecognised parts are shown as unknown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	session, err := newSession(SessionOptions{})
	if err != nil {
		return err
	}
	defer closeSession(cmd, session)

	info, _, err := session.Studio.Open(cmd.Context(), projectArg(args))
	if err != nil {
		return fmt.Errorf("open project: %w", err)
	}

	cmd.Printf("Project:   %s\n", info.Name.Name)
	cmd.Printf("Format:    %s\n", formatLabel(*info))
	cmd.Printf("Date:      %s\n", dateLabel(info.Name))
	cmd.Printf("Slides:    %d\n", info.SlideCount)
	cmd.Printf("Directory: %s\n", info.SlideDir)
	return nil
}

func formatLabel(info domain.ProjectInfo) string {
	canvas, ok := info.Canvas()
	if !ok {
		return info.Name.Format
	}
	return fmt.Sprintf("%s (%s, %dx%d)", canvas.Key, canvas.Name, canvas.Width, canvas.Height)
}

func dateLabel(name domain.ProjectName) string {
	if name.DateFormatted != "" {
		return name.DateFormatted
	}
	return name.Date
}
