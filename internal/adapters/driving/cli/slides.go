package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var slidesJSON bool

var slidesCmd = &cobra.Command{
	Use:   "slides [project]",
	Short: "List the slides of a project",
	Long: `List the slides of a project in display order. The slide that was
selected when the project was last closed is marked with an asterisk.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSlides,
}

func init() {
	slidesCmd.Flags().BoolVar(&slidesJSON, "json", false, "output slides as JSON")
	rootCmd.AddCommand(slidesCmd)
}

// slideEntry is one line of the slides listing.
type slideEntry struct {
	Position int    `json:"position"`
	ID       string `json:"id"`
	Path     string `json:"path"`
	Current  bool   `json:"current"`
}

func runSlides(cmd *cobra.Command, args []string) error {
	session, err := newSession(SessionOptions{})
	if err != nil {
		return err
	}
	defer closeSession(cmd, session)

	if _, _, err := session.Studio.Open(cmd.Context(), projectArg(args)); err != nil {
		return fmt.Errorf("open project: %w", err)
	}

	slides := session.Workspace.Slides()
	current := session.Workspace.State().CurrentSlideID

	entries := make([]slideEntry, len(slides))
	for i, s := range slides {
		entries[i] = slideEntry{Position: i + 1, ID: s.ID, Path: s.Path, Current: s.ID == current}
	}

	if slidesJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal slides: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(entries) == 0 {
		cmd.Println("No slides found.")
		return nil
	}

	for _, e := range entries {
		marker := " "
		if e.Current {
			marker = "*"
		}
		cmd.Printf("%s %3d  %s\n", marker, e.Position, filepath.Base(e.Path))
	}
	return nil
}
