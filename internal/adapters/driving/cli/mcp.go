package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckwork/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve [project]",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for a slide project.

The server exposes tools to list, select, reorder and zoom slides and
resources for the slide list, slide documents and project details. Slide
files keep being polled while the server runs.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  deckwork mcp serve ./quarterly_ppt169_20250101

  # HTTP mode (for MCP Inspector, remote access)
  deckwork mcp serve --port 8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	session, err := newSession(SessionOptions{})
	if err != nil {
		return err
	}
	defer closeSession(cmd, session)

	ports := &mcp.Ports{
		Workspace: session.Workspace,
		View:      session.View,
		Studio:    session.Studio,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	server.Follow(ctx)

	_, req, err := session.Studio.Open(ctx, projectArg(args))
	if err != nil {
		return fmt.Errorf("open project: %w", err)
	}
	if req != nil {
		session.Workspace.Apply(session.Workspace.Load(ctx, *req))
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
