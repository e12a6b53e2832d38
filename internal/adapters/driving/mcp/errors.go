// Package mcp provides an MCP (Model Context Protocol) server adapter for deckwork.
// It lets AI assistants inspect and drive the slide workspace of an open project.
package mcp

import "errors"

// ErrMissingWorkspaceService is returned when the workspace service is not provided.
var ErrMissingWorkspaceService = errors.New("mcp: workspace service is required")

// ErrSlideNotFound is returned when a tool names a slide the deck does not hold.
var ErrSlideNotFound = errors.New("mcp: slide not found")
