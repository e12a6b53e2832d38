// Package domain defines the core business entities for deckwork.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Slide: One rendered slide document within a deck
//   - WatchEntry: The last observed modification time of a watched path
//   - ViewTransform: Zoom scale and pan offset of the preview canvas
//   - WorkspaceState: Selection, loaded content and progress
//   - LoadRequest / LoadResult: The "last request wins" content protocol
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
