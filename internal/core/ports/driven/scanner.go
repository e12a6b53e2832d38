package driven

import (
	"context"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

// SlideScanner discovers the ordered slides of a project.
type SlideScanner interface {
	// ScanSlides returns the slides under the project root in display order.
	// Slide ids must be stable across scans of the same file.
	ScanSlides(ctx context.Context, root string) ([]domain.Slide, error)

	// SlideDir returns the directory that holds the slides of root.
	SlideDir(root string) string
}

// DirectoryWatcher reports that the set of files in a directory may have changed.
type DirectoryWatcher interface {
	// WatchDir calls onChange (debounced) after entries in dir are created,
	// removed or renamed. The returned stop function releases the watch.
	WatchDir(ctx context.Context, dir string, onChange func()) (stop func() error, err error)
}
