package driven

import (
	"context"
	"time"
)

// TimestampFetcher reads the modification time of a watched path.
// Errors wrap domain.ErrNotFound or domain.ErrIO.
type TimestampFetcher interface {
	FetchTimestamp(ctx context.Context, path string) (time.Time, error)
}

// ContentFetcher reads the document text of a slide.
// Errors wrap domain.ErrNotFound or domain.ErrIO.
type ContentFetcher interface {
	FetchContent(ctx context.Context, path string) (string, error)
}

// ErrorReporter receives non-fatal failures for user-visible display.
// Implementations must not block for long; they are called from poll loops.
type ErrorReporter interface {
	ReportError(err error)
}
