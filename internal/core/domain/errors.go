package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity or file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrIO indicates a storage or transport failure while reading a file.
	ErrIO = errors.New("i/o error")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSettings indicates workspace settings that violate their constraints.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrNoWatchSession indicates an operation that needs an active poll session.
	ErrNoWatchSession = errors.New("no active watch session")

	// ErrNoProject indicates an operation that needs an open project.
	ErrNoProject = errors.New("no project open")
)

// WatchIOError is a per-path failure while reading a modification timestamp.
// It never aborts the watch session.
type WatchIOError struct {
	Path string
	Err  error
}

func (e *WatchIOError) Error() string {
	return fmt.Sprintf("watch %s: %v", e.Path, e.Err)
}

func (e *WatchIOError) Unwrap() error {
	return e.Err
}

// ContentLoadError is a failure while loading the content of the selected slide.
// The displayed content is cleared when it occurs.
type ContentLoadError struct {
	SlideID string
	Path    string
	Err     error
}

func (e *ContentLoadError) Error() string {
	return fmt.Sprintf("load slide %s (%s): %v", e.SlideID, e.Path, e.Err)
}

func (e *ContentLoadError) Unwrap() error {
	return e.Err
}
