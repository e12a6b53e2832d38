package tui

import "errors"

// ErrMissingWorkspaceService is returned when the workspace service is not provided.
var ErrMissingWorkspaceService = errors.New("tui: workspace service is required")

// ErrMissingViewService is returned when the view service is not provided.
var ErrMissingViewService = errors.New("tui: view service is required")

// ErrMissingStudioService is returned when the studio service is not provided.
var ErrMissingStudioService = errors.New("tui: studio service is required")

// ErrMissingShortcutService is returned when the shortcut dispatcher is not provided.
var ErrMissingShortcutService = errors.New("tui: shortcut service is required")

// ErrInvalidSlideNumber is shown when the go-to prompt holds no usable slide number.
var ErrInvalidSlideNumber = errors.New("tui: invalid slide number")
