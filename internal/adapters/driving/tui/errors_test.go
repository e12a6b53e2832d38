package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrMissingWorkspaceService,
		ErrMissingViewService,
		ErrMissingStudioService,
		ErrMissingShortcutService,
		ErrInvalidSlideNumber,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingWorkspaceService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingWorkspaceService.Error(), "workspace service")
}

func TestErrMissingShortcutService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingShortcutService.Error(), "shortcut service")
}
