package driving

import "github.com/custodia-labs/deckwork/internal/core/domain"

// SettingsService manages workspace settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults for missing keys.
	Get() (domain.WorkspaceSettings, error)

	// Save validates and persists settings.
	Save(settings domain.WorkspaceSettings) error

	// Set parses and stores a single setting by key.
	Set(key, value string) error

	// Keys lists the supported setting keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.WorkspaceSettings
}
