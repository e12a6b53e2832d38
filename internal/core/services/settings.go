package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driven"
	"github.com/custodia-labs/deckwork/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyPollInterval = "workspace.poll_interval_ms"
	KeyMinScale     = "canvas.min_scale"
	KeyMaxScale     = "canvas.max_scale"
	KeyZoomStep     = "canvas.zoom_step"
)

// SettingsService manages workspace settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves the current settings. Missing keys take their defaults.
// The returned error wraps domain.ErrInvalidSettings when the stored
// values are inconsistent; the settings are returned regardless.
func (s *SettingsService) Get() (domain.WorkspaceSettings, error) {
	defaults := domain.DefaultWorkspaceSettings()

	settings := domain.WorkspaceSettings{
		PollInterval: defaults.PollInterval,
		MinScale:     s.getFloat(KeyMinScale, defaults.MinScale),
		MaxScale:     s.getFloat(KeyMaxScale, defaults.MaxScale),
		ZoomStep:     s.getFloat(KeyZoomStep, defaults.ZoomStep),
	}
	if ms := s.configStore.GetInt(KeyPollInterval); ms != 0 {
		settings.PollInterval = time.Duration(ms) * time.Millisecond
	}

	return settings, settings.Validate()
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings domain.WorkspaceSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(KeyPollInterval, settings.PollInterval.Milliseconds()); err != nil {
		return fmt.Errorf("save poll interval: %w", err)
	}
	if err := s.configStore.Set(KeyMinScale, settings.MinScale); err != nil {
		return fmt.Errorf("save min scale: %w", err)
	}
	if err := s.configStore.Set(KeyMaxScale, settings.MaxScale); err != nil {
		return fmt.Errorf("save max scale: %w", err)
	}
	if err := s.configStore.Set(KeyZoomStep, settings.ZoomStep); err != nil {
		return fmt.Errorf("save zoom step: %w", err)
	}
	return nil
}

// Set parses value for a single key and saves the result.
func (s *SettingsService) Set(key, value string) error {
	settings, _ := s.Get()

	switch key {
	case KeyPollInterval:
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %q", domain.ErrInvalidInput, key, value)
		}
		settings.PollInterval = time.Duration(ms) * time.Millisecond
	case KeyMinScale, KeyMaxScale, KeyZoomStep:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number: %q", domain.ErrInvalidInput, key, value)
		}
		switch key {
		case KeyMinScale:
			settings.MinScale = f
		case KeyMaxScale:
			settings.MaxScale = f
		default:
			settings.ZoomStep = f
		}
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the supported setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{KeyPollInterval, KeyMinScale, KeyMaxScale, KeyZoomStep}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.WorkspaceSettings {
	return domain.DefaultWorkspaceSettings()
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}
