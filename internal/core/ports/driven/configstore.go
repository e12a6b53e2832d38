package driven

// ConfigStore holds the workspace settings as flat dot-notation keys
// such as "canvas.zoom_step".
type ConfigStore interface {
	// Get returns the raw value stored under key.
	Get(key string) (any, bool)

	// GetInt returns an integer value, or 0 when the key is missing or
	// not numeric.
	GetInt(key string) int

	// GetFloat returns a numeric value as float64, or 0 when the key is
	// missing or not numeric.
	GetFloat(key string) float64

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Path names where the settings live.
	Path() string
}
