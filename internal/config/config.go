// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxRosterSize caps how many people one session may hold.
	MaxRosterSize int `koanf:"max_roster_size"`

	// MaxNoteLength caps free-text note length in characters.
	MaxNoteLength int `koanf:"max_note_length"`

	// MinSampleSize is the smallest subgroup the anomaly detector will
	// test; smaller groups are skipped to avoid spurious significance.
	MinSampleSize int `koanf:"min_sample_size"`

	// SignificanceModerate and SignificanceSevere are the p-value
	// cutoffs for the two insight severity tiers.
	SignificanceModerate float64 `koanf:"significance_moderate"`
	SignificanceSevere   float64 `koanf:"significance_severe"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9090",
		MaxRosterSize:        5000,
		MaxNoteLength:        4096,
		MinSampleSize:        5,
		SignificanceModerate: 0.05,
		SignificanceSevere:   0.01,
	}
}
