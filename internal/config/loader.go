package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if NINEBOX_CONFIG is set
//  3. env (prefix NINEBOX_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("NINEBOX_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: NINEBOX_ADDR, NINEBOX_MIN_SAMPLE_SIZE, ...
	// Map env keys like NINEBOX_MIN_SAMPLE_SIZE -> min_sample_size.
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("NINEBOX_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "ninebox_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxRosterSize <= 0:
		return fmt.Errorf("%w: max_roster_size must be positive", ErrInvalidConfig)
	case c.MinSampleSize <= 0:
		return fmt.Errorf("%w: min_sample_size must be positive", ErrInvalidConfig)
	case c.SignificanceSevere <= 0 || c.SignificanceModerate >= 1:
		return fmt.Errorf("%w: significance cutoffs must sit in (0, 1)", ErrInvalidConfig)
	case c.SignificanceSevere >= c.SignificanceModerate:
		return fmt.Errorf("%w: severe cutoff must be stricter than moderate", ErrInvalidConfig)
	}
	return nil
}
