package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables into target.
// Fields whose variable is unset keep their current value.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with the TZARNG_* environment variables.
func ApplyEnv(cfg *Config) error {
	return ParseEnv(cfg)
}
