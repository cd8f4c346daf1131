package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProfilePath   string // profile file or directory; empty means built-in defaults
	ProfileFormat string // "hcl" or "yaml"

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProfileFormat != "hcl" && cfg.ProfileFormat != "yaml" {
		return nil, errors.New("ProfileFormat must be 'hcl' or 'yaml'")
	}
	return &cfg, nil
}
