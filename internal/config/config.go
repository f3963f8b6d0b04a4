// Package config loads runtime settings for the fieldtrack CLI.
package config

import "time"

// Config holds runtime settings for the fieldtrack CLI.
//
// Fields:
//   - DatabasePath: location of the local SQLite database file.
//   - RequestTimeout: per-request timeout for calls to the remote gateway.
//
// The remote endpoint address and token are NOT part of this config; they
// are operator-entered and live in the settings table of the local store.
type Config struct {
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "fieldtrack.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
