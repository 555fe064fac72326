package config

import "time"

// Config holds runtime settings for the knotctl client.
//
// Fields:
//   - ServerURL: base URL of the KnotHost API.
//   - RequestTimeout: per-request HTTP timeout.
//   - Token: session token to start with, so "me" works without logging in.
//   - SessionFile: SQLite file where a successful login is remembered.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	Token          string
	SessionFile    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:4000"
	c.RequestTimeout = 10 * time.Second
	c.SessionFile = "knotctl.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
