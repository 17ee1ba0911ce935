// Package config loads runtime settings for the userdesk CLI.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - BaseURL: root of the user-management service, e.g. http://localhost:8080.
//   - RequestTimeout: per-request deadline applied by the HTTP gateway.
//   - CredentialDB: path of the local database holding the bearer token.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	CredentialDB   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080"
	c.RequestTimeout = 15 * time.Second
	c.CredentialDB = "userdesk.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
