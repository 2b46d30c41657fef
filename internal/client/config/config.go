package config

import "time"

// Config holds runtime settings for the VetDesk client.
//
// Fields:
//   - ServerBaseURL: base URL of the clinic-management REST backend.
//   - HTTPTimeout: per-request timeout for backend calls.
//   - DatabaseDSN: DSN of the local sqlite database holding session tokens.
type Config struct {
	ServerBaseURL string
	HTTPTimeout   time.Duration
	DatabaseDSN   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.HTTPTimeout = 15 * time.Second
	c.DatabaseDSN = "vetdesk.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
