package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from a .env file (if one exists in
// the working directory) and the process environment. A missing .env file is
// not an error; explicit environment variables win over the file because
// godotenv never overrides existing variables.
//
// Recognized variables:
//
//	VETDESK_SERVER_URL    — base URL of the backend
//	VETDESK_HTTP_TIMEOUT  — request timeout in seconds
//	VETDESK_DB_DSN        — local database DSN
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("VETDESK_SERVER_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("VETDESK_HTTP_TIMEOUT"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.HTTPTimeout = time.Duration(seconds) * time.Second
		}
	}
	if v := os.Getenv("VETDESK_DB_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
}
