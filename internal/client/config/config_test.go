package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", cfg.ServerBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "vetdesk.db", cfg.DatabaseDSN)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("VETDESK_SERVER_URL", "http://clinic.example:9000")
	t.Setenv("VETDESK_HTTP_TIMEOUT", "30")
	t.Setenv("VETDESK_DB_DSN", "custom.db")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://clinic.example:9000", cfg.ServerBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "custom.db", cfg.DatabaseDSN)
}

func TestParseEnv_InvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("VETDESK_HTTP_TIMEOUT", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}

func TestParseFlags_Overrides(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"vetdesk", "-a", "http://flags.example", "-t", "5"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "http://flags.example", cfg.ServerBaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "vetdesk.db", cfg.DatabaseDSN)
}

func TestParseJson_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_base_url": "http://json.example",
		"http_timeout": "20s"
	}`), 0o600))

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"vetdesk", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "http://json.example", cfg.ServerBaseURL)
	assert.Equal(t, 20*time.Second, cfg.HTTPTimeout)
	// absent in the file, keeps the default
	assert.Equal(t, "vetdesk.db", cfg.DatabaseDSN)
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"vetdesk"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.ServerBaseURL)
}
