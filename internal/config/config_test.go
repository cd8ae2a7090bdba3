package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesFixedBehaviour(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Equal(t, "https://www.espncricinfo.com/live-cricket-score", cfg.Scraper.ListingURL())
	require.Equal(t, 4, cfg.Scraper.CardLimit)
	require.Equal(t, 3, cfg.Scraper.MaxRetries)
	require.Equal(t, 10*time.Second, cfg.Scraper.Timeout)
	require.Equal(t, 10*time.Second, cfg.Scraper.PollInterval)
	require.Equal(t, time.Second, cfg.Scraper.RetryDelay)
	require.Equal(t, "http://localhost:3001/save-data", cfg.Ingest.URL)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
scraper:
  card_limit: 2
  poll_interval: 30s
ingest:
  url: http://ingest.local:9000/save-data
status:
  addr: ":8081"
logging:
  format: json
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, 2, cfg.Scraper.CardLimit)
	require.Equal(t, 30*time.Second, cfg.Scraper.PollInterval)
	require.Equal(t, 3, cfg.Scraper.MaxRetries)
	require.Equal(t, DefaultBaseURL, cfg.Scraper.BaseURL)
	require.Equal(t, DefaultUserAgents, cfg.Scraper.UserAgents)
	require.Equal(t, "http://ingest.local:9000/save-data", cfg.Ingest.URL)
	require.Equal(t, ":8081", cfg.Status.Addr)
	require.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"zero card limit", func(c *AppConfig) { c.Scraper.CardLimit = 0 }},
		{"zero retries", func(c *AppConfig) { c.Scraper.MaxRetries = 0 }},
		{"zero timeout", func(c *AppConfig) { c.Scraper.Timeout = 0 }},
		{"zero poll interval", func(c *AppConfig) { c.Scraper.PollInterval = 0 }},
		{"negative retry delay", func(c *AppConfig) { c.Scraper.RetryDelay = -time.Second }},
		{"relative base url", func(c *AppConfig) { c.Scraper.BaseURL = "/live" }},
		{"bad ingest url", func(c *AppConfig) { c.Ingest.URL = "localhost" }},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("INGEST_URL", "http://collector:3001/save-data")
	t.Setenv("SCRAPER_POLL_INTERVAL", "1m")
	t.Setenv("STATUS_ADDR", ":9090")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	require.Equal(t, "http://collector:3001/save-data", cfg.Ingest.URL)
	require.Equal(t, time.Minute, cfg.Scraper.PollInterval)
	require.Equal(t, ":9090", cfg.Status.Addr)

	t.Setenv("SCRAPER_POLL_INTERVAL", "soon")
	require.Error(t, cfg.ApplyEnv())
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CRICKET_SCRAPER_TEST_KEY=from-file\n"), 0644))
	t.Setenv("CRICKET_SCRAPER_TEST_KEY", "")
	os.Unsetenv("CRICKET_SCRAPER_TEST_KEY")

	require.NoError(t, LoadDotEnv(path))
	require.Equal(t, "from-file", os.Getenv("CRICKET_SCRAPER_TEST_KEY"))
}
