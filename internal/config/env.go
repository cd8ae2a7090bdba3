package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from an env file into the process environment.
// A missing file is not an error.
func LoadDotEnv(filename string) error {
	err := godotenv.Load(filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", filename, err)
	}
	return nil
}

// ApplyEnv overrides configuration values from environment variables
func (c *AppConfig) ApplyEnv() error {
	setString(&c.Scraper.BaseURL, "SCRAPER_BASE_URL")
	setString(&c.Ingest.URL, "INGEST_URL")
	setString(&c.Notify.DiscordWebhookURL, "DISCORD_WEBHOOK_URL")
	setString(&c.AMQP.URL, "AMQP_URL")
	setString(&c.Status.Addr, "STATUS_ADDR")
	setString(&c.Logging.Level, "LOG_LEVEL")

	if v := os.Getenv("SCRAPER_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SCRAPER_POLL_INTERVAL: %w", err)
		}
		c.Scraper.PollInterval = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
