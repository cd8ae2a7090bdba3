package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the complete application configuration
type AppConfig struct {
	Scraper ScraperConfig `yaml:"scraper"`
	Ingest  IngestConfig  `yaml:"ingest"`
	IO      IOConfig      `yaml:"io"`
	Proxies ProxyConfig   `yaml:"proxies"`
	Browser BrowserConfig `yaml:"browser"`
	Notify  NotifyConfig  `yaml:"notify"`
	AMQP    AMQPConfig    `yaml:"amqp"`
	Status  StatusConfig  `yaml:"status"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScraperConfig holds the source site and polling configuration
type ScraperConfig struct {
	BaseURL          string        `yaml:"base_url"`
	ListingPath      string        `yaml:"listing_path"`
	CardLimit        int           `yaml:"card_limit"`
	PollInterval     time.Duration `yaml:"poll_interval"`
	Timeout          time.Duration `yaml:"timeout"`
	MaxRetries       int           `yaml:"max_retries"`
	RetryDelay       time.Duration `yaml:"retry_delay"`
	UserAgents       []string      `yaml:"user_agents,omitempty"`
	CloudflareBypass bool          `yaml:"cloudflare_bypass"`
}

// ListingURL returns the absolute URL of the live-scores listing
func (s ScraperConfig) ListingURL() string {
	return s.BaseURL + s.ListingPath
}

// IngestConfig holds the ingestion endpoint configuration
type IngestConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// IOConfig holds the local output configuration
type IOConfig struct {
	OutputFile string `yaml:"output_file"`
}

// ProxyConfig holds the proxy configuration
type ProxyConfig struct {
	Enabled bool     `yaml:"enabled"`
	Rotate  bool     `yaml:"rotate"`
	List    []string `yaml:"list"`
	Auth    struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
}

// BrowserConfig holds the browser configuration for JavaScript rendering
type BrowserConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Headless bool          `yaml:"headless"`
	WaitTime time.Duration `yaml:"wait_time"`
}

// NotifyConfig holds the chat notification configuration
type NotifyConfig struct {
	DiscordWebhookURL string `yaml:"discord_webhook_url"`
}

// AMQPConfig holds the message broker configuration
type AMQPConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
}

// StatusConfig holds the status API configuration
type StatusConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds the logger configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load loads the configuration from a YAML file on top of the defaults
func Load(filename string) (*AppConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	// Set default user agents if none provided
	if len(config.Scraper.UserAgents) == 0 {
		config.Scraper.UserAgents = DefaultUserAgents
	}

	return config, nil
}

// Default creates the default configuration
func Default() *AppConfig {
	return &AppConfig{
		Scraper: ScraperConfig{
			BaseURL:      DefaultBaseURL,
			ListingPath:  DefaultListingPath,
			CardLimit:    4,
			PollInterval: 10 * time.Second,
			Timeout:      10 * time.Second,
			MaxRetries:   3,
			RetryDelay:   time.Second,
			UserAgents:   DefaultUserAgents,
		},
		Ingest: IngestConfig{
			URL:     DefaultIngestURL,
			Timeout: 10 * time.Second,
		},
		Proxies: ProxyConfig{
			Rotate: true,
			List:   []string{},
		},
		Browser: BrowserConfig{
			Headless: true,
			WaitTime: 5 * time.Second,
		},
		AMQP: AMQPConfig{
			RoutingKey: "cricket.matches",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the values the pipeline cannot run without
func (c *AppConfig) Validate() error {
	if c.Scraper.CardLimit <= 0 {
		return fmt.Errorf("scraper.card_limit must be positive, got %d", c.Scraper.CardLimit)
	}
	if c.Scraper.MaxRetries <= 0 {
		return fmt.Errorf("scraper.max_retries must be positive, got %d", c.Scraper.MaxRetries)
	}
	if c.Scraper.Timeout <= 0 {
		return fmt.Errorf("scraper.timeout must be positive, got %v", c.Scraper.Timeout)
	}
	if c.Scraper.PollInterval <= 0 {
		return fmt.Errorf("scraper.poll_interval must be positive, got %v", c.Scraper.PollInterval)
	}
	if c.Scraper.RetryDelay < 0 {
		return fmt.Errorf("scraper.retry_delay must not be negative, got %v", c.Scraper.RetryDelay)
	}
	if err := absoluteURL("scraper.base_url", c.Scraper.BaseURL); err != nil {
		return err
	}
	if err := absoluteURL("ingest.url", c.Ingest.URL); err != nil {
		return err
	}
	return nil
}

func absoluteURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", key, raw)
	}
	return nil
}
