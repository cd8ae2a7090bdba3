package scraper

import (
	"context"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/williampepple1/cricket-scorecard-scraper/internal/config"
)

// Fetcher retrieves and parses one page. A non-nil error is always a
// *FetchError once retries are exhausted.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Option adjusts the retry policy of a fetcher
type Option func(*RetryPolicy)

// WithSleep replaces the wall-clock backoff sleep
func WithSleep(sleep SleepFunc) Option {
	return func(p *RetryPolicy) {
		p.Sleep = sleep
	}
}

// New creates a fetcher based on the configuration
func New(cfg *config.AppConfig, logger *slog.Logger, opts ...Option) (Fetcher, error) {
	if cfg.Browser.Enabled {
		return NewBrowserFetcher(cfg, logger, opts...), nil
	}
	f, err := NewHTTPFetcher(cfg, logger, opts...)
	if err != nil {
		return nil, err
	}
	return f, nil
}
