package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/williampepple1/cricket-scorecard-scraper/internal/config"
)

// BrowserFetcher renders pages in headless Chrome before parsing them
type BrowserFetcher struct {
	browser   config.BrowserConfig
	timeout   time.Duration
	userAgent string
	retry     RetryPolicy
	logger    *slog.Logger
}

// NewBrowserFetcher creates a new browser fetcher
func NewBrowserFetcher(cfg *config.AppConfig, logger *slog.Logger, opts ...Option) *BrowserFetcher {
	f := &BrowserFetcher{
		browser:   cfg.Browser,
		timeout:   cfg.Scraper.Timeout + cfg.Browser.WaitTime,
		userAgent: pickUserAgent(cfg.Scraper.UserAgents),
		retry: RetryPolicy{
			MaxRetries: cfg.Scraper.MaxRetries,
			BaseDelay:  cfg.Scraper.RetryDelay,
			Sleep:      Sleep,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(&f.retry)
	}
	return f
}

// Fetch renders url, retrying with exponential backoff
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	return f.retry.do(ctx, url, f.logger, f.render)
}

func (f *BrowserFetcher) render(ctx context.Context, url string) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.browser.Headless),
	)
	if f.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(f.userAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(f.browser.WaitTime),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return goquery.NewDocumentFromReader(strings.NewReader(html))
}
