package scraper

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/williampepple1/cricket-scorecard-scraper/internal/config"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/logging"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/proxy"
)

// HTTPFetcher fetches pages with plain GET requests
type HTTPFetcher struct {
	client    *resty.Client
	retry     RetryPolicy
	logger    *slog.Logger
	userAgent string
	proxyUsed string
}

// NewHTTPFetcher creates a fetcher with a fixed client identity chosen from
// the configured user agents.
func NewHTTPFetcher(cfg *config.AppConfig, logger *slog.Logger, opts ...Option) (*HTTPFetcher, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	proxyUsed, err := proxy.NewManager(cfg.Proxies).Apply(transport)
	if err != nil {
		return nil, fmt.Errorf("apply proxy: %w", err)
	}

	var roundTripper http.RoundTripper = transport
	if cfg.Scraper.CloudflareBypass {
		roundTripper = cloudflarebp.AddCloudFlareByPass(roundTripper)
	}

	userAgent := pickUserAgent(cfg.Scraper.UserAgents)

	client := resty.New().
		SetTransport(roundTripper).
		SetTimeout(cfg.Scraper.Timeout).
		SetLogger(logging.Resty(logger))
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}

	f := &HTTPFetcher{
		client: client,
		retry: RetryPolicy{
			MaxRetries: cfg.Scraper.MaxRetries,
			BaseDelay:  cfg.Scraper.RetryDelay,
			Sleep:      Sleep,
		},
		logger:    logger,
		userAgent: userAgent,
		proxyUsed: proxyUsed,
	}
	for _, opt := range opts {
		opt(&f.retry)
	}
	if proxyUsed != "" {
		logger.Info("using proxy", "proxy", proxyUsed)
	}
	return f, nil
}

// UserAgent returns the identity header sent with every request
func (f *HTTPFetcher) UserAgent() string {
	return f.userAgent
}

// Fetch fetches url, retrying with exponential backoff
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	return f.retry.do(ctx, url, f.logger, f.get)
}

func (f *HTTPFetcher) get(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, &StatusError{Code: res.StatusCode()}
	}

	f.logger.Debug("fetched page", "url", url, "bytes", len(res.Body()), "took", res.Time())
	return goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
}

func pickUserAgent(agents []string) string {
	if len(agents) == 0 {
		return ""
	}
	return agents[rand.IntN(len(agents))]
}
