package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// SleepFunc blocks for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the wall-clock SleepFunc
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryPolicy bounds the attempts made for one page.
// The wait after failed attempt i (counting from 0) is BaseDelay * 2^i.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Sleep      SleepFunc
}

// Backoff returns the wait that follows the failed attempt with the given index
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return p.BaseDelay << attempt
}

type attemptFunc func(ctx context.Context, url string) (*goquery.Document, error)

func (p RetryPolicy) do(ctx context.Context, url string, logger *slog.Logger, attempt attemptFunc) (*goquery.Document, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var lastErr error
	for i := 0; i < p.MaxRetries; i++ {
		if i > 0 {
			if err := sleep(ctx, p.Backoff(i-1)); err != nil {
				return nil, &FetchError{URL: url, Attempts: i, Err: err}
			}
		}

		doc, err := attempt(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		logger.Warn("fetch attempt failed",
			"url", url,
			"attempt", i+1,
			"max_retries", p.MaxRetries,
			"err", err,
		)
		if ctx.Err() != nil {
			return nil, &FetchError{URL: url, Attempts: i + 1, Err: ctx.Err()}
		}
	}

	return nil, &FetchError{URL: url, Attempts: p.MaxRetries, Err: lastErr}
}
