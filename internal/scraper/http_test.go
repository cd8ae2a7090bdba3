package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/williampepple1/cricket-scorecard-scraper/internal/config"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/logging"
)

type recordedSleeps struct {
	waits []time.Duration
}

func (r *recordedSleeps) sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return ctx.Err()
}

func newTestFetcher(t *testing.T, sleeps *recordedSleeps) *HTTPFetcher {
	t.Helper()

	cfg := config.Default()
	cfg.Scraper.UserAgents = []string{"cricket-test-agent/1.0"}
	f, err := NewHTTPFetcher(cfg, logging.Discard(), WithSleep(sleeps.sleep))
	require.NoError(t, err)
	return f
}

func TestFetchSucceeds(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`<html><body><h1>Live</h1></body></html>`))
	}))
	defer srv.Close()

	sleeps := &recordedSleeps{}
	f := newTestFetcher(t, sleeps)

	doc, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "Live", doc.Find("h1").Text())
	require.Equal(t, "cricket-test-agent/1.0", gotAgent)
	require.Equal(t, "cricket-test-agent/1.0", f.UserAgent())
	require.Empty(t, sleeps.waits)
}

func TestFetchExhaustsRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	sleeps := &recordedSleeps{}
	f := newTestFetcher(t, sleeps)

	doc, err := f.Fetch(context.Background(), srv.URL)
	require.Nil(t, doc)
	require.Error(t, err)

	require.EqualValues(t, 3, hits.Load())
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second}, sleeps.waits)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, 3, fetchErr.Attempts)
	require.Equal(t, srv.URL, fetchErr.URL)
	require.ErrorIs(t, err, ErrStatus)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
}

func TestFetchRecoversAfterFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`<p>ok</p>`))
	}))
	defer srv.Close()

	sleeps := &recordedSleeps{}
	f := newTestFetcher(t, sleeps)

	doc, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "ok", doc.Find("p").Text())
	require.EqualValues(t, 2, hits.Load())
	require.Equal(t, []time.Duration{time.Second}, sleeps.waits)
}

func TestFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	sleeps := &recordedSleeps{}
	f := newTestFetcher(t, sleeps)

	_, err := f.Fetch(context.Background(), url)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, 3, fetchErr.Attempts)
	require.False(t, errors.Is(err, ErrStatus))
	require.Len(t, sleeps.waits, 2)
}

func TestFetchStopsWhenContextCancelled(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cfg := config.Default()
	f, err := NewHTTPFetcher(cfg, logging.Discard(), WithSleep(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}))
	require.NoError(t, err)

	_, err = f.Fetch(ctx, srv.URL)
	require.ErrorIs(t, err, context.Canceled)
	require.EqualValues(t, 1, hits.Load())
}

func TestBackoff(t *testing.T) {
	p := RetryPolicy{BaseDelay: time.Second}
	require.Equal(t, time.Second, p.Backoff(0))
	require.Equal(t, 2*time.Second, p.Backoff(1))
	require.Equal(t, 4*time.Second, p.Backoff(2))
	require.Equal(t, 8*time.Second, p.Backoff(3))
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	require.NoError(t, Sleep(context.Background(), time.Millisecond))
}
