package sink

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/williampepple1/cricket-scorecard-scraper/internal/config"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/logging"
	"github.com/williampepple1/cricket-scorecard-scraper/pkg/models"
)

var testBatch = models.Batch{
	{
		Card: models.ListingCard{
			Status: models.StatusLive,
			Team1:  "Pakistan",
			Team2:  "New Zealand",
			Score1: "289/8",
		},
		ScorecardURL: "https://www.espncricinfo.com/series/x/full-scorecard",
	},
	{
		Card: models.ListingCard{Team1: "Ireland", Team2: "Scotland"},
	},
}

func TestIngestPostsJSONArray(t *testing.T) {
	var body []map[string]any
	var method, path, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		contentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &body)
		w.Write([]byte("Match data saved successfully."))
	}))
	defer srv.Close()

	s := NewIngest(config.IngestConfig{URL: srv.URL + "/save-data", Timeout: 5 * time.Second}, logging.Discard())
	require.NoError(t, s.Submit(context.Background(), testBatch))

	require.Equal(t, http.MethodPost, method)
	require.Equal(t, "/save-data", path)
	require.Contains(t, contentType, "application/json")
	require.Len(t, body, 2)
	require.Equal(t, "LIVE", body[0]["status"])
	require.Equal(t, "Pakistan", body[0]["team1"])
	require.Equal(t, "Yet to bat", body[0]["score2"])
	require.Equal(t, "https://www.espncricinfo.com/series/x/full-scorecard", body[0]["match_url"])
	require.Equal(t, "UNKNOWN", body[1]["status"])
}

func TestIngestRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Failed to save match data.", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewIngest(config.IngestConfig{URL: srv.URL, Timeout: 5 * time.Second}, logging.Discard())
	err := s.Submit(context.Background(), testBatch)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	require.Equal(t, "ingest", submitErr.Sink)
	require.Equal(t, http.StatusInternalServerError, submitErr.StatusCode)
	require.Contains(t, err.Error(), "Failed to save match data.")
}

func TestIngestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := NewIngest(config.IngestConfig{URL: url, Timeout: time.Second}, logging.Discard())
	err := s.Submit(context.Background(), testBatch)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	require.Zero(t, submitErr.StatusCode)
}

func TestFileWritesLatestBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	f := NewFile(path)

	require.NoError(t, f.Submit(context.Background(), testBatch))
	require.NoError(t, f.Submit(context.Background(), testBatch[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []models.WireRecord
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	require.Equal(t, "Pakistan", records[0].Team1)
}

func TestFileUnwritable(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "missing", "batch.json"))
	require.Error(t, f.Submit(context.Background(), testBatch))
}

type fakeSink struct {
	name    string
	err     error
	batches []models.Batch
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Submit(_ context.Context, batch models.Batch) error {
	f.batches = append(f.batches, batch)
	return f.err
}

func TestMultiContinuesAfterFailure(t *testing.T) {
	failing := &fakeSink{name: "ingest", err: &SubmitError{Sink: "ingest", StatusCode: 500, Err: errors.New("boom")}}
	after := &fakeSink{name: "file"}

	err := Multi{failing, after}.Submit(context.Background(), testBatch)
	require.Error(t, err)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	require.Equal(t, "ingest", submitErr.Sink)
	require.Len(t, after.batches, 1)
}

func TestMultiAllSucceed(t *testing.T) {
	a, b := &fakeSink{name: "a"}, &fakeSink{name: "b"}
	require.NoError(t, Multi{a, b}.Submit(context.Background(), testBatch))
	require.Len(t, a.batches, 1)
	require.Len(t, b.batches, 1)
}

func TestAMQPDialFailure(t *testing.T) {
	s := NewAMQP(config.AMQPConfig{URL: "not-a-broker-url", RoutingKey: "cricket.matches"})
	err := s.Submit(context.Background(), testBatch)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	require.Equal(t, "amqp", submitErr.Sink)
}
