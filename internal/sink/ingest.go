package sink

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/williampepple1/cricket-scorecard-scraper/internal/config"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/logging"
	"github.com/williampepple1/cricket-scorecard-scraper/pkg/models"
)

// Ingest posts each batch as a JSON array to the ingestion endpoint
type Ingest struct {
	client *resty.Client
	url    string
	logger *slog.Logger
}

// NewIngest creates the ingestion sink
func NewIngest(cfg config.IngestConfig, logger *slog.Logger) *Ingest {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetLogger(logging.Resty(logger))

	return &Ingest{client: client, url: cfg.URL, logger: logger}
}

func (s *Ingest) Name() string {
	return "ingest"
}

func (s *Ingest) Submit(ctx context.Context, batch models.Batch) error {
	res, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(batch).
		Post(s.url)
	if err != nil {
		return &SubmitError{Sink: s.Name(), Err: err}
	}
	if res.StatusCode() != http.StatusOK {
		return &SubmitError{
			Sink:       s.Name(),
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("ingestion rejected batch: %s", strings.TrimSpace(res.String())),
		}
	}

	s.logger.Info("batch sent", "url", s.url, "records", len(batch))
	return nil
}
