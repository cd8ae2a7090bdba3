package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/williampepple1/cricket-scorecard-scraper/pkg/models"
)

// Sink receives the batch produced by one polling cycle. Submissions are
// never retried; a failed batch is dropped.
type Sink interface {
	Name() string
	Submit(ctx context.Context, batch models.Batch) error
}

// SubmitError is returned when a sink did not accept a batch
type SubmitError struct {
	Sink       string
	StatusCode int
	Err        error
}

func (e *SubmitError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Sink, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Sink, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// Multi submits every batch to each sink in order. One sink failing does
// not stop the others.
type Multi []Sink

func (m Multi) Name() string {
	return "multi"
}

func (m Multi) Submit(ctx context.Context, batch models.Batch) error {
	var errs []error
	for _, s := range m {
		if err := s.Submit(ctx, batch); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
