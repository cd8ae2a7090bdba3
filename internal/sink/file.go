package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/williampepple1/cricket-scorecard-scraper/pkg/models"
)

// File writes the latest batch to a local JSON file, replacing the previous one
type File struct {
	path string
}

// NewFile creates a file sink
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string {
	return "file"
}

func (f *File) Submit(_ context.Context, batch models.Batch) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return &SubmitError{Sink: f.Name(), Err: fmt.Errorf("encode batch: %w", err)}
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return &SubmitError{Sink: f.Name(), Err: err}
	}
	return nil
}
