package scraper

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrStatus is matched by every StatusError
var ErrStatus = errors.New("unexpected status code")

// StatusError is returned for a response whose status is not 200
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("received non-200 status code: %d %s", e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// FetchError is returned once every attempt to fetch a page has failed
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
