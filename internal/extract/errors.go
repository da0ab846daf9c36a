package extract

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates a file extension outside the allowed set.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrInvalidURL indicates a URL that failed syntactic validation before any network I/O.
var ErrInvalidURL = errors.New("invalid URL")

// ErrFetchTimeout indicates the page fetch exceeded the configured timeout.
var ErrFetchTimeout = errors.New("fetch timeout")

// ErrUnreachable indicates a DNS or connection failure.
var ErrUnreachable = errors.New("host unreachable")

// StatusError represents a non-success HTTP status from the fetched site.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Status)
}

// ExtractError wraps a parse failure for a source that was otherwise accepted.
type ExtractError struct {
	Source string
	Err    error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Source, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }
