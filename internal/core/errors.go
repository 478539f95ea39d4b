package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyPayload is wrapped by a ParseError when the source returned no header row.
var ErrEmptyPayload = errors.New("empty payload: no header row")

// FetchError reports that the dataset source could not be read:
// the source was unreachable or answered with a non-success status.
type FetchError struct {
	Source     string // Source description, safe for logs
	StatusCode int    // HTTP status when the source answered, 0 otherwise
	Err        error  // Underlying transport error, nil for status failures
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch dataset from %s: unexpected status %d %s",
			e.Source, e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch dataset from %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("fetch dataset from %s: failed", e.Source)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports that the payload is not delimited tabular text with a header row.
type ParseError struct {
	Line int   // 1-based line in the payload, 0 when unknown
	Err  error // Underlying parse error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse dataset: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse dataset: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err is or wraps a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// ErrorKind returns a short label for a load failure, used in logs and metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsFetchError(err):
		return "fetch"
	case IsParseError(err):
		return "parse"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "other"
	}
}
