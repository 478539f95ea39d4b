package core

import (
	"context"
	"errors"
	"io"
)

// Source opens the raw dataset payload. Each Open is one read of the source.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// Loader produces a fresh Dataset on every call.
type Loader interface {
	Load(ctx context.Context) (*Dataset, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (*Dataset, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) (*Dataset, error) {
	return f(ctx)
}

// CSVLoader loads a Dataset by reading CSV text from a Source.
type CSVLoader struct {
	Source   Source
	MaxBytes int64 // Payload limit, 0 for none
}

// NewCSVLoader creates a loader over src.
func NewCSVLoader(src Source, maxBytes int64) *CSVLoader {
	return &CSVLoader{Source: src, MaxBytes: maxBytes}
}

// Load opens the source once and parses the payload.
// Source failures, including failures while streaming the body, are returned
// as *FetchError; malformed payloads as *ParseError. There are no retries.
func (l *CSVLoader) Load(ctx context.Context) (*Dataset, error) {
	body, err := l.Source.Open(ctx)
	if err != nil {
		if IsFetchError(err) {
			return nil, err
		}
		return nil, &FetchError{Source: l.Source.String(), Err: err}
	}
	defer body.Close()

	tracked := &readTracker{r: body}
	ds, err := ParseDataset(&LimitedReader{R: tracked, Max: l.MaxBytes})
	if err != nil {
		if tracked.err != nil {
			return nil, &FetchError{Source: l.Source.String(), Err: tracked.err}
		}
		return nil, err
	}
	return ds, nil
}

// readTracker remembers the first non-EOF error returned by the source body,
// so a dropped connection is reported as a fetch failure rather than bad CSV.
type readTracker struct {
	r   io.Reader
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}
	return n, err
}
