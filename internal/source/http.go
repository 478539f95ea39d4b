package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/JonMunkholm/companysearch/internal/config"
	"github.com/JonMunkholm/companysearch/internal/core"
)

// maxDrainBytes bounds how much of an error body is read before closing,
// so the connection can be reused.
const maxDrainBytes = 4 << 10

// HTTPSource fetches the dataset with one GET per Open.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates a source whose client gives up after timeout.
// A zero timeout leaves the deadline to the caller's context.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Open issues the GET and returns the response body on a 2xx status.
// Transport failures and other statuses are returned as *core.FetchError.
func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &core.FetchError{Source: s.String(), Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &core.FetchError{Source: s.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
		resp.Body.Close()
		return nil, &core.FetchError{Source: s.String(), StatusCode: resp.StatusCode}
	}

	return resp.Body, nil
}

// String returns the URL with its path and query masked.
func (s *HTTPSource) String() string {
	return config.MaskURL(s.URL)
}
