// Package animation fetches the decorative Lottie document shown above the
// search form. Any failure degrades to "no animation"; it never blocks a search.
package animation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/JonMunkholm/companysearch/internal/logging"
)

// MaxBytes bounds the size of an accepted animation document.
const MaxBytes = 4 << 20

var errNotObject = errors.New("animation is not a JSON object")

// Fetcher retrieves the animation with one GET per call.
type Fetcher struct {
	URL    string
	Client *http.Client
}

// NewFetcher creates a fetcher. An empty url disables the animation.
func NewFetcher(url string, timeout time.Duration) *Fetcher {
	return &Fetcher{URL: url, Client: &http.Client{Timeout: timeout}}
}

// Enabled reports whether an animation URL is configured.
func (f *Fetcher) Enabled() bool {
	return f != nil && f.URL != ""
}

// Fetch returns the Lottie document, or false when it is unavailable.
// Failures are logged at warn level.
func (f *Fetcher) Fetch(ctx context.Context) (json.RawMessage, bool) {
	if !f.Enabled() {
		return nil, false
	}

	doc, err := f.fetch(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn("animation unavailable", "url", f.URL, "error", err)
		return nil, false
	}
	return doc, true
}

func (f *Fetcher) fetch(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > MaxBytes {
		return nil, fmt.Errorf("animation larger than %d bytes", MaxBytes)
	}

	return decodeObject(body)
}

// decodeObject accepts a non-empty JSON object and returns it compacted.
func decodeObject(body []byte) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotObject, err)
	}
	if len(obj) == 0 {
		return nil, fmt.Errorf("%w: empty object", errNotObject)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
