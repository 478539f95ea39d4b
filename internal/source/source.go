package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/companysearch/internal/config"
	"github.com/JonMunkholm/companysearch/internal/core"
)

// New returns the loader for cfg.URL and a function that releases its
// resources. The fetch timeout bounds each Load as a whole.
func New(ctx context.Context, cfg config.DatasetConfig) (core.Loader, func(), error) {
	noop := func() {}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse dataset url: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		src := NewHTTPSource(cfg.URL, cfg.FetchTimeout)
		return WithTimeout(core.NewCSVLoader(src, cfg.MaxBytes), cfg.FetchTimeout), noop, nil

	case "s3":
		src, err := NewS3Source(cfg)
		if err != nil {
			return nil, nil, err
		}
		return WithTimeout(core.NewCSVLoader(src, cfg.MaxBytes), cfg.FetchTimeout), noop, nil

	case "postgres", "postgresql":
		l, closeFn, err := NewPostgresLoader(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return WithTimeout(l, cfg.FetchTimeout), closeFn, nil

	case "file":
		src := &FileSource{Path: u.Path}
		return WithTimeout(core.NewCSVLoader(src, cfg.MaxBytes), cfg.FetchTimeout), noop, nil

	case "":
		src := &FileSource{Path: cfg.URL}
		return WithTimeout(core.NewCSVLoader(src, cfg.MaxBytes), cfg.FetchTimeout), noop, nil
	}

	return nil, nil, fmt.Errorf("unsupported dataset url scheme %q", u.Scheme)
}

// WithTimeout bounds every Load of l by d. A non-positive d returns l unchanged.
func WithTimeout(l core.Loader, d time.Duration) core.Loader {
	if d <= 0 {
		return l
	}
	return core.LoaderFunc(func(ctx context.Context) (*core.Dataset, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return l.Load(ctx)
	})
}
