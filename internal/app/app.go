// Package app wires configuration into a ready search service. Both
// binaries build their service through it.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/companysearch/internal/config"
	"github.com/JonMunkholm/companysearch/internal/core"
	"github.com/JonMunkholm/companysearch/internal/source"
)

// NewService builds the dataset loader for cfg and the service over it.
// obs may be nil. The returned function releases the loader's resources.
func NewService(ctx context.Context, cfg *config.Config, obs core.Observer) (*core.Service, func(), error) {
	loader, closeFn, err := source.New(ctx, cfg.Dataset)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset source: %w", err)
	}

	opts := []core.Option{core.WithNameColumn(cfg.Dataset.NameColumn)}
	if obs != nil {
		opts = append(opts, core.WithObserver(obs))
	}

	svc, err := core.NewService(loader, opts...)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	slog.Info("dataset source configured",
		"source", config.MaskURL(cfg.Dataset.URL),
		"name_column", cfg.Dataset.NameColumn,
		"fetch_timeout", cfg.Dataset.FetchTimeout,
	)
	return svc, closeFn, nil
}
