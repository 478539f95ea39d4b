package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/companysearch/internal/logging"
	"github.com/google/uuid"
)

// Observer receives search and load outcomes, typically for metrics.
type Observer interface {
	ObserveLoad(duration time.Duration, rows int, err error)
	ObserveSearch(status Status)
}

type nopObserver struct{}

func (nopObserver) ObserveLoad(time.Duration, int, error) {}
func (nopObserver) ObserveSearch(Status) {}

// Service runs searches: one fresh load, then one filter, per call.
// It holds no mutable state, so concurrent calls do not interact.
type Service struct {
	loader     Loader
	nameColumn string
	observer   Observer
}

// Option configures a Service.
type Option func(*Service)

// WithNameColumn sets the column searched by the filter.
func WithNameColumn(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.nameColumn = name
		}
	}
}

// WithObserver sets the observer notified of each load and search.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewService creates a Service over loader.
func NewService(loader Loader, opts ...Option) (*Service, error) {
	if loader == nil {
		return nil, errors.New("core: nil loader")
	}
	s := &Service{
		loader:     loader,
		nameColumn: DefaultNameColumn,
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Search loads the current dataset and filters it by query.
//
// A blank query returns StatusNoQuery without reading the source. Load
// failures are terminal for the call and returned as *FetchError or
// *ParseError; the caller simply searches again on the next interaction.
func (s *Service) Search(ctx context.Context, query string) (Result, error) {
	id := uuid.NewString()
	logger := logging.WithFields(ctx, "search_id", id)

	if NormalizeQuery(query) == "" {
		res := Search(nil, query, s.nameColumn)
		res.ID = id
		s.observer.ObserveSearch(res.Status)
		logger.Debug("search skipped: no query")
		return res, nil
	}

	start := time.Now()
	ds, err := s.loader.Load(ctx)
	loadDuration := time.Since(start)
	s.observer.ObserveLoad(loadDuration, ds.Len(), err)
	if err != nil {
		logger.Error("dataset load failed",
			"kind", ErrorKind(err),
			"error", err,
			"duration_ms", loadDuration.Milliseconds(),
		)
		return Result{ID: id}, fmt.Errorf("search %s: %w", id, err)
	}

	if !ds.HasColumn(s.nameColumn) {
		logger.Warn("dataset has no name column, nothing can match",
			"column", s.nameColumn,
			"columns", ds.Columns,
		)
	}

	res := Search(ds, query, s.nameColumn)
	res.ID = id
	s.observer.ObserveSearch(res.Status)

	logger.Info("search completed",
		"query", res.Query,
		"status", string(res.Status),
		"rows", ds.Len(),
		"matches", res.Count(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return res, nil
}
