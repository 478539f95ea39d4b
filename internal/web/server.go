// Package web provides the HTTP server and handlers for the company search front-end.
package web

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/companysearch/internal/animation"
	"github.com/JonMunkholm/companysearch/internal/config"
	"github.com/JonMunkholm/companysearch/internal/core"
	"github.com/JonMunkholm/companysearch/internal/web/middleware"
	"github.com/JonMunkholm/companysearch/internal/web/templates"
)

//go:embed static
var staticFiles embed.FS

// Searcher runs one search. *core.Service implements it.
type Searcher interface {
	Search(ctx context.Context, query string) (core.Result, error)
}

// Server is the HTTP server for the company search front-end.
type Server struct {
	cfg       *config.Config
	service   Searcher
	animation *animation.Fetcher
	metrics   http.Handler
	router    *chi.Mux
	server    *http.Server
}

// NewServer creates a new Server instance. anim and metrics may be nil.
func NewServer(cfg *config.Config, service Searcher, anim *animation.Fetcher, metrics http.Handler) *Server {
	s := &Server{
		cfg:       cfg,
		service:   service,
		animation: anim,
		metrics:   metrics,
		router:    chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(middleware.SecurityHeaders(s.cfg.Security.EnableCSP))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.NotFound(s.handleNotFound)
	s.router.Get("/healthz", s.handleHealth)
	if s.cfg.Metrics.Enabled && s.metrics != nil {
		s.router.Handle(s.cfg.Metrics.Path, s.metrics)
	}

	// Everything that can trigger a dataset or animation fetch is rate limited.
	s.router.Group(func(r chi.Router) {
		if s.cfg.Rate.Enabled {
			r.Use(middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerMinute: s.cfg.Rate.RequestsPerMinute,
				Burst:             s.cfg.Rate.Burst,
			}))
		}

		r.Get("/", s.handleSearchPage)
		r.Get(templates.ResultsPath, s.handleResults)

		r.Route("/api", func(r chi.Router) {
			r.Get("/search", s.handleSearch)
			r.Get("/animation", s.handleAnimation)
		})
	})
}

// Start begins listening for HTTP requests. It returns http.ErrServerClosed
// after Shutdown.
func (s *Server) Start() error {
	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
