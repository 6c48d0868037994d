// Package server exposes briefings and aggregated snapshots over a JSON HTTP API
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/briefing/pkg/aggregate"
	"github.com/umputun/briefing/pkg/briefing"
	"github.com/umputun/briefing/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/briefer.go -pkg mocks -skip-ensure -fmt goimports . Briefer
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	db      Database
	briefer Briefer
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Briefer builds briefings and serves raw aggregations
type Briefer interface {
	Build(ctx context.Context, req briefing.Request) (*briefing.Briefing, error)
	Search(ctx context.Context, req aggregate.Request) (*aggregate.TitleResult, error)
	Entries(ctx context.Context, req aggregate.Request) ([]domain.FlatFeedEntry, error)
	Presets() []string
}

// Database reports storage health and the stored days
type Database interface {
	Ping(ctx context.Context) error
	Days(ctx context.Context) ([]string, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetMaxDays() int
}

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, briefer Briefer, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		db:      db,
		briefer: briefer,
		version: version,
		debug:   debug,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("briefing", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", s.healthHandler)

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("POST /briefing", s.briefingHandler)
		r.HandleFunc("GET /titles", s.titlesHandler)
		r.HandleFunc("GET /feeds", s.feedsHandler)
		r.HandleFunc("POST /rules", s.rulesHandler)
		r.HandleFunc("GET /presets", s.presetsHandler)
		r.HandleFunc("GET /days", s.daysHandler)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
