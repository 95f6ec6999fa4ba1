// internal/api/server.go
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ThanushaGali/CaConnect/internal/common/logger"
	"github.com/ThanushaGali/CaConnect/internal/discovery"
	"github.com/ThanushaGali/CaConnect/internal/models"
)

// Discovery is the read side of the provider catalog served over HTTP.
type Discovery interface {
	Browse(ctx context.Context, req discovery.Request) (*discovery.Result, error)
	Provider(ctx context.Context, id string) (*models.Provider, error)
	ProviderService(ctx context.Context, providerID, serviceID string) (*models.Provider, models.Service, error)
	Options() discovery.Options
	Suggest(query string, limit int) []string
	ValidateFilters(f discovery.FilterState) error
}

// Readiness reports whether backing connections are usable.
type Readiness interface {
	Ready(ctx context.Context) error
}

type Options struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ServiceName  string
}

type Server struct {
	httpServer *http.Server
	discovery  Discovery
	readiness  Readiness
	logger     logger.Logger
	mux        *http.ServeMux
	name       string
}

// New builds the server and registers every route. A nil readiness always
// reports ready.
func New(opts Options, svc Discovery, readiness Readiness, log logger.Logger) *Server {
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 15 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 15 * time.Second
	}

	mux := http.NewServeMux()
	s := &Server{
		discovery: svc,
		readiness: readiness,
		logger:    log.WithFields(map[string]interface{}{"component": "http"}),
		mux:       mux,
		name:      opts.ServiceName,
	}
	s.httpServer = &http.Server{
		Addr:         opts.Address,
		Handler:      s.withRequestID(mux),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /ready", s.handleReady)
	s.mux.Handle("GET /metrics", promhttp.Handler())

	s.mux.HandleFunc("GET /api/v1/providers", s.handleBrowse)
	s.mux.HandleFunc("GET /api/v1/providers/{id}", s.handleProvider)
	s.mux.HandleFunc("GET /api/v1/providers/{id}/services/{serviceId}", s.handleProviderService)
	s.mux.HandleFunc("GET /api/v1/filters/options", s.handleOptions)
	s.mux.HandleFunc("GET /api/v1/suggestions", s.handleSuggestions)
}

// Handler exposes the routed handler, including middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", map[string]interface{}{"addr": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server", nil)
	return s.httpServer.Shutdown(ctx)
}

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// withRequestID tags every request with an id, reusing the caller's when sent.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		s.logger.Debug("request served", map[string]interface{}{
			"method":    r.Method,
			"path":      r.URL.Path,
			"requestId": id,
			"duration":  time.Since(start).String(),
		})
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
