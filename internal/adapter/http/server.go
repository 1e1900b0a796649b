package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/asteroid-hazard-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HazardSelector ranks hazardous asteroids for a day window.
type HazardSelector interface {
	TopHazardous(ctx context.Context, days int) ([]domain.Asteroid, error)
}

// Server exposes the asteroid API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	selector   HazardSelector
	logger     *slog.Logger
	draining   atomic.Bool
}

// NewServer creates an HTTP server with /asteroids, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, selector HazardSelector, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           withRequestLogging(mux, logger),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		selector: selector,
		logger:   logger,
	}

	mux.HandleFunc("GET /asteroids", s.handleAsteroids)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(s))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown marks the server not ready and drains connections within the
// given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.draining.Store(true)
	return s.httpServer.Shutdown(ctx)
}

// CheckReadiness reports an error once shutdown has begun.
func (s *Server) CheckReadiness(_ context.Context) error {
	if s.draining.Load() {
		return errors.New("server is shutting down")
	}
	return nil
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleAsteroids(w http.ResponseWriter, r *http.Request) {
	days, err := parseDays(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	asteroids, err := s.selector.TopHazardous(r.Context(), days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, asteroids)
}

// writeError maps selection failures to responses. Only validation messages
// reach the caller; feed failures get a fixed body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *domain.ValidationError
		remoteErr     *domain.RemoteServiceError
		parseErr      *domain.ParseError
	)
	switch {
	case errors.As(err, &validationErr):
		writeText(w, http.StatusBadRequest, validationErr.Message)
	case r.Context().Err() != nil:
		// Client went away; nobody is left to read a response.
		s.logger.Info("request cancelled", "path", r.URL.Path, "error", err)
	case errors.As(err, &remoteErr), errors.As(err, &parseErr):
		sharedobs.WriteJSON(w, http.StatusBadGateway, map[string]string{"error": "asteroid feed unavailable"})
	default:
		s.logger.Error("unhandled request error", "path", r.URL.Path, "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
