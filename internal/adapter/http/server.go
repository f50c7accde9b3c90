// Package http serves the loader's operational endpoints while a load runs.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/isd-loader/internal/pipeline"
)

// LoadMonitor is implemented by the orchestrator driving the load.
type LoadMonitor interface {
	sharedobs.ReadinessChecker
	Progress() pipeline.Progress
}

// Server exposes /healthz, /readyz, /progress and /metrics.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(addr string, monitor LoadMonitor, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(monitor))
	mux.HandleFunc("GET /progress", handleProgress(monitor))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start listens until Shutdown. It returns http.ErrServerClosed after a
// graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func handleProgress(monitor LoadMonitor) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		sharedobs.WriteJSON(w, http.StatusOK, monitor.Progress())
	}
}
