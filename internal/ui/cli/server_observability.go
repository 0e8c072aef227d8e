package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"dtsforge/internal/core/app"
	"dtsforge/internal/data/history"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ObservabilityServer exposes prometheus metrics, a health check, and the
// recent conversion history over plain HTTP.
type ObservabilityServer struct {
	addr          string
	healthService *app.HealthService
	store         *history.Store
	logger        *slog.Logger
	server        *http.Server
}

func NewObservabilityServer(addr string, healthService *app.HealthService, store *history.Store, logger *slog.Logger) *ObservabilityServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ObservabilityServer{
		addr:          addr,
		healthService: healthService,
		store:         store,
		logger:        logger,
	}
}

func (s *ObservabilityServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := s.healthService.Check(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if status.Status != "up" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(status)
	})

	mux.HandleFunc("/runs", s.handleRuns)

	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("observability server starting", "addr", s.addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("observability server failed", "error", err)
		}
	}()

	return nil
}

// handleRuns serves the persisted conversion runs, newest first. The
// library query parameter filters to one library; since accepts an
// RFC3339 lower bound.
func (s *ObservabilityServer) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "run history is disabled", http.StatusNotFound)
		return
	}

	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "invalid since parameter: "+err.Error(), http.StatusBadRequest)
			return
		}
		since = parsed
	}

	runs, err := s.store.LoadRuns(r.URL.Query().Get("library"), since)
	if err != nil {
		s.logger.Error("failed to load run history", "error", err)
		http.Error(w, "failed to load runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

func (s *ObservabilityServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
