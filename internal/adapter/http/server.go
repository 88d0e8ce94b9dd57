// Package http exposes the assessment and hotspot operations plus the usual
// health, readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/emberwatch/wildfire-risk-engine/internal/adapter/firms"
	"github.com/emberwatch/wildfire-risk-engine/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Assessor produces a full risk assessment for a location and reports
// readiness.
type Assessor interface {
	Assess(ctx context.Context, loc domain.Location) (domain.Assessment, error)
	CheckReadiness(ctx context.Context) error
}

// HotspotFetcher returns thermal anomaly detections for an area identifier.
type HotspotFetcher interface {
	Fetch(ctx context.Context, area string) ([]domain.HotspotDetection, error)
}

// Server exposes the risk engine over HTTP.
type Server struct {
	httpServer *http.Server
	assessor   Assessor
	hotspots   HotspotFetcher
	logger     *slog.Logger
}

// NewServer creates an HTTP server with assessment, hotspot, health,
// readiness, and metrics routes.
func NewServer(addr string, assessor Assessor, hotspots HotspotFetcher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		assessor: assessor,
		hotspots: hotspots,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/assessment", s.handleAssessment)
	mux.HandleFunc("GET /v1/hotspots", s.handleHotspots)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.assessor.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleAssessment runs one full assessment. Invalid coordinates are the only
// client error; upstream feed trouble degrades inside the assessor and still
// yields a 200.
func (s *Server) handleAssessment(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat must be a number"})
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lon must be a number"})
		return
	}

	loc := domain.Location{Lat: lat, Lon: lon, Name: r.URL.Query().Get("name")}

	assessment, err := s.assessor.Assess(r.Context(), loc)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCoordinates) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.logger.Error("assessment failed", "lat", lat, "lon", lon, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "assessment failed"})
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

// handleHotspots serves current detections for an area. A dead feed is a 503;
// a healthy feed with zero detections is a 200 with an empty list.
func (s *Server) handleHotspots(w http.ResponseWriter, r *http.Request) {
	detections, err := s.hotspots.Fetch(r.Context(), r.URL.Query().Get("area"))
	if err != nil {
		if errors.Is(err, firms.ErrFeedUnavailable) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "hotspot feed is temporarily unavailable"})
			return
		}
		s.logger.Error("hotspot fetch failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "hotspot fetch failed"})
		return
	}

	if detections == nil {
		detections = []domain.HotspotDetection{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":      len(detections),
		"detections": detections,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
