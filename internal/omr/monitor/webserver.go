package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/omrkit/staffscan/internal/monitoring"
	"github.com/omrkit/staffscan/internal/omr"
)

// SeriesProvider supplies the projection series of every processed staff of a
// sheet, in staff order.
type SeriesProvider interface {
	ProjectionSeries() []*omr.ProjectionSeries
}

// WebServer handles the HTTP interface for projection diagnostics.
// It provides endpoints for health checks, raw series data and chart views.
type WebServer struct {
	address  string
	server   *http.Server
	provider SeriesProvider
}

// WebServerConfig contains configuration options for the web server.
type WebServerConfig struct {
	Address  string
	Provider SeriesProvider
}

// NewWebServer creates a new web server with the provided configuration.
func NewWebServer(config WebServerConfig) *WebServer {
	ws := &WebServer{
		address:  config.Address,
		provider: config.Provider,
	}

	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: ws.setupRoutes(),
	}

	return ws
}

func (ws *WebServer) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Start begins the HTTP server in a goroutine and handles graceful shutdown.
func (ws *WebServer) Start(ctx context.Context) error {
	go func() {
		monitoring.Logf("Starting HTTP server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			monitoring.Logf("HTTP server error: %v", err)
		}
	}()

	// Wait for context cancellation to shut down server
	<-ctx.Done()
	monitoring.Logf("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("HTTP server shutdown error: %v", err)
		if err := ws.server.Close(); err != nil {
			monitoring.Logf("HTTP server force close error: %v", err)
		}
	}

	monitoring.Logf("HTTP server routine stopped")
	return nil
}

// setupRoutes configures the HTTP routes and handlers.
func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/api/projection", ws.handleProjectionData)
	mux.HandleFunc("/charts/projection", ws.handleProjectionChart)
	mux.HandleFunc("/charts/projection.png", ws.handleProjectionPlot)

	return mux
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleProjectionData serves the raw series of all staves, or of a single one
// when a staff_id query parameter is given.
func (ws *WebServer) handleProjectionData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	allSeries := ws.allSeries()
	if len(allSeries) == 0 {
		ws.writeJSONError(w, http.StatusNotFound, "no projection series available")
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if s := r.URL.Query().Get("staff_id"); s != "" {
		series := ws.findSeries(allSeries, s)
		if series == nil {
			ws.writeJSONError(w, http.StatusNotFound, "no series for staff "+s)
			return
		}
		json.NewEncoder(w).Encode(series)
		return
	}

	json.NewEncoder(w).Encode(allSeries)
}

func (ws *WebServer) allSeries() []*omr.ProjectionSeries {
	if ws.provider == nil {
		return nil
	}
	return ws.provider.ProjectionSeries()
}

func (ws *WebServer) findSeries(allSeries []*omr.ProjectionSeries, staffID string) *omr.ProjectionSeries {
	id, err := strconv.Atoi(staffID)
	if err != nil {
		return nil
	}
	for _, s := range allSeries {
		if s.StaffID == id {
			return s
		}
	}
	return nil
}
