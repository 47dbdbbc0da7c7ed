// Package server provides the HTTP server for the unistroke recognition service.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/raskell/unistroke/internal/app"
	"github.com/raskell/unistroke/internal/server/api"
	"github.com/raskell/unistroke/internal/store"
	"github.com/raskell/unistroke/pkg/logger"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       *app.App
	Log       logger.Logger
}

// Server represents the HTTP server for the unistroke application.
type Server struct {
	config Config
	log    logger.Logger
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	log := config.Log
	if log == nil {
		log, _ = logger.New("info")
	}

	s := &Server{
		config: config,
		log:    log,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register template API handlers if Store is configured
	if s.config.App != nil && s.config.Store != nil {
		templateHandler := api.NewTemplateHandler(s.config.App, s.config.Store)
		samplesHandler := api.NewSamplesHandler(s.config.Store)

		// Use a wrapper to route between templates and samples handlers
		templateRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Check if this is a samples request: /api/templates/{id}/samples
			if strings.HasSuffix(r.URL.Path, "/samples") {
				samplesHandler.ServeHTTP(w, r)
				return
			}
			templateHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/templates", templateRouter)
		s.mux.Handle("/api/templates/", templateRouter)
	}

	if s.config.App != nil {
		s.mux.Handle("/api/recognize", api.NewRecognizeHandler(s.config.App))
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.App, s.log))
		s.mux.Handle("/metrics", s.config.App.Metrics().Handler())
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface. API requests are
// recorded in the request metrics with identifiers stripped from the
// path label.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.config.App == nil || !strings.HasPrefix(r.URL.Path, "/api/") {
		s.mux.ServeHTTP(w, r)
		return
	}

	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.config.App.Metrics().RecordHTTPRequest(
		r.Method, metricPath(r.URL.Path), strconv.Itoa(rec.status), time.Since(start))
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.written {
		r.status = status
		r.written = true
	}
	r.ResponseWriter.WriteHeader(status)
}

// metricPath collapses template IDs so the path label stays low
// cardinality.
func metricPath(path string) string {
	rest := strings.TrimPrefix(path, "/api/templates/")
	if rest == path || rest == "" {
		return path
	}

	parts := strings.Split(rest, "/")
	if len(parts) == 1 {
		return "/api/templates/:id"
	}
	return "/api/templates/:id/" + strings.Join(parts[1:], "/")
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}
	if s.config.App != nil {
		response["templates"] = s.config.App.TemplateCount()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("http server listening", logger.String("addr", addr))
	return http.ListenAndServe(addr, s)
}
