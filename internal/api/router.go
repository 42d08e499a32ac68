package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ishant3366/minealert/internal/auth"
	"github.com/ishant3366/minealert/internal/observability"
	"github.com/ishant3366/minealert/internal/sim"
	"github.com/ishant3366/minealert/internal/store"
)

// Server exposes the MineAlert HTTP surface.
type Server struct {
	eng     *sim.Engine
	store   *store.Store
	metrics *observability.Collector
	guard   *auth.Guard
	log     *zap.Logger
	router  *mux.Router
}

// NewServer wires the engine, store and metrics into a router. A nil guard
// disables authentication, a nil logger discards logs.
func NewServer(eng *sim.Engine, st *store.Store, metrics *observability.Collector, guard *auth.Guard, log *zap.Logger) *Server {
	if guard == nil {
		guard = auth.NewGuard("")
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		eng:     eng,
		store:   st,
		metrics: metrics,
		guard:   guard,
		log:     log,
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the root handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.router)
}

func (s *Server) routes() {
	r := s.router
	r.HandleFunc("/health", s.health).Methods("GET")
	r.HandleFunc("/api/telemetry", s.telemetry).Methods("GET")
	r.HandleFunc("/api/detections", s.listDetections).Methods("GET")
	r.HandleFunc("/api/detections/stats", s.detectionStats).Methods("GET")
	r.HandleFunc("/api/events", s.listEvents).Methods("GET")
	r.HandleFunc("/api/status", s.systemStatus).Methods("GET")
	r.HandleFunc("/api/sensors", s.sensors).Methods("GET")
	r.HandleFunc("/api/export/detections.csv", s.exportCSV).Methods("GET")
	r.HandleFunc("/api/export/detections.json", s.exportJSON).Methods("GET")
	r.HandleFunc("/api/stream", s.stream).Methods("GET")

	// control commands require the bearer token when auth is configured
	cmd := r.PathPrefix("/api/command").Subrouter()
	cmd.Use(s.guard.Middleware)
	cmd.HandleFunc("/move/{dir}", s.moveCommand).Methods("POST")
	cmd.HandleFunc("/{name}", s.command).Methods("POST")

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}
}

// logRequests logs method, path and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}
