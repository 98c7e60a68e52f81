// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/codehunt/pkg/logger"
	"github.com/okian/codehunt/pkg/metrics"
)

// Puzzle names passed to Dependencies.RecordRejected.
const (
	puzzleStrength = "strength"
	puzzleContest  = "contest"
	puzzleElves    = "elves"
)

// Default request body cap.
const defaultMaxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	WarmupDependencies
	CubeBitsDependencies
	ReindeerDependencies
	ElvesDependencies

	// RecordRejected counts input rejected before reaching a solver.
	RecordRejected(puzzle, kind string)
}

// Server wires HTTP routes for the business API.
type Server struct {
	warmupHandler   *WarmupHandler
	cubeBitsHandler *CubeBitsHandler
	reindeerHandler *ReindeerHandler
	elvesHandler    *ElvesHandler
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler

	log          logger.Logger
	metrics      *metrics.Manager
	maxBodyBytes int64
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithMaxBodyBytes caps request bodies read by the POST handlers.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger used by handlers and middleware.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics sets the metrics manager used by the middleware.
func WithMetrics(m *metrics.Manager) ServerOption {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		metrics:      metrics.Global(),
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("api")
	}

	s.warmupHandler = NewWarmupHandler(deps, s.log)
	s.cubeBitsHandler = NewCubeBitsHandler(deps, s.log)
	s.reindeerHandler = NewReindeerHandler(deps, s.log, s.maxBodyBytes)
	s.elvesHandler = NewElvesHandler(deps, s.log, s.maxBodyBytes)
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	for _, rt := range s.routes() {
		mux.HandleFunc(rt.pattern, s.wrap(rt.endpoint, rt.handler))
	}
}

// route is a single entry of the static route table.
type route struct {
	pattern  string
	endpoint string
	handler  http.HandlerFunc
}

func (s *Server) routes() []route {
	return []route{
		{"GET /{$}", "day_neg1_hello", s.warmupHandler.HandleHello},
		{"GET /-1/error", "day_neg1_error", s.warmupHandler.HandleError},
		{"GET /1/{nums...}", "day1_cube_bits", s.cubeBitsHandler.HandleCubeBits},
		{"POST /4/strength", "day4_strength", s.reindeerHandler.HandleStrength},
		{"POST /4/contest", "day4_contest", s.reindeerHandler.HandleContest},
		{"POST /6", "day6_elves", s.elvesHandler.HandleCount},
		{"GET /healthz", "healthz", s.healthHandler.HandleHealth},
		{"GET /stats", "stats", s.statsHandler.HandleStats},
	}
}

// wrap applies the middleware chain shared by every route.
func (s *Server) wrap(endpoint string, h http.HandlerFunc) http.HandlerFunc {
	h = s.MetricsMiddleware(h, endpoint)
	h = s.LoggingMiddleware(h, endpoint)
	return RequestIDMiddleware(h)
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: RequestIDFromContext(r.Context())})
}
