// Package api serves the viewer over HTTP: classification, per-client
// sessions and rendered spectra and SEDs.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/agnite/internal/agn"
	"github.com/banshee-data/agnite/internal/db"
	"github.com/banshee-data/agnite/internal/httputil"
	"github.com/banshee-data/agnite/internal/monitoring"
	"github.com/banshee-data/agnite/internal/photometry"
	"github.com/banshee-data/agnite/internal/render"
	"github.com/banshee-data/agnite/internal/session"
	"github.com/banshee-data/agnite/internal/spectrum"
)

// ANSI escape codes for the access log
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// Server holds the handlers' dependencies. Only the registry is required.
type Server struct {
	registry   *session.Registry
	classifier *agn.Classifier
	photometry photometry.Service
	db         *db.DB
	metrics    *monitoring.Collector
	renderOpts render.Options
	cache      *renderCache
}

// Option configures a Server.
type Option func(*Server)

// WithClassifier sets the table used by /api/classify and /api/archetypes.
// It should be the one the registry's sessions use.
func WithClassifier(c *agn.Classifier) Option {
	return func(s *Server) { s.classifier = c }
}

// WithPhotometry enables the SED endpoints.
func WithPhotometry(svc photometry.Service) Option {
	return func(s *Server) { s.photometry = svc }
}

// WithDB enables the view history endpoints.
func WithDB(d *db.DB) Option {
	return func(s *Server) { s.db = d }
}

// WithMetrics serves /metrics from m.
func WithMetrics(m *monitoring.Collector) Option {
	return func(s *Server) { s.metrics = m }
}

// WithRenderOptions sets image size and chart assets.
func WithRenderOptions(o render.Options) Option {
	return func(s *Server) { s.renderOpts = o }
}

func NewServer(registry *session.Registry, opts ...Option) *Server {
	s := &Server{
		registry:   registry,
		classifier: agn.Default(),
		cache:      newRenderCache(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

// ServeMux returns the API routes. Callers add /debug/ routes themselves.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/classify", s.handleClassify)
	mux.HandleFunc("/api/archetypes", s.handleArchetypes)
	mux.HandleFunc("/api/sessions", s.handleSessions)
	mux.HandleFunc("/api/sessions/", s.handleSessionByID)
	mux.HandleFunc("/api/stats/archetypes", s.handleArchetypeStats)
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var oor *agn.OutOfRangeError
	switch {
	case errors.As(err, &oor):
		httputil.BadRequest(w, err.Error())
	case errors.Is(err, session.ErrNotFound):
		httputil.NotFound(w, err.Error())
	case spectrum.Unavailable(err):
		httputil.ServiceUnavailable(w, "data unavailable: "+err.Error())
	case errors.Is(err, session.ErrNoView):
		httputil.ServiceUnavailable(w, "data unavailable: "+err.Error())
	case errors.Is(err, photometry.ErrNoBaseURL):
		httputil.ServiceUnavailable(w, err.Error())
	case errors.Is(err, render.ErrEmptySpectrum), errors.Is(err, render.ErrTooFewPoints):
		httputil.WriteJSONError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		monitoring.Logf("internal error: %v", err)
		httputil.InternalServerError(w, err.Error())
	}
}
