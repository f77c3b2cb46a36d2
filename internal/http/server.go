package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"fueltracker/internal/gate"
	applog "fueltracker/internal/log"
	"fueltracker/internal/services"
)

// HeaderAdminSecret carries the access gate secret on gated routes.
const HeaderAdminSecret = "X-Admin-Secret"

// HeaderRequestID echoes the id assigned to each request.
const HeaderRequestID = "X-Request-ID"

// Pinger is implemented by stores that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	http.Server
	entries     *services.EntryService
	gate        *gate.Gate
	logger      *applog.Logger
	ready       Pinger
	rateLimiter *rateLimiter
}

// Option customizes a Server.
type Option func(*Server)

// WithReadiness makes /readyz ping p.
func WithReadiness(p Pinger) Option {
	return func(s *Server) { s.ready = p }
}

// WithWriteLimit caps mutating requests per client per minute.
func WithWriteLimit(perMinute int) Option {
	return func(s *Server) { s.rateLimiter.limit = perMinute }
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, entries *services.EntryService, g *gate.Gate, logger *applog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = applog.Discard()
	}
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		entries:     entries,
		gate:        g,
		logger:      logger.WithComponent(applog.ComponentHTTP),
		rateLimiter: newRateLimiter(defaultWriteLimit),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /entries", s.withSecurityHeaders(s.handleCreateEntry))
	mux.HandleFunc("POST /entries/preview", s.withSecurityHeaders(s.handlePreviewEntry))
	mux.HandleFunc("GET /entries", s.withSecurityHeaders(s.handleListEntries))
	mux.HandleFunc("GET /entries/{id}", s.withSecurityHeaders(s.handleGetEntry))
	mux.HandleFunc("PUT /entries/{id}", s.withSecurityHeaders(s.requireAdmin(s.handleUpdateEntry)))
	mux.HandleFunc("DELETE /entries/{id}", s.withSecurityHeaders(s.requireAdmin(s.handleDeleteEntry)))
	mux.HandleFunc("GET /admin/entries", s.withSecurityHeaders(s.requireAdmin(s.handleAdminEntries)))
	mux.HandleFunc("GET /summary", s.withSecurityHeaders(s.handleSummary))
	mux.HandleFunc("GET /series", s.withSecurityHeaders(s.handleSeries))

	return s
}

// Shutdown stops background work and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.rateLimiter.stop()
	return s.Server.Shutdown(ctx)
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := uuid.NewString()

		logger := s.logger.With(applog.FieldRequestID, requestID)
		ctx := applog.IntoContext(r.Context(), logger)
		r = r.WithContext(ctx)

		logger.DebugContext(ctx, "Request started", applog.NewFields().
			WithHTTPRequest(r.Method, r.URL.Path, clientIP).
			ToSlice()...)

		w.Header().Set(HeaderRequestID, requestID)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")

		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			logger.WarnContext(ctx, "Rate limit exceeded", applog.NewFields().
				WithHTTPRequest(r.Method, r.URL.Path, clientIP).
				ToSlice()...)
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many changes, please try again in a minute"})
			return
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		logger.InfoContext(ctx, "Request completed", applog.NewFields().
			WithHTTPRequest(r.Method, r.URL.Path, clientIP).
			WithHTTPResponse(rw.statusCode, time.Since(start).Milliseconds()).
			ToSlice()...)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	}
	return false
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready.Ping(r.Context()); err != nil {
			s.logger.WarnContext(r.Context(), "Readiness check failed", applog.FieldError, err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
