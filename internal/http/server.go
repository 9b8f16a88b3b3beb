package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applog "kakei/internal/log"
	"kakei/internal/metrics"
	"kakei/internal/services"
	appweb "kakei/web"
)

type Server struct {
	http.Server
	templates   *template.Template
	tracker     *services.Tracker
	logger      *applog.Logger
	rateLimiter *rateLimiter
	started     time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, tracker *services.Tracker, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:           addr,
			Handler:        mux,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		tracker:     tracker,
		logger:      logger.WithComponent(applog.ComponentHTTP),
		rateLimiter: newRateLimiter(defaultRequestsPerMinute),
		started:     time.Now(),
	}

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Page and HTMX partials
	s.route(mux, "GET /{$}", s.handleIndex)
	s.route(mux, "GET /ui/ledger", s.handleLedger)
	s.route(mux, "POST /expenses", s.handleCreateExpense)
	s.route(mux, "DELETE /expenses/{id}", s.handleDeleteExpense)
	s.route(mux, "POST /sync", s.handleSync)
	s.route(mux, "POST /notify", s.handleNotify)

	// JSON API
	s.route(mux, "GET /api/categories", s.handleAPICategories)
	s.route(mux, "GET /api/expenses", s.handleAPIList)
	s.route(mux, "POST /api/expenses", s.handleAPICreate)
	s.route(mux, "DELETE /api/expenses/{id}", s.handleAPIDelete)
	s.route(mux, "GET /api/summary", s.handleAPISummary)
	s.route(mux, "POST /api/sync", s.handleAPISync)
	s.route(mux, "POST /api/notify", s.handleAPINotify)

	return s
}

// Shutdown stops the rate limiter and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, s.withMiddleware(pattern, h))
}

// withMiddleware adds security headers, rate limiting, request logging and
// latency metrics to a handler.
func (s *Server) withMiddleware(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		logger := s.logger.With(applog.FieldRequestID, requestID)
		ctx := applog.NewContext(r.Context(), logger)
		r = r.WithContext(ctx)
		w.Header().Set("X-Request-ID", requestID)

		if reason := detectSuspiciousRequest(r); reason != "" {
			metrics.CountSecurityEvent(metrics.EventSuspicious)
			logger.WarnContext(ctx, "Suspicious request",
				applog.FieldClientIP, clientIP,
				applog.FieldPath, r.URL.Path,
				"reason", reason)
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() {
			elapsed := time.Since(start)
			metrics.ObserveResponse(route, rw.statusCode, elapsed)
			applog.LogHTTPEnd(ctx, r, rw.statusCode, elapsed.Milliseconds(), clientIP)
		}()

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			metrics.CountSecurityEvent(metrics.EventRateLimited)
			logger.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			rw.Header().Set("Retry-After", "60")
			http.Error(rw, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		applySecurityHeaders(rw, r)
		next(rw, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewHTMXResponse().BodyJSON(map[string]string{
		"status": "ok",
		"uptime": time.Since(s.started).Truncate(time.Second).String(),
	}).Write(w)
}

// handleReady reports ready once templates are loaded and the slot reads
// back cleanly.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{"templates": "ok", "store": "ok"}
	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = http.StatusServiceUnavailable
	}
	if _, err := s.tracker.View(ctx); err != nil {
		applog.FromContext(ctx).WarnContext(ctx, "Readiness check failed", applog.FieldError, err)
		checks["store"] = "failed: " + err.Error()
		status = http.StatusServiceUnavailable
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not_ready"
	}
	NewHTMXResponse().
		Status(status).
		BodyJSON(map[string]any{"status": state, "checks": checks}).
		Write(w)
}
