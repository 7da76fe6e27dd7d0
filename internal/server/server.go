// Package server exposes the JSON API, the dashboard pages and the ops
// endpoints on one chi router.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/common/i18n"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/common/observability"
	"iwms-dashboard/internal/dashboard"
	"iwms-dashboard/internal/services"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Options struct {
	DefaultLocale i18n.Locale
	Logger        logger.Logger
	// Observability records HTTP metrics; nil disables them.
	Observability *observability.Observability
	// Metrics serves /metrics; defaults to promhttp.Handler().
	Metrics http.Handler
	Checks  map[string]HealthCheck
}

type Server struct {
	router   chi.Router
	svcs     *services.Services
	dash     *dashboard.Dashboard
	opts     Options
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
	resolver i18n.Resolver
}

func New(svcs *services.Services, dash *dashboard.Dashboard, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = promhttp.Handler()
	}
	s := &Server{
		svcs:     svcs,
		dash:     dash,
		opts:     opts,
		errors:   apperrors.NewErrorHandler(opts.Logger),
		logger:   opts.Logger.WithFields(map[string]interface{}{"component": "server"}),
		resolver: i18n.Resolver{Default: opts.DefaultLocale},
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	if s.opts.Observability != nil {
		r.Use(s.opts.Observability.Middleware)
	}
	r.Use(s.resolver.Middleware)

	r.NotFound(s.notFound)

	r.Get("/healthz", s.healthz)
	r.Handle("/metrics", s.opts.Metrics)

	r.Route("/api", s.apiRoutes)

	r.Get("/", s.overviewPage)
	r.Get("/pages/{page}", s.page)
	r.Post("/pages/{page}/retry", s.retry)
	r.Post("/lang", s.setLanguage)
	return r
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"data": nil, "error": "Not found"})
		return
	}
	http.NotFound(w, r)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status, code := "healthy", http.StatusOK
	checks := make(map[string]string, len(s.opts.Checks))
	for name, check := range s.opts.Checks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status, code = "unhealthy", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	boundaries := make(map[string]string)
	for page, state := range s.dash.States() {
		boundaries[page] = state.String()
	}

	writeJSON(w, code, map[string]interface{}{
		"status":     status,
		"time":       time.Now().Format(time.RFC3339),
		"checks":     checks,
		"boundaries": boundaries,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
