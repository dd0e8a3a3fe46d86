package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/teacherlog/teacherlog/application/service"
	apimiddleware "github.com/teacherlog/teacherlog/infrastructure/api/middleware"
	v1 "github.com/teacherlog/teacherlog/infrastructure/api/v1"
	"github.com/teacherlog/teacherlog/infrastructure/api/v1/dto"
)

// requestTimeout bounds request handling per route group.
const requestTimeout = 60 * time.Second

const livenessMessage = "TeacherLog API is running"

// APIServer provides the HTTP API over the application services.
type APIServer struct {
	contributions *service.Contribution
	summaries     *service.Summary
	corsOrigins   []string

	readLimiter      apimiddleware.Limiter
	writeLimiter     apimiddleware.Limiter
	summarizeLimiter apimiddleware.Limiter

	server *Server
	router chi.Router
	logger *slog.Logger
}

// APIServerOption is a functional option for APIServer.
type APIServerOption func(*APIServer)

// WithCORSOrigins sets the allowed cross-origin request origins.
func WithCORSOrigins(origins []string) APIServerOption {
	return func(a *APIServer) { a.corsOrigins = origins }
}

// WithLimiters overrides the per-route rate limiters. Intended for
// tests that need a deterministic limiter.
func WithLimiters(read, write, summarize apimiddleware.Limiter) APIServerOption {
	return func(a *APIServer) {
		a.readLimiter = read
		a.writeLimiter = write
		a.summarizeLimiter = summarize
	}
}

// NewAPIServer creates a new APIServer over the given services.
func NewAPIServer(contributions *service.Contribution, summaries *service.Summary, logger *slog.Logger, opts ...APIServerOption) *APIServer {
	if logger == nil {
		logger = slog.Default()
	}

	a := &APIServer{
		contributions:    contributions,
		summaries:        summaries,
		logger:           logger,
		readLimiter:      apimiddleware.NewRateLimiter(apimiddleware.ReadRatePerMinute),
		writeLimiter:     apimiddleware.NewRateLimiter(apimiddleware.WriteRatePerMinute),
		summarizeLimiter: apimiddleware.NewRateLimiter(apimiddleware.SummarizeRatePerMinute),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// mountRoutes wires up the API routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	router.Use(apimiddleware.SecurityHeaders)
	router.Use(apimiddleware.Logging(a.logger))

	contribRouter := v1.NewContributionsRouter(a.contributions, a.logger)
	summarizeRouter := v1.NewSummarizeRouter(a.summaries, a.logger)

	router.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(requestTimeout))

		r.Get("/", a.root)

		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.RateLimitByMethod(a.readLimiter, a.writeLimiter, a.logger))
			r.Mount("/contributions", contribRouter.Routes())
		})

		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.RateLimit(a.summarizeLimiter, a.logger))
			r.Mount("/summarize", summarizeRouter.Routes())
		})
	})
}

// root handles GET /api/, the service liveness message.
func (a *APIServer) root(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: livenessMessage})
}

// MountOn wires the API routes onto an externally owned router.
func (a *APIServer) MountOn(router chi.Router) {
	a.mountRoutes(router)
}

// ListenAndServe starts the HTTP server on the given address and blocks.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server

	a.mountRoutes(server.Router())

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the fully mounted router for use with custom servers
// and tests.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.router = chi.NewRouter()
		a.router.Use(chimiddleware.RequestID)
		a.router.Use(chimiddleware.RealIP)
		a.router.Use(chimiddleware.Recoverer)
		a.mountRoutes(a.router)
	}
	return a.router
}
