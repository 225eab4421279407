package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/b2bnews/pkg/health"
	"github.com/dmitrymomot/b2bnews/pkg/logger"
)

// Default health check paths.
const (
	LivenessPath  = "/health/live"
	ReadinessPath = "/health/ready"
)

// Config holds HTTP server settings.
type Config struct {
	Address         string        `env:"HTTP_ADDRESS" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
}

// Option configures a Server.
type Option func(*Server)

// WithConfig sets address and timeouts.
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithHandlers registers route handlers.
func WithHandlers(h ...Handler) Option {
	return func(s *Server) {
		s.handlers = append(s.handlers, h...)
	}
}

// WithMiddleware adds middleware to every route.
func WithMiddleware(mw ...Middleware) Option {
	return func(s *Server) {
		s.middleware = append(s.middleware, mw...)
	}
}

// WithHTTPMiddleware adds net/http middleware in front of the router. It sees every
// request, including ones that match no route.
func WithHTTPMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(s *Server) {
		s.httpMiddleware = append(s.httpMiddleware, mw...)
	}
}

// WithErrorMapper sets how non-HTTP errors map to responses.
func WithErrorMapper(fn ErrorMapper) Option {
	return func(s *Server) {
		s.mapError = fn
	}
}

// WithHealthChecks registers readiness checks served at ReadinessPath.
func WithHealthChecks(checks health.Checks) Option {
	return func(s *Server) {
		s.checks = checks
	}
}

// WithShutdownHook adds a hook that runs after the HTTP server stopped.
// Hooks run in registration order.
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(s *Server) {
		s.shutdownHooks = append(s.shutdownHooks, fn)
	}
}

// Server builds the router and runs the HTTP server.
type Server struct {
	cfg            Config
	log            *slog.Logger
	handlers       []Handler
	middleware     []Middleware
	httpMiddleware []func(http.Handler) http.Handler
	mapError       ErrorMapper
	checks         health.Checks
	shutdownHooks  []func(context.Context) error

	mux chi.Router
}

// New creates a server and builds its routes.
func New(opts ...Option) *Server {
	s := &Server{log: logger.NewNope()}
	for _, opt := range opts {
		opt(s)
	}

	mux := chi.NewRouter()
	mux.Use(RequestID, RequestLogger(s.log))
	mux.Use(s.httpMiddleware...)
	mux.NotFound(s.adaptHandler(func(*Context) error { return ErrNotFound("not found") }))
	mux.MethodNotAllowed(s.adaptHandler(func(*Context) error {
		return NewHTTPError(http.StatusMethodNotAllowed, "method not allowed")
	}))
	mux.Get(LivenessPath, health.Liveness())
	mux.Get(ReadinessPath, health.Readiness(s.checks, health.WithLogger(s.log)))

	root := &routerAdapter{router: mux, srv: s, mw: append([]Middleware{Recover()}, s.middleware...)}
	for _, h := range s.handlers {
		h.Routes(root)
	}
	s.mux = mux
	return s
}

// Router returns the root http.Handler.
func (s *Server) Router() http.Handler {
	return s.mux
}

func (s *Server) adaptHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, s.log)
		if err := h(c); err != nil {
			s.handleError(c, err)
		}
	}
}

func (s *Server) handleError(c *Context, err error) {
	if c.Written() {
		c.Logger().WarnContext(c.Context(), "handler error after response was written", slog.String("error", err.Error()))
		return
	}

	var he *HTTPError
	if !errors.As(err, &he) {
		if s.mapError != nil {
			he = s.mapError(err)
		}
		if he == nil {
			he = ErrInternal("internal server error", WithError(err))
		}
	}

	if he.Code >= http.StatusInternalServerError {
		c.Logger().ErrorContext(c.Context(), "request failed",
			slog.String("path", c.Request().URL.Path),
			slog.String("error", err.Error()),
		)
	}
	_ = c.JSON(he.Code, map[string]string{"error": he.Message})
}
