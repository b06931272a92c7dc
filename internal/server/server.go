// Package server contains the admin http server of the marketplace. It exposes the health,
// version, effective configuration and metrics of a running instance.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/config"
	"github.com/SwissDataScienceCenter/code-marketplace/internal/ratelimit"
	"github.com/getkin/kin-openapi/openapi3"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsSubsystem string = "marketplace"

type Server struct {
	config   *config.Config
	store    ratelimit.Store
	version  string
	sentry   bool
	logger   *slog.Logger
	registry *prometheus.Registry
	apiDocs  *openapi3.T
	echo     *echo.Echo
}

type ServerOption func(*Server) error

func WithConfig(c config.Config) ServerOption {
	return func(s *Server) error {
		s.config = &c
		return nil
	}
}

// WithRateLimitStore enables rate limiting with the limits of security.rateLimiting.
func WithRateLimitStore(store ratelimit.Store) ServerOption {
	return func(s *Server) error {
		s.store = store
		return nil
	}
}

func WithVersion(version string) ServerOption {
	return func(s *Server) error {
		s.version = version
		return nil
	}
}

// WithSentry reports panics and server errors to sentry. The sentry client has to be
// initialized separately.
func WithSentry() ServerOption {
	return func(s *Server) error {
		s.sentry = true
		return nil
	}
}

func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := Server{registry: prometheus.NewRegistry()}
	for _, opt := range options {
		err := opt(&server)
		if err != nil {
			return &Server{}, err
		}
	}
	if server.config == nil {
		return &Server{}, fmt.Errorf("the server configuration is not set")
	}
	if server.logger == nil {
		server.logger = slog.Default()
	}
	if server.config.Development.EnableSwagger {
		apiDocs, err := LoadAPIDocs(context.Background())
		if err != nil {
			return &Server{}, err
		}
		server.apiDocs = apiDocs
	}
	server.echo = server.newEcho()
	return &server, nil
}

func (s *Server) newEcho() *echo.Echo {
	e := echo.New()
	// The banner and the port do not respect the logger formatting so we remove them
	// the address will be logged when the server starts.
	e.HideBanner = true
	e.HidePort = true
	e.Pre(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: newRequestID}), middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	if s.sentry {
		e.Use(sentryecho.New(sentryecho.Options{}))
	}
	e.Use(
		requestLogger(s.logger),
		echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  metricsSubsystem,
			Registerer: s.registry,
		}),
	)
	if len(s.config.App.CorsOrigin) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: s.config.App.CorsOrigin}))
	}
	if s.config.App.MaxUploadSize > 0 {
		e.Use(middleware.BodyLimit(fmt.Sprintf("%dB", s.config.App.MaxUploadSize.Bytes())))
	}
	if s.store != nil {
		e.Use(ratelimit.NewLimiter(s.config.Security.RateLimiting, s.store).Middleware())
	}
	s.registerHandlers(e)
	return e
}

func (s *Server) registerHandlers(e *echo.Echo) {
	e.GET("/health", s.health)
	e.GET("/version", s.getVersion)
	e.GET("/config", s.getConfig)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: s.registry}))
	if s.apiDocs != nil {
		e.GET("/api-docs", s.getAPIDocs)
	}
}

func (s *Server) health(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (s *Server) getVersion(c echo.Context) error {
	return c.String(http.StatusOK, s.version)
}

func (s *Server) getConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, config.NewSettings(*s.config))
}

func (s *Server) getAPIDocs(c echo.Context) error {
	return c.JSON(http.StatusOK, s.apiDocs)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start serves on address until the server is shut down.
func (s *Server) Start(address string) error {
	s.logger.Info("starting the server on address " + address)
	err := s.echo.Start(address)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
