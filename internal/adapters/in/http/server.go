package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"dds/internal/adapters/in/http/crud"
	"dds/internal/generated/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server exposes the CRUD resources, health, metrics and API description
// over HTTP.
type Server struct {
	echo   *echo.Echo
	logger *slog.Logger
}

// NewServer builds the echo instance and mounts every route:
//
//	/api/v1/customers  customer resource
//	/api/v1/products   product resource
//	/health            liveness
//	/metrics           Prometheus metrics gathered from registry
//	/openapi.json      API description
//	/swagger/*         Swagger UI
func NewServer(
	logger *slog.Logger,
	registry *prometheus.Registry,
	customers *CustomerController,
	products *ProductController,
) (*Server, error) {
	metrics, err := NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	s := &Server{
		echo:   echo.New(),
		logger: logger.With("component", "http"),
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(metrics.Middleware())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.LogAttrs(c.Request().Context(), slog.LevelDebug, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, docs.JSON())
	})
	docs.Register()
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	crud.Register(api.Group("/customers"), customers)
	crud.Register(api.Group("/products"), products)

	return s, nil
}

// Handler returns the root handler, for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on address until Shutdown is called.
func (s *Server) Start(address string) error {
	s.logger.Info("listening", "address", address)
	if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// handleError answers errors that escaped the handlers. Routing errors keep
// echo's behaviour; anything else is logged and answered with 500 and no
// detail.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		s.echo.DefaultHTTPErrorHandler(err, c)
		return
	}

	req := c.Request()
	s.logger.ErrorContext(req.Context(), "request failed",
		"method", req.Method,
		"path", c.Path(),
		"error", err,
	)
	if err = c.NoContent(http.StatusInternalServerError); err != nil {
		s.logger.Error("write error response", "error", err)
	}
}
