package http

import (
	"log/slog"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// NewRouter wires middleware, the OpenAPI routes, /metrics and /swagger/*.
func NewRouter(server ServerInterface, doc *openapi3.T, metrics *Metrics, logger *slog.Logger) (*echo.Echo, error) {
	validator, err := NewRequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)

	e.Use(
		middleware.Recover(),
		RequestID(),
		RequestLogger(logger.With("component", "http")),
		metrics.Middleware,
	)

	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", swaggerHandler())

	RegisterHandlers(e, server, validator.Middleware)

	return e, nil
}
