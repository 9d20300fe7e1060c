package router

import (
	"github.com/labstack/echo/v4"

	"github.com/obolabs/obo-server/internal/handler"
)

// registerSystemRoutes registers the endpoints monitors and platform
// tooling use. Both always answer 200; failure states live in the
// response body.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	e.GET("/health", h.Health.Check)
	e.GET("/metrics", h.Health.Metrics)
}
