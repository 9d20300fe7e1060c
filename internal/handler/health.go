package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/obolabs/obo-server/internal/database"
	"github.com/obolabs/obo-server/internal/middleware"
	"github.com/obolabs/obo-server/internal/server"
	"github.com/obolabs/obo-server/internal/service"
)

// HealthHandler serves the liveness and metrics endpoints used by
// uptime monitors. Both endpoints always answer 200: every failure
// state is described in the response body instead of the status code.
type HealthHandler struct {
	Handler
	decks *service.DeckService
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server, decks *service.DeckService) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		decks:   decks,
	}
}

// HealthResponse reports overall service status and database
// connectivity. Database is one of "connected", "unexpected",
// "pool_not_initialized", or "error: <text>".
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// MetricsResponse carries the usage counts, or an empty list plus an
// error description when the counts could not be fetched.
type MetricsResponse struct {
	Metrics []service.Metric `json:"metrics"`
	Error   string           `json:"error,omitempty"`
}

// Check probes the database with a trivial query and reports the
// detected state. An uninitialized pool is degraded-but-non-fatal and
// reported distinctly from a query failure.
func (h *HealthHandler) Check(c echo.Context) error {
	resp := HealthResponse{Status: "ok"}

	one, err := h.decks.Probe(c.Request().Context())
	switch {
	case errors.Is(err, database.ErrNotInitialized):
		resp.Database = "pool_not_initialized"

	case err != nil:
		resp.Status = "degraded"
		resp.Database = fmt.Sprintf("error: %s", err)
		middleware.GetLogger(c).Warn().Err(err).Msg("database health check failed")

	case one == 1:
		resp.Database = "connected"

	default:
		resp.Database = "unexpected"
	}

	return c.JSON(http.StatusOK, resp)
}

// Metrics returns the total deck and card counts. A database failure
// is communicated in the body with status 200; callers that need a
// hard failure must inspect the error field.
func (h *HealthHandler) Metrics(c echo.Context) error {
	metrics, err := h.decks.Metrics(c.Request().Context())
	if err != nil {
		middleware.GetLogger(c).Error().Err(err).Msg("fetching metrics failed")
		return c.JSON(http.StatusOK, MetricsResponse{
			Metrics: []service.Metric{},
			Error:   fmt.Sprintf("Database error: %s", err),
		})
	}

	return c.JSON(http.StatusOK, MetricsResponse{Metrics: metrics})
}
