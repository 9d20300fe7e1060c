// Package handler is the HTTP entry point after the router.
//
// It parses and validates request parameters, calls the service layer,
// and shapes domain values into the JSON response schemas. Failures
// are returned as errors and mapped to status codes by the global
// error handler.
package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/obolabs/obo-server/internal/middleware"
	"github.com/obolabs/obo-server/internal/server"
	"github.com/obolabs/obo-server/internal/validation"
)

// Handler is the base handler type holding shared application
// dependencies. Concrete handlers embed it.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint function receiving a validated
// request payload and returning the response value or an error.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// Handle wraps a typed endpoint with the shared pipeline: bind and
// validate the request, execute the handler, and write the JSON
// response with the given status.
//
// newReq constructs a fresh request value per call (seeded with its
// defaults), so concurrent requests never bind into shared state.
func Handle[Req validation.Validatable, Res any](
	h Handler,
	fn HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		logger := middleware.GetLogger(c)

		req := newReq()
		if err := validation.BindAndValidate(c, req); err != nil {
			logger.Warn().Err(err).Msg("request validation failed")
			return err
		}

		result, err := fn(c, req)
		if err != nil {
			return err
		}

		logger.Debug().
			Dur("duration", time.Since(start)).
			Msg("request completed")

		return c.JSON(status, result)
	}
}
