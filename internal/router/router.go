// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/obolabs/obo-server/internal/handler"
	"github.com/obolabs/obo-server/internal/middleware"
	"github.com/obolabs/obo-server/internal/server"
)

// New builds the echo instance with the global middleware stack and
// all routes registered.
func New(s *server.Server, mw *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	// RequestID must run before the context enhancer so the
	// request-scoped logger carries the correlation id.
	e.Use(middleware.RequestID())
	e.Use(mw.ContextEnhancer.EnhanceContext())
	e.Use(mw.Global.RequestLogger())
	e.Use(mw.Global.Recover())
	e.Use(mw.Global.CORS())
	e.Use(mw.Global.Secure())

	registerSystemRoutes(e, h)
	registerDeckRoutes(e, h)

	return e
}

// registerDeckRoutes defines the versioned deck API.
func registerDeckRoutes(e *echo.Echo, h *handler.Handlers) {
	v1 := e.Group("/api/v1")

	v1.GET("/decks", handler.Handle(h.Decks.Handler, h.Decks.List, http.StatusOK, handler.NewListDecksRequest))
	v1.GET("/decks/:id", handler.Handle(h.Decks.Handler, h.Decks.Get, http.StatusOK, func() *handler.GetDeckRequest {
		return &handler.GetDeckRequest{}
	}))
}
