// Package middleware provides the HTTP middleware stack: request-id
// correlation, request-scoped logging, CORS/recovery/secure headers,
// per-request log lines, and the global error handler that maps every
// error kind to its status code.
package middleware

import (
	"github.com/obolabs/obo-server/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server
// so router setup receives a single wired object.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers,
	// and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped
	// logger (request_id, method, path, ip).
	ContextEnhancer *ContextEnhancer
}

// NewMiddlewares constructs all middleware components from the
// application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
	}
}
