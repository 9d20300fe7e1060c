// Package sqlerr classifies database-layer errors.
//
// It converts pgx/pgconn errors into the errs taxonomy so the HTTP
// layer maps them to status codes from a single place: a missing row
// is a 404, an uninitialized pool is a 503, and everything else from
// the driver is a 500 carrying the underlying message.
package sqlerr

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/obolabs/obo-server/internal/database"
	"github.com/obolabs/obo-server/internal/errs"
)

// IsNotFound reports whether err means "row not found". Wrapped errors
// are unwrapped, so repository-level context does not hide the kind.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Handle converts a database-layer error into an *errs.HTTPError.
//
// pgx.ErrNoRows is mapped to a generic 404 here; operations that know
// which resource was requested should construct their own NotFound
// message before the error reaches this fallback.
func Handle(err error) *errs.HTTPError {
	switch {
	case err == nil:
		return nil

	case errors.Is(err, pgx.ErrNoRows):
		return errs.NewNotFoundError("Resource not found")

	case errors.Is(err, database.ErrNotInitialized):
		return errs.NewServiceUnavailableError("Database pool not initialized")

	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return errs.NewDatabaseError(pgErr)
		}
		return errs.NewDatabaseError(err)
	}
}
