package sqlerr

import (
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/obolabs/obo-server/internal/database"
)

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(pgx.ErrNoRows) {
		t.Error("pgx.ErrNoRows should be not-found")
	}
	// Repository-level wrapping must not hide the kind.
	if !IsNotFound(errors.Wrapf(pgx.ErrNoRows, "fetching deck %d", 99)) {
		t.Error("wrapped pgx.ErrNoRows should still be not-found")
	}
	if IsNotFound(errors.New("connection refused")) {
		t.Error("generic error should not be not-found")
	}
}

func TestHandle_NoRows(t *testing.T) {
	httpErr := Handle(errors.Wrap(pgx.ErrNoRows, "fetching deck"))
	if httpErr.Status != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", httpErr.Status)
	}
}

func TestHandle_NotInitialized(t *testing.T) {
	httpErr := Handle(database.ErrNotInitialized)
	if httpErr.Status != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", httpErr.Status)
	}
}

func TestHandle_PgError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity: "ERROR",
		Code:     "42P01",
		Message:  `relation "decks" does not exist`,
	}

	httpErr := Handle(errors.Wrap(pgErr, "querying decks"))
	if httpErr.Status != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", httpErr.Status)
	}
	if !strings.Contains(httpErr.Message, "Database error") {
		t.Errorf("message: got %q, want database error prefix", httpErr.Message)
	}
	if !strings.Contains(httpErr.Message, "decks") {
		t.Errorf("message: got %q, want underlying text surfaced", httpErr.Message)
	}
}

func TestHandle_GenericError(t *testing.T) {
	httpErr := Handle(errors.New("dial tcp: connection refused"))
	if httpErr.Status != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", httpErr.Status)
	}
	if !strings.Contains(httpErr.Message, "connection refused") {
		t.Errorf("message: got %q, want underlying text surfaced", httpErr.Message)
	}
}

func TestHandle_Nil(t *testing.T) {
	if got := Handle(nil); got != nil {
		t.Errorf("Handle(nil): got %+v, want nil", got)
	}
}
