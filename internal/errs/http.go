package errs

import (
	"fmt"
	"net/http"
)

// newHTTPError builds an HTTPError whose code derives from the standard
// status text unless overridden by a constructor.
func newHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
		Detail:  message,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError, optionally
// carrying field-level validation errors.
func NewBadRequestError(message string, fieldErrors []FieldError) *HTTPError {
	err := newHTTPError(http.StatusBadRequest, message)
	err.Errors = fieldErrors
	return err
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message)
}

// NewServiceUnavailableError creates a 503 HTTPError. Used when an
// operation runs before the database pool is initialized.
func NewServiceUnavailableError(message string) *HTTPError {
	return newHTTPError(http.StatusServiceUnavailable, message)
}

// NewDatabaseError creates a 500 HTTPError surfacing the underlying
// database error text. This service is internal and read-only, so the
// driver message is exposed to the caller rather than redacted.
func NewDatabaseError(err error) *HTTPError {
	return newHTTPError(http.StatusInternalServerError, fmt.Sprintf("Database error: %s", err))
}

// NewInternalServerError creates a generic 500 HTTPError with no
// internal detail attached.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
