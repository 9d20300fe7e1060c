// Package errs defines the error types the API returns to clients.
//
// Every failure leaving the HTTP layer is one of four kinds: a
// validation error (400), a missing resource (404), an uninitialized
// database pool (503), or a database failure (500). The HTTPError type
// carries the status mapping so the global error handler stays a
// single fixed table instead of scattered ad hoc conversions.
package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "limit", "error": "must not exceed 200" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type serialized directly as a JSON error body.
//
// Detail always mirrors Message; clients of the original API read the
// error text from a top-level "detail" field, and that contract is
// kept.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Detail  string       `json:"detail"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Error makes *HTTPError satisfy the error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError, so
// errors.Is(err, &HTTPError{}) detects already-classified errors.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores converts an HTTP status text into a
// stable machine-readable code, e.g. "Bad Request" -> "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
