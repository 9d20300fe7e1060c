package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
	}{
		{"bad request", NewBadRequestError("Validation failed", nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("Deck 99 not found"), http.StatusNotFound, "NOT_FOUND"},
		{"service unavailable", NewServiceUnavailableError("pool down"), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.wantStatus {
				t.Errorf("status: got %d, want %d", tt.err.Status, tt.wantStatus)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("code: got %q, want %q", tt.err.Code, tt.wantCode)
			}
			if tt.err.Detail != tt.err.Message {
				t.Errorf("detail %q does not mirror message %q", tt.err.Detail, tt.err.Message)
			}
			if tt.err.Error() != tt.err.Message {
				t.Errorf("Error(): got %q, want %q", tt.err.Error(), tt.err.Message)
			}
		})
	}
}

func TestNewDatabaseError_SurfacesText(t *testing.T) {
	err := NewDatabaseError(fmt.Errorf("dial tcp 127.0.0.1:5432: connect: connection refused"))

	if err.Status != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", err.Status)
	}
	want := "Database error: dial tcp 127.0.0.1:5432: connect: connection refused"
	if err.Message != want {
		t.Errorf("message: got %q, want %q", err.Message, want)
	}
}

func TestIs_MatchesType(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("gone"))

	var httpErr *HTTPError
	if !errors.As(wrapped, &httpErr) {
		t.Fatal("errors.As should find *HTTPError in the chain")
	}
	if !errors.Is(wrapped, &HTTPError{}) {
		t.Error("errors.Is should match any *HTTPError target")
	}
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	if got := MakeUpperCaseWithUnderscores("Bad Request"); got != "BAD_REQUEST" {
		t.Errorf("got %q, want BAD_REQUEST", got)
	}
	if got := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusServiceUnavailable)); got != "SERVICE_UNAVAILABLE" {
		t.Errorf("got %q, want SERVICE_UNAVAILABLE", got)
	}
}
