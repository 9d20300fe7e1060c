package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/obolabs/obo-server/internal/errs"
)

type pageRequest struct {
	Age    string `query:"age"`
	Limit  int    `query:"limit" validate:"min=1,max=200"`
	Offset int    `query:"offset" validate:"min=0"`
}

func (r *pageRequest) Validate() error {
	return Validator.Struct(r)
}

func newContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_OK(t *testing.T) {
	c := newContext(t, "/decks?age=6-8&limit=10&offset=5")

	payload := &pageRequest{Limit: 50}
	if err := BindAndValidate(c, payload); err != nil {
		t.Fatalf("BindAndValidate: %v", err)
	}

	if payload.Age != "6-8" || payload.Limit != 10 || payload.Offset != 5 {
		t.Errorf("bound payload: got %+v", payload)
	}
}

func TestBindAndValidate_KeepsDefaults(t *testing.T) {
	c := newContext(t, "/decks")

	payload := &pageRequest{Limit: 50}
	if err := BindAndValidate(c, payload); err != nil {
		t.Fatalf("BindAndValidate: %v", err)
	}

	if payload.Limit != 50 {
		t.Errorf("limit: got %d, want pre-seeded default 50", payload.Limit)
	}
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantField string
		wantText  string
	}{
		{"limit above max", "/decks?limit=201", "limit", "must not exceed 200"},
		{"limit below min", "/decks?limit=0", "limit", "must be at least 1"},
		{"negative offset", "/decks?offset=-3", "offset", "must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(t, tt.target)

			err := BindAndValidate(c, &pageRequest{Limit: 50})
			if err == nil {
				t.Fatal("want validation error, got nil")
			}

			var httpErr *errs.HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("error type: got %T, want *errs.HTTPError", err)
			}
			if httpErr.Status != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", httpErr.Status)
			}
			if len(httpErr.Errors) != 1 {
				t.Fatalf("field errors: got %d, want 1", len(httpErr.Errors))
			}
			fe := httpErr.Errors[0]
			if fe.Field != tt.wantField {
				t.Errorf("field: got %q, want %q", fe.Field, tt.wantField)
			}
			if fe.Error != tt.wantText {
				t.Errorf("error: got %q, want %q", fe.Error, tt.wantText)
			}
		})
	}
}

func TestBindAndValidate_BindFailure(t *testing.T) {
	c := newContext(t, "/decks?limit=abc")

	err := BindAndValidate(c, &pageRequest{Limit: 50})
	if err == nil {
		t.Fatal("want bind error for non-integer limit, got nil")
	}

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error type: got %T, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", httpErr.Status)
	}
}
