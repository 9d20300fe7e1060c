package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/obolabs/obo-server/internal/database"
	"github.com/obolabs/obo-server/internal/handler"
)

// --- GET /health ------------------------------------------------------------

func TestHealth_Connected(t *testing.T) {
	store := twoDecks()
	store.probeVal = 1

	rr := get(t, newAPI(t, store), "/health")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}

	var resp handler.HealthResponse
	decode(t, rr, &resp)

	if resp.Status != "ok" {
		t.Errorf("status: got %q, want ok", resp.Status)
	}
	if resp.Database != "connected" {
		t.Errorf("database: got %q, want connected", resp.Database)
	}
}

func TestHealth_PoolNotInitialized(t *testing.T) {
	store := twoDecks()
	store.probeErr = database.ErrNotInitialized

	rr := get(t, newAPI(t, store), "/health")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}

	var resp handler.HealthResponse
	decode(t, rr, &resp)

	// Uninitialized is degraded-but-non-fatal, distinct from a query
	// failure: overall status stays ok.
	if resp.Status != "ok" {
		t.Errorf("status: got %q, want ok", resp.Status)
	}
	if resp.Database != "pool_not_initialized" {
		t.Errorf("database: got %q, want pool_not_initialized", resp.Database)
	}
}

func TestHealth_Degraded(t *testing.T) {
	store := twoDecks()
	store.probeErr = errors.New("connection refused")

	rr := get(t, newAPI(t, store), "/health")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 even when degraded", rr.Code)
	}

	var resp handler.HealthResponse
	decode(t, rr, &resp)

	if resp.Status != "degraded" {
		t.Errorf("status: got %q, want degraded", resp.Status)
	}
	if !strings.HasPrefix(resp.Database, "error: ") || !strings.Contains(resp.Database, "connection refused") {
		t.Errorf("database: got %q, want error text embedded", resp.Database)
	}
}

func TestHealth_UnexpectedValue(t *testing.T) {
	store := twoDecks()
	store.probeVal = 0 // should not occur

	rr := get(t, newAPI(t, store), "/health")

	var resp handler.HealthResponse
	decode(t, rr, &resp)

	if resp.Database != "unexpected" {
		t.Errorf("database: got %q, want unexpected", resp.Database)
	}
}

// --- GET /metrics -----------------------------------------------------------

func TestMetrics_OK(t *testing.T) {
	rr := get(t, newAPI(t, twoDecks()), "/metrics")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}

	var resp handler.MetricsResponse
	decode(t, rr, &resp)

	if resp.Error != "" {
		t.Fatalf("error: got %q, want empty", resp.Error)
	}
	if len(resp.Metrics) != 2 {
		t.Fatalf("metrics: got %d entries, want 2", len(resp.Metrics))
	}
	if resp.Metrics[0].Key != "total_decks" || resp.Metrics[0].Value != 2 {
		t.Errorf("total_decks: got %s=%d, want total_decks=2", resp.Metrics[0].Key, resp.Metrics[0].Value)
	}
	if resp.Metrics[1].Key != "total_cards" || resp.Metrics[1].Value != 3 {
		t.Errorf("total_cards: got %s=%d, want total_cards=3", resp.Metrics[1].Key, resp.Metrics[1].Value)
	}
	if resp.Metrics[0].Unit != "count" || resp.Metrics[0].Label != "Total Decks" {
		t.Errorf("labels: got %q/%q", resp.Metrics[0].Label, resp.Metrics[0].Unit)
	}
}

func TestMetrics_DatabaseError(t *testing.T) {
	store := twoDecks()
	store.countErr = errors.New("no connection")

	rr := get(t, newAPI(t, store), "/metrics")

	// Failure is communicated in the body, not the status code.
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}

	var resp handler.MetricsResponse
	decode(t, rr, &resp)

	if len(resp.Metrics) != 0 {
		t.Errorf("metrics: got %d entries, want 0", len(resp.Metrics))
	}
	if !strings.Contains(resp.Error, "Database error") || !strings.Contains(resp.Error, "no connection") {
		t.Errorf("error: got %q, want database error text", resp.Error)
	}
}
