package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/obolabs/obo-server/internal/config"
	"github.com/obolabs/obo-server/internal/handler"
	"github.com/obolabs/obo-server/internal/middleware"
	"github.com/obolabs/obo-server/internal/repository"
	"github.com/obolabs/obo-server/internal/router"
	"github.com/obolabs/obo-server/internal/server"
	"github.com/obolabs/obo-server/internal/service"
)

// --- test helpers -----------------------------------------------------------

// fakeStore implements repository.DeckStore in memory. Error fields,
// when set, are returned by the corresponding method.
type fakeStore struct {
	decks []repository.Deck
	cards map[int64][]repository.Card

	listErr      error
	countErr     error
	getErr       error
	cardsErr     error
	cardCountErr error
	probeErr     error
	probeVal     int

	lastAge    string
	lastLimit  int
	lastOffset int
	listCalls  int
}

func (f *fakeStore) ListDecks(_ context.Context, age string, limit, offset int) ([]repository.Deck, error) {
	f.listCalls++
	f.lastAge, f.lastLimit, f.lastOffset = age, limit, offset
	if f.listErr != nil {
		return nil, f.listErr
	}

	matched := f.filtered(age)
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeStore) CountDecks(_ context.Context, age string) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.filtered(age))), nil
}

func (f *fakeStore) GetDeck(_ context.Context, id int64) (*repository.Deck, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, d := range f.decks {
		if d.ID == id {
			deck := d
			return &deck, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) ListCards(_ context.Context, deckID int64) ([]repository.Card, error) {
	if f.cardsErr != nil {
		return nil, f.cardsErr
	}
	return f.cards[deckID], nil
}

func (f *fakeStore) CountCards(_ context.Context) (int64, error) {
	if f.cardCountErr != nil {
		return 0, f.cardCountErr
	}
	var total int64
	for _, cards := range f.cards {
		total += int64(len(cards))
	}
	return total, nil
}

func (f *fakeStore) SelectOne(_ context.Context) (int, error) {
	if f.probeErr != nil {
		return 0, f.probeErr
	}
	return f.probeVal, nil
}

func (f *fakeStore) filtered(age string) []repository.Deck {
	var matched []repository.Deck
	for _, d := range f.decks {
		if age == "" || d.AgeRange == age {
			matched = append(matched, d)
		}
	}
	return matched
}

// newAPI builds the full router over the fake store, with caching off.
func newAPI(t *testing.T, store repository.DeckStore) *echo.Echo {
	t.Helper()

	log := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "local"},
		Server: config.ServerConfig{
			Port:               "0",
			CORSAllowedOrigins: []string{"*"},
		},
	}
	s := &server.Server{Config: cfg, Logger: &log}

	services := &service.Services{
		Decks: service.NewDeckService(store, nil, 0, &log),
	}

	return router.New(s, middleware.NewMiddlewares(s), handler.NewHandlers(s, services))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON: %v (body: %s)", err, rr.Body.String())
	}
}

func strPtr(s string) *string { return &s }
