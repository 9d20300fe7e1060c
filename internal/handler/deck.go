package handler

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/obolabs/obo-server/internal/errs"
	"github.com/obolabs/obo-server/internal/middleware"
	"github.com/obolabs/obo-server/internal/repository"
	"github.com/obolabs/obo-server/internal/server"
	"github.com/obolabs/obo-server/internal/service"
	"github.com/obolabs/obo-server/internal/sqlerr"
	"github.com/obolabs/obo-server/internal/validation"
)

// DefaultLimit is the page size used when the limit parameter is
// absent. MaxLimit caps it.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ListDecksRequest carries the query parameters of GET /api/v1/decks.
// Age is passed through verbatim as an exact equality filter; an empty
// string means no filter.
type ListDecksRequest struct {
	Age    string `query:"age"`
	Limit  int    `query:"limit" validate:"min=1,max=200"`
	Offset int    `query:"offset" validate:"min=0"`
}

// NewListDecksRequest returns a request seeded with the defaults, so
// absent parameters keep them and out-of-range ones fail validation.
func NewListDecksRequest() *ListDecksRequest {
	return &ListDecksRequest{Limit: DefaultLimit}
}

func (r *ListDecksRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// GetDeckRequest carries the path parameter of GET /api/v1/decks/:id.
// A non-integer id already fails at bind time with a 400.
type GetDeckRequest struct {
	ID int64 `param:"id"`
}

func (r *GetDeckRequest) Validate() error {
	return nil
}

// CardResponse is one card of a deck detail, in display order.
type CardResponse struct {
	Position int    `json:"position"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DeckSummary is the JSON shape of one deck row. CardCount is the
// stored denormalized value, not a live count of the deck's cards.
type DeckSummary struct {
	ID        int64   `json:"id"`
	Topic     string  `json:"topic"`
	AgeRange  string  `json:"age_range"`
	Voice     *string `json:"voice"`
	CardCount int     `json:"card_count"`
	CreatedAt string  `json:"created_at"`
}

// DeckDetail is a deck summary plus its cards ordered by position
// ascending. CardCount may differ from len(Cards) if the writer let
// them drift; this service does not reconcile the two.
type DeckDetail struct {
	DeckSummary
	Cards []CardResponse `json:"cards"`
}

// DecksResponse is one page of deck summaries plus the total matching
// count ignoring pagination.
type DecksResponse struct {
	Decks []DeckSummary `json:"decks"`
	Total int64         `json:"total"`
}

func newDeckSummary(d repository.Deck) DeckSummary {
	return DeckSummary{
		ID:        d.ID,
		Topic:     d.Topic,
		AgeRange:  d.AgeRange,
		Voice:     d.Voice,
		CardCount: d.CardCount,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}

// DeckHandler serves the deck read endpoints.
type DeckHandler struct {
	Handler
	decks *service.DeckService
}

// NewDeckHandler constructs a DeckHandler.
func NewDeckHandler(s *server.Server, decks *service.DeckService) *DeckHandler {
	return &DeckHandler{
		Handler: NewHandler(s),
		decks:   decks,
	}
}

// List returns one page of deck summaries, optionally filtered by age
// range, newest deck id first.
func (h *DeckHandler) List(c echo.Context, req *ListDecksRequest) (*DecksResponse, error) {
	decks, total, err := h.decks.ListDecks(c.Request().Context(), req.Age, req.Limit, req.Offset)
	if err != nil {
		middleware.GetLogger(c).Error().
			Err(err).
			Str("age", req.Age).
			Int("limit", req.Limit).
			Int("offset", req.Offset).
			Msg("listing decks failed")
		return nil, err
	}

	summaries := make([]DeckSummary, 0, len(decks))
	for _, d := range decks {
		summaries = append(summaries, newDeckSummary(d))
	}

	return &DecksResponse{Decks: summaries, Total: total}, nil
}

// Get returns one deck's full detail including its cards. A missing
// deck is a 404 naming the identifier, never a server fault.
func (h *DeckHandler) Get(c echo.Context, req *GetDeckRequest) (*DeckDetail, error) {
	deck, cards, err := h.decks.GetDeck(c.Request().Context(), req.ID)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("Deck %d not found", req.ID))
		}
		middleware.GetLogger(c).Error().
			Err(err).
			Int64("deck_id", req.ID).
			Msg("fetching deck failed")
		return nil, err
	}

	detail := &DeckDetail{
		DeckSummary: newDeckSummary(*deck),
		Cards:       make([]CardResponse, 0, len(cards)),
	}
	for _, card := range cards {
		detail.Cards = append(detail.Cards, CardResponse{
			Position: card.Position,
			Question: card.Question,
			Answer:   card.Answer,
		})
	}

	return detail, nil
}
