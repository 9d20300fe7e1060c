// Package repository handles all interactions with the database.
//
// It contains the raw SQL queries and the row-to-struct mapping,
// abstracting SQL away from the service layer. The service is strictly
// read-only: nothing here inserts, updates, or deletes.
package repository

import (
	"context"
	"time"
)

// Deck is one row of the decks table. CardCount is the denormalized
// count maintained by the external writer, not a live count of card
// rows; this service surfaces it as stored.
type Deck struct {
	ID        int64     `json:"id"`
	Topic     string    `json:"topic"`
	AgeRange  string    `json:"age_range"`
	Voice     *string   `json:"voice"`
	CardCount int       `json:"card_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Card is one row of the cards table. Position defines display order
// within a deck and is unique per deck.
type Card struct {
	Position int    `json:"position"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DeckStore is the read surface the service layer depends on. Keeping
// it an interface lets handler and service tests run against a fake
// instead of a live database.
type DeckStore interface {
	// ListDecks returns one page of decks ordered by id descending.
	// age, when non-empty, is an exact equality filter on age_range.
	ListDecks(ctx context.Context, age string, limit, offset int) ([]Deck, error)

	// CountDecks returns the total number of decks matching the same
	// filter ListDecks uses, ignoring pagination.
	CountDecks(ctx context.Context, age string) (int64, error)

	// GetDeck returns the deck with the given id, or an error
	// satisfying sqlerr.IsNotFound when no such row exists.
	GetDeck(ctx context.Context, id int64) (*Deck, error)

	// ListCards returns the deck's cards ordered by position ascending.
	ListCards(ctx context.Context, deckID int64) ([]Card, error)

	// CountCards returns the total number of card rows.
	CountCards(ctx context.Context) (int64, error)

	// SelectOne runs the trivial `SELECT 1` connectivity probe and
	// returns the scanned value.
	SelectOne(ctx context.Context) (int, error)
}
