package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/obolabs/obo-server/internal/database"
)

const (
	listDecksSQL = `SELECT id, topic, age_range, voice, card_count, created_at
FROM decks ORDER BY id DESC LIMIT $1 OFFSET $2`

	listDecksByAgeSQL = `SELECT id, topic, age_range, voice, card_count, created_at
FROM decks WHERE age_range = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`

	countDecksSQL      = `SELECT COUNT(*) FROM decks`
	countDecksByAgeSQL = `SELECT COUNT(*) FROM decks WHERE age_range = $1`

	getDeckSQL = `SELECT id, topic, age_range, voice, card_count, created_at
FROM decks WHERE id = $1`

	listCardsSQL = `SELECT position, question, answer FROM cards
WHERE deck_id = $1 ORDER BY position`

	countCardsSQL = `SELECT COUNT(*) FROM cards`
)

// DeckRepository implements DeckStore on top of the pgx connection
// pool. Every method checks pool readiness first and runs under the
// configured per-query timeout.
type DeckRepository struct {
	db *database.Database
}

// NewDeckRepository constructs a DeckRepository over the given pool.
func NewDeckRepository(db *database.Database) *DeckRepository {
	return &DeckRepository{db: db}
}

func (r *DeckRepository) ListDecks(ctx context.Context, age string, limit, offset int) ([]Deck, error) {
	if err := r.db.Ready(); err != nil {
		return nil, err
	}
	ctx, cancel := r.db.QueryContext(ctx)
	defer cancel()

	var (
		rows pgx.Rows
		err  error
	)
	if age != "" {
		rows, err = r.db.Pool.Query(ctx, listDecksByAgeSQL, age, limit, offset)
	} else {
		rows, err = r.db.Pool.Query(ctx, listDecksSQL, limit, offset)
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying decks")
	}
	defer rows.Close()

	decks := make([]Deck, 0, limit)
	for rows.Next() {
		var d Deck
		if err := rows.Scan(&d.ID, &d.Topic, &d.AgeRange, &d.Voice, &d.CardCount, &d.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning deck row")
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating deck rows")
	}

	return decks, nil
}

func (r *DeckRepository) CountDecks(ctx context.Context, age string) (int64, error) {
	if err := r.db.Ready(); err != nil {
		return 0, err
	}
	ctx, cancel := r.db.QueryContext(ctx)
	defer cancel()

	var total int64
	var err error
	if age != "" {
		err = r.db.Pool.QueryRow(ctx, countDecksByAgeSQL, age).Scan(&total)
	} else {
		err = r.db.Pool.QueryRow(ctx, countDecksSQL).Scan(&total)
	}
	if err != nil {
		return 0, errors.Wrap(err, "counting decks")
	}

	return total, nil
}

func (r *DeckRepository) GetDeck(ctx context.Context, id int64) (*Deck, error) {
	if err := r.db.Ready(); err != nil {
		return nil, err
	}
	ctx, cancel := r.db.QueryContext(ctx)
	defer cancel()

	var d Deck
	err := r.db.Pool.QueryRow(ctx, getDeckSQL, id).
		Scan(&d.ID, &d.Topic, &d.AgeRange, &d.Voice, &d.CardCount, &d.CreatedAt)
	if err != nil {
		// pgx.ErrNoRows stays detectable through the wrap; callers use
		// sqlerr.IsNotFound to tell a missing deck from a server fault.
		return nil, errors.Wrapf(err, "fetching deck %d", id)
	}

	return &d, nil
}

func (r *DeckRepository) ListCards(ctx context.Context, deckID int64) ([]Card, error) {
	if err := r.db.Ready(); err != nil {
		return nil, err
	}
	ctx, cancel := r.db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, listCardsSQL, deckID)
	if err != nil {
		return nil, errors.Wrapf(err, "querying cards for deck %d", deckID)
	}
	defer rows.Close()

	var cards []Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.Position, &c.Question, &c.Answer); err != nil {
			return nil, errors.Wrap(err, "scanning card row")
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating card rows")
	}

	return cards, nil
}

func (r *DeckRepository) CountCards(ctx context.Context) (int64, error) {
	if err := r.db.Ready(); err != nil {
		return 0, err
	}
	ctx, cancel := r.db.QueryContext(ctx)
	defer cancel()

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countCardsSQL).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "counting cards")
	}

	return total, nil
}

func (r *DeckRepository) SelectOne(ctx context.Context) (int, error) {
	if err := r.db.Ready(); err != nil {
		return 0, err
	}
	ctx, cancel := r.db.QueryContext(ctx)
	defer cancel()

	var one int
	if err := r.db.Pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return 0, errors.Wrap(err, "probing database")
	}

	return one, nil
}
