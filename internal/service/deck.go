package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/obolabs/obo-server/internal/repository"
)

// Metric is one labeled numeric entry of the metrics report.
type Metric struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int64  `json:"value"`
	Unit  string `json:"unit"`
}

// DeckService sits between the handlers and the repository. Besides
// the plain read operations it owns the optional read-through Redis
// cache for deck details; a nil cache client disables caching.
type DeckService struct {
	store    repository.DeckStore
	cache    *redis.Client
	cacheTTL time.Duration
	log      *zerolog.Logger
}

// NewDeckService constructs a DeckService. cache may be nil.
func NewDeckService(store repository.DeckStore, cache *redis.Client, cacheTTL time.Duration, log *zerolog.Logger) *DeckService {
	return &DeckService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// ListDecks returns one page of decks plus the total matching count.
// The page query and the count query run as two independent round
// trips with no shared snapshot; under concurrent writes they can
// disagree, which the API contract accepts. Either failing fails the
// whole operation.
func (s *DeckService) ListDecks(ctx context.Context, age string, limit, offset int) ([]repository.Deck, int64, error) {
	decks, err := s.store.ListDecks(ctx, age, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.store.CountDecks(ctx, age)
	if err != nil {
		return nil, 0, err
	}

	return decks, total, nil
}

// cachedDeck is the JSON shape stored in Redis for a deck detail.
type cachedDeck struct {
	Deck  repository.Deck   `json:"deck"`
	Cards []repository.Card `json:"cards"`
}

// GetDeck returns a deck and its cards in position order. When a cache
// client is configured the assembled detail is served from Redis under
// a TTL; cache failures are logged and never fail the request.
func (s *DeckService) GetDeck(ctx context.Context, id int64) (*repository.Deck, []repository.Card, error) {
	key := deckCacheKey(id)

	if s.cache != nil {
		if payload, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached cachedDeck
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached.Deck, cached.Cards, nil
			}
			s.log.Debug().Int64("deck_id", id).Msg("discarding undecodable cache entry")
		} else if !errors.Is(err, redis.Nil) {
			s.log.Debug().Err(err).Int64("deck_id", id).Msg("deck cache read failed")
		}
	}

	deck, err := s.store.GetDeck(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	cards, err := s.store.ListCards(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if s.cache != nil {
		payload, err := json.Marshal(cachedDeck{Deck: *deck, Cards: cards})
		if err == nil {
			if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
				s.log.Debug().Err(err).Int64("deck_id", id).Msg("deck cache write failed")
			}
		}
	}

	return deck, cards, nil
}

// Metrics returns the total deck and card counts as labeled entries.
func (s *DeckService) Metrics(ctx context.Context) ([]Metric, error) {
	totalDecks, err := s.store.CountDecks(ctx, "")
	if err != nil {
		return nil, err
	}

	totalCards, err := s.store.CountCards(ctx)
	if err != nil {
		return nil, err
	}

	return []Metric{
		{Key: "total_decks", Label: "Total Decks", Value: totalDecks, Unit: "count"},
		{Key: "total_cards", Label: "Total Cards", Value: totalCards, Unit: "count"},
	}, nil
}

// Probe runs the trivial connectivity check and returns the scanned
// constant so the health handler can detect an unexpected value.
func (s *DeckService) Probe(ctx context.Context) (int, error) {
	return s.store.SelectOne(ctx)
}

func deckCacheKey(id int64) string {
	return fmt.Sprintf("obo:deck:%d", id)
}
