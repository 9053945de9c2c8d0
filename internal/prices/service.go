package prices

import (
	"context"

	"go.uber.org/zap"

	"divistash/internal/store"
)

// Service fetches price snapshots and merges them into the cache.
type Service struct {
	client *Client
	store  *store.Store
	logger *zap.Logger
}

// NewService wires a Service. A nil logger disables logging.
func NewService(client *Client, st *store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, store: st, logger: logger}
}

// Snapshot fetches the current price overview for league and upserts it.
// Returns the fetched prices.
func (s *Service) Snapshot(ctx context.Context, league string) ([]store.CardPrice, error) {
	prices, err := s.client.Fetch(ctx, league)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpsertCardPrices(prices); err != nil {
		return nil, err
	}
	s.logger.Info("price snapshot merged",
		zap.String("league", league), zap.Int("cards", len(prices)))
	return prices, nil
}

// Cached returns the cached snapshot for league without touching the
// network.
func (s *Service) Cached(league string) ([]store.CardPrice, error) {
	return s.store.CardPrices(league)
}
