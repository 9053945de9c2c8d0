package league

import (
	"context"
	"time"

	"go.uber.org/zap"

	"divistash/internal/store"
)

// Service answers league queries from the cache, refreshing it over the
// network when it has gone stale.
type Service struct {
	client *Client
	store  *store.Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewService wires a Service. A nil logger disables logging.
func NewService(client *Client, st *store.Store, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, store: st, ttl: ttl, logger: logger}
}

// Leagues returns the cached league list when it is fresher than the TTL.
// Otherwise it fetches, upserts the result, and returns it. When the fetch
// fails but a stale cache exists, the stale rows are returned instead of
// the error.
func (s *Service) Leagues(ctx context.Context) ([]store.League, error) {
	cutoff := time.Now().Add(-s.ttl)
	fresh, err := s.store.LeaguesFetchedAfter(cutoff)
	if err != nil {
		return nil, err
	}
	if len(fresh) > 0 {
		s.logger.Debug("league cache hit", zap.Int("count", len(fresh)))
		return fresh, nil
	}

	fetched, err := s.client.Fetch(ctx)
	if err != nil {
		stale, storeErr := s.store.Leagues()
		if storeErr == nil && len(stale) > 0 {
			s.logger.Warn("league fetch failed, serving stale cache",
				zap.Error(err), zap.Int("count", len(stale)))
			return stale, nil
		}
		return nil, err
	}

	if err := s.store.UpsertLeagues(fetched); err != nil {
		return nil, err
	}
	s.logger.Info("league cache refreshed", zap.Int("count", len(fetched)))
	return fetched, nil
}
