package dashboard

import (
	"context"
)

const statsCacheKey = "dashboard:stats"

// StatsSource aggregates the dashboard counters.
type StatsSource interface {
	CollectStats(ctx context.Context) (Stats, error)
}

// Service serves dashboard stats through a short-lived cache so the admin
// landing page does not hammer the counters on every refresh.
type Service struct {
	source StatsSource
	cache  *Cache
}

// NewService builds a Service instance.
func NewService(source StatsSource, cache *Cache) *Service {
	return &Service{source: source, cache: cache}
}

// Stats returns the current counters, cached for the configured TTL.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.cache.FetchJSON(ctx, statsCacheKey, &stats, func(ctx context.Context) (any, error) {
		return s.source.CollectStats(ctx)
	})
	return stats, err
}
