package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository aggregates counters across the CMS tables.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CollectStats gathers the dashboard counters in one round trip.
func (r *Repository) CollectStats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM pages),
			(SELECT COUNT(*) FROM pages WHERE status = 'published'),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM activity_logs WHERE created_at > NOW() - INTERVAL '7 days')`).
		Scan(&stats.TotalPages, &stats.PublishedPages, &stats.TotalUsers, &stats.RecentActivities)
	return stats, err
}
