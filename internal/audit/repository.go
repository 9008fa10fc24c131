package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for activity logs.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert appends one activity log row with a server-assigned timestamp.
func (r *Repository) Insert(ctx context.Context, entry Entry) (string, error) {
	id := entry.ID
	if id == "" {
		id = "log_" + uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO activity_logs (id, user_id, action, target_type, target_id, details, ip_address, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NOW())`,
		id, entry.ActorID, entry.Action, entry.TargetType, entry.TargetID, entry.Details, entry.IPAddress)
	if err != nil {
		return "", fmt.Errorf("audit: insert: %w", err)
	}
	return id, nil
}

// List returns activity entries newest first.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.user_id, COALESCE(u.display_name, ''), a.action,
		       COALESCE(a.target_type, ''), COALESCE(a.target_id, ''),
		       COALESCE(a.details, ''), COALESCE(a.ip_address, ''), a.created_at
		FROM activity_logs a
		LEFT JOIN users u ON a.user_id = u.id
		ORDER BY a.created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActorName, &e.Action,
			&e.TargetType, &e.TargetID, &e.Details, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of activity entries.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs`).Scan(&total)
	return total, err
}

// DeleteOlderThan removes entries created before the cutoff. Used only by the
// retention job; the API surface stays append-only.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM activity_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
