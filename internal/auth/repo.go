package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

// Store defines the credential-store operations the auth core depends on.
type Store interface {
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewStore constructs a PostgreSQL credential store.
func NewStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const userJoinQuery = `
	SELECT u.id, u.username, u.password_hash, COALESCE(u.display_name, ''),
	       COALESCE(u.email, ''), COALESCE(u.avatar, ''), COALESCE(u.role_id, ''),
	       u.status, u.last_login, u.created_at,
	       COALESCE(r.name, ''), COALESCE(r.display_name, ''), COALESCE(r.permissions, '[]')
	FROM users u
	LEFT JOIN roles r ON u.role_id = r.id`

// GetUserByUsername fetches a user with its role joined.
func (s *PGStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.scanUser(s.pool.QueryRow(ctx, userJoinQuery+` WHERE u.username = $1`, username))
}

// GetUserByID fetches a user with its role joined.
func (s *PGStore) GetUserByID(ctx context.Context, id string) (*User, error) {
	return s.scanUser(s.pool.QueryRow(ctx, userJoinQuery+` WHERE u.id = $1`, id))
}

// UpdateLastLogin stamps the user's last successful login.
func (s *PGStore) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id)
	return err
}

func (s *PGStore) scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.DisplayName,
		&user.Email, &user.Avatar, &user.RoleID, &user.Status, &user.LastLogin,
		&user.CreatedAt, &user.RoleName, &user.RoleDisplayName, &user.RolePermissions)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("auth: scan user: %w", err)
	}
	return &user, nil
}

var _ Store = (*PGStore)(nil)
