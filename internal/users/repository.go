package users

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectUser = `
	SELECT u.id, u.username, COALESCE(u.display_name, ''), COALESCE(u.email, ''),
	       COALESCE(u.avatar, ''), COALESCE(u.role_id, ''), COALESCE(r.name, ''),
	       COALESCE(r.display_name, ''), u.status, u.last_login, u.created_at
	FROM users u
	LEFT JOIN roles r ON u.role_id = r.id`

// ListUsers returns all users newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, selectUser+` ORDER BY u.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// GetUser fetches a user by id.
func (r *Repository) GetUser(ctx context.Context, id string) (User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, selectUser+` WHERE u.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, shared.ErrNotFound
	}
	return user, err
}

// GetPasswordHash fetches only the stored password hash.
func (r *Repository) GetPasswordHash(ctx context.Context, id string) (string, error) {
	var hash string
	err := r.pool.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, id).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", shared.ErrNotFound
	}
	return hash, err
}

// CreateUser inserts a new account.
func (r *Repository) CreateUser(ctx context.Context, id, username, passwordHash, displayName, email, roleID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, display_name, email, role_id, status)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, 'active')`,
		id, username, passwordHash, displayName, email, roleID)
	if isUniqueViolation(err) {
		return shared.ErrDuplicate
	}
	return err
}

// UpdateUser applies the non-nil fields.
func (r *Repository) UpdateUser(ctx context.Context, id string, fields UpdateFields) error {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 6)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	if fields.DisplayName != nil {
		add("display_name", *fields.DisplayName)
	}
	if fields.Email != nil {
		add("email", *fields.Email)
	}
	if fields.Avatar != nil {
		add("avatar", *fields.Avatar)
	}
	if fields.RoleID != nil {
		add("role_id", *fields.RoleID)
	}
	if fields.Status != nil {
		add("status", *fields.Status)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := "UPDATE users SET " + joinSets(sets) + ", updated_at = NOW() WHERE id = $" + strconv.Itoa(len(args))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("users: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *Repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteUser removes an account.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Username, &user.DisplayName, &user.Email,
		&user.Avatar, &user.RoleID, &user.RoleName, &user.RoleDisplayName,
		&user.Status, &user.LastLogin, &user.CreatedAt)
	return user, err
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, s := range sets[1:] {
		out += ", " + s
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
