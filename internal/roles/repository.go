package roles

import (
	"context"
	"encoding/json"
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

const selectRole = `
	SELECT r.id, r.name, COALESCE(r.display_name, ''), COALESCE(r.description, ''),
	       COALESCE(r.permissions, '[]'), r.is_system,
	       (SELECT COUNT(*) FROM users u WHERE u.role_id = r.id), r.created_at
	FROM roles r`

// ListRoles returns all roles, system roles first.
func (r *Repository) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, selectRole+` ORDER BY r.is_system DESC, r.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetRole fetches a role by id.
func (r *Repository) GetRole(ctx context.Context, id string) (Role, error) {
	role, err := scanRole(r.pool.QueryRow(ctx, selectRole+` WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Role{}, shared.ErrNotFound
	}
	return role, err
}

// CreateRole inserts a custom (non-system) role.
func (r *Repository) CreateRole(ctx context.Context, id, name, displayName, description string, permissions []string) error {
	serialized, err := marshalPermissions(permissions)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO roles (id, name, display_name, description, permissions, is_system)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, FALSE)`,
		id, name, displayName, description, serialized)
	if isUniqueViolation(err) {
		return shared.ErrDuplicate
	}
	return err
}

// UpdateRole applies the provided fields.
func (r *Repository) UpdateRole(ctx context.Context, id string, fields UpdateFields) error {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 3)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	if fields.DisplayName != nil {
		add("display_name", *fields.DisplayName)
	}
	if fields.Description != nil {
		add("description", *fields.Description)
	}
	if fields.Permissions != nil {
		serialized, err := marshalPermissions(fields.Permissions)
		if err != nil {
			return err
		}
		add("permissions", serialized)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := "UPDATE roles SET " + joinSets(sets) + ", updated_at = NOW() WHERE id = $" + strconv.Itoa(len(args))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("roles: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteRole removes a role.
func (r *Repository) DeleteRole(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountUsers returns the number of accounts assigned to a role.
func (r *Repository) CountUsers(ctx context.Context, roleID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role_id = $1`, roleID).Scan(&count)
	return count, err
}

func scanRole(row pgx.Row) (Role, error) {
	var role Role
	var serialized string
	err := row.Scan(&role.ID, &role.Name, &role.DisplayName, &role.Description,
		&serialized, &role.IsSystem, &role.UserCount, &role.CreatedAt)
	if err != nil {
		return Role{}, err
	}
	if err := json.Unmarshal([]byte(serialized), &role.Permissions); err != nil {
		role.Permissions = []string{}
	}
	if role.Permissions == nil {
		role.Permissions = []string{}
	}
	return role, nil
}

func marshalPermissions(permissions []string) (string, error) {
	if permissions == nil {
		permissions = []string{}
	}
	data, err := json.Marshal(permissions)
	if err != nil {
		return "", fmt.Errorf("roles: encode permissions: %w", err)
	}
	return string(data), nil
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
