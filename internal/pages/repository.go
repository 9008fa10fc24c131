package pages

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

const selectPage = `
	SELECT p.id, p.title, p.slug, COALESCE(p.content, ''), COALESCE(p.excerpt, ''),
	       COALESCE(p.featured_image, ''), p.status, p.template, p.sort_order,
	       COALESCE(p.meta_title, ''), COALESCE(p.meta_description, ''),
	       COALESCE(p.created_by, ''), COALESCE(u.display_name, u.username, ''),
	       COALESCE(p.updated_by, ''), p.created_at, p.updated_at
	FROM pages p
	LEFT JOIN users u ON p.created_by = u.id`

// ListPages returns all pages ordered for navigation display.
func (r *Repository) ListPages(ctx context.Context) ([]Page, error) {
	rows, err := r.pool.Query(ctx, selectPage+` ORDER BY p.sort_order ASC, p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var pages []Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

// GetPage fetches a page by id.
func (r *Repository) GetPage(ctx context.Context, id string) (Page, error) {
	page, err := scanPage(r.pool.QueryRow(ctx, selectPage+` WHERE p.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Page{}, shared.ErrNotFound
	}
	return page, err
}

// SlugTaken reports whether another page already uses the slug. excludeID may
// be empty when checking for creation.
func (r *Repository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pages WHERE slug = $1 AND id <> $2)`, slug, excludeID).Scan(&exists)
	return exists, err
}

// CreatePage inserts a page.
func (r *Repository) CreatePage(ctx context.Context, id string, page NewPage, createdBy string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pages (id, title, slug, content, excerpt, status, template, meta_title, meta_description, created_by)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10)`,
		id, page.Title, page.Slug, page.Content, page.Excerpt,
		page.Status, page.Template, page.MetaTitle, page.MetaDescription, createdBy)
	if isUniqueViolation(err) {
		return shared.ErrDuplicate
	}
	return err
}

// UpdatePage applies the non-nil fields and stamps updated_by.
func (r *Repository) UpdatePage(ctx context.Context, id string, fields UpdateFields, updatedBy string) error {
	sets := make([]string, 0, 10)
	args := make([]any, 0, 12)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	if fields.Title != nil {
		add("title", *fields.Title)
	}
	if fields.Slug != nil {
		add("slug", *fields.Slug)
	}
	if fields.Content != nil {
		add("content", *fields.Content)
	}
	if fields.Excerpt != nil {
		add("excerpt", *fields.Excerpt)
	}
	if fields.FeaturedImage != nil {
		add("featured_image", *fields.FeaturedImage)
	}
	if fields.Status != nil {
		add("status", *fields.Status)
	}
	if fields.Template != nil {
		add("template", *fields.Template)
	}
	if fields.SortOrder != nil {
		add("sort_order", *fields.SortOrder)
	}
	if fields.MetaTitle != nil {
		add("meta_title", *fields.MetaTitle)
	}
	if fields.MetaDescription != nil {
		add("meta_description", *fields.MetaDescription)
	}
	if len(sets) == 0 {
		return nil
	}
	add("updated_by", updatedBy)
	args = append(args, id)
	query := "UPDATE pages SET " + joinSets(sets) + ", updated_at = NOW() WHERE id = $" + strconv.Itoa(len(args))
	tag, err := r.pool.Exec(ctx, query, args...)
	if isUniqueViolation(err) {
		return shared.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("pages: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeletePage removes a page.
func (r *Repository) DeletePage(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountPages returns total and published page counts for dashboard stats.
func (r *Repository) CountPages(ctx context.Context) (total, published int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'published') FROM pages`).Scan(&total, &published)
	return total, published, err
}

func scanPage(row pgx.Row) (Page, error) {
	var page Page
	err := row.Scan(&page.ID, &page.Title, &page.Slug, &page.Content, &page.Excerpt,
		&page.FeaturedImage, &page.Status, &page.Template, &page.SortOrder,
		&page.MetaTitle, &page.MetaDescription, &page.CreatedBy, &page.CreatorName,
		&page.UpdatedBy, &page.CreatedAt, &page.UpdatedAt)
	return page, err
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
