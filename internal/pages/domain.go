package pages

import "time"

// Page statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Page is a CMS content page.
type Page struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         string    `json:"content,omitempty"`
	Excerpt         string    `json:"excerpt,omitempty"`
	FeaturedImage   string    `json:"featured_image,omitempty"`
	Status          string    `json:"status"`
	Template        string    `json:"template"`
	SortOrder       int       `json:"sort_order"`
	MetaTitle       string    `json:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	CreatedBy       string    `json:"created_by,omitempty"`
	CreatorName     string    `json:"creator_name,omitempty"`
	UpdatedBy       string    `json:"updated_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewPage carries the fields accepted on creation.
type NewPage struct {
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	Status          string
	Template        string
	MetaTitle       string
	MetaDescription string
}

// UpdateFields carries a partial page update; nil means leave unchanged.
type UpdateFields struct {
	Title           *string
	Slug            *string
	Content         *string
	Excerpt         *string
	FeaturedImage   *string
	Status          *string
	Template        *string
	SortOrder       *int
	MetaTitle       *string
	MetaDescription *string
}
