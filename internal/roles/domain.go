package roles

import "time"

// Role is a named permission bundle. System roles ship with the product and
// cannot be modified or removed.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description,omitempty"`
	Permissions []string  `json:"permissions"`
	IsSystem    bool      `json:"is_system"`
	UserCount   int       `json:"user_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// UpdateFields carries a partial role update; nil means leave unchanged.
type UpdateFields struct {
	DisplayName *string
	Description *string
	Permissions []string
}
