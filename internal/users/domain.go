package users

import "time"

// User is a managed account row joined with its role.
type User struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	DisplayName     string     `json:"display_name"`
	Email           string     `json:"email"`
	Avatar          string     `json:"avatar,omitempty"`
	RoleID          string     `json:"role_id"`
	RoleName        string     `json:"role_name"`
	RoleDisplayName string     `json:"role_display_name"`
	Status          string     `json:"status"`
	LastLogin       *time.Time `json:"last_login"`
	CreatedAt       time.Time  `json:"created_at"`
}

// UpdateFields carries the optional fields of a user update. Nil means
// "leave unchanged".
type UpdateFields struct {
	DisplayName *string
	Email       *string
	Avatar      *string
	RoleID      *string
	Status      *string
}
