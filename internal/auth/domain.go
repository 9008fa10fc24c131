package auth

import (
	"time"

	"github.com/aibooooot999-bot/website-cms/internal/rbac"
)

// Principal is the fully resolved request identity. It is rebuilt from the
// credential store on every authenticated request so permission changes take
// effect on the next call; it is never persisted or cached across requests.
type Principal struct {
	ID          string
	Username    string
	DisplayName string
	Email       string
	Avatar      string
	RoleID      string
	RoleName    string
	RoleDisplay string
	Permissions rbac.Set
}

// User is a credential-store row joined with its role.
type User struct {
	ID              string
	Username        string
	PasswordHash    string
	DisplayName     string
	Email           string
	Avatar          string
	RoleID          string
	Status          string
	LastLogin       *time.Time
	CreatedAt       time.Time
	RoleName        string
	RoleDisplayName string
	RolePermissions string
}

// StatusActive is the only status allowed to authenticate.
const StatusActive = "active"
