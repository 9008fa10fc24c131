package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique constraint conflict.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingToken indicates the Authorization header is absent or malformed.
	ErrMissingToken = errors.New("missing token")
	// ErrInvalidToken indicates the bearer token failed verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserUnavailable indicates the token subject is absent or disabled.
	// Surfaced to clients exactly like ErrInvalidToken.
	ErrUserUnavailable = errors.New("user unavailable")
	// ErrPermissionDenied indicates an authenticated but unauthorized request.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrSystemRole indicates an attempt to modify an immutable system role.
	ErrSystemRole = errors.New("system role is immutable")
	// ErrRoleInUse indicates a role still referenced by users.
	ErrRoleInUse = errors.New("role is referenced by users")
)
