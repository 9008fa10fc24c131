package httpx

import (
	"errors"
	"net/http"

	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

// RespondError maps domain errors to HTTP failure envelopes. Authentication
// failures collapse to a single 401 message so clients cannot distinguish an
// expired token from a disabled account.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrMissingToken):
		Fail(w, http.StatusUnauthorized, "authentication token not provided")
	case errors.Is(err, shared.ErrInvalidToken), errors.Is(err, shared.ErrUserUnavailable):
		Fail(w, http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, shared.ErrInvalidCredentials):
		Fail(w, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, shared.ErrPermissionDenied):
		Fail(w, http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, shared.ErrNotFound):
		Fail(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, shared.ErrDuplicate):
		Fail(w, http.StatusConflict, "duplicate entry")
	case errors.Is(err, shared.ErrSystemRole):
		Fail(w, http.StatusBadRequest, "system roles cannot be modified")
	case errors.Is(err, shared.ErrRoleInUse):
		Fail(w, http.StatusConflict, "role is still assigned to users")
	default:
		Fail(w, http.StatusInternalServerError, "internal error")
	}
}
