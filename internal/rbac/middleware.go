package rbac

import (
	"log/slog"
	"net/http"

	"github.com/aibooooot999-bot/website-cms/internal/platform/httpx"
	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

// Middleware wires permission checks for HTTP handlers. Source extracts the
// authenticated principal's granted set from the request; it is injected to
// keep this package free of the auth dependency.
type Middleware struct {
	Logger *slog.Logger
	Source func(r *http.Request) (Set, bool)
}

// RequireAny ensures the current principal holds at least one of the required
// permissions. Requests without a resolved principal are rejected with 401,
// authenticated requests without a matching grant with 403.
func (m Middleware) RequireAny(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			granted, ok := m.Source(r)
			if !ok {
				httpx.RespondError(w, shared.ErrMissingToken)
				return
			}
			if !Allows(granted, perms...) {
				if m.Logger != nil {
					m.Logger.Warn("permission denied",
						slog.String("path", r.URL.Path),
						slog.Any("required", perms))
				}
				httpx.RespondError(w, shared.ErrPermissionDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
