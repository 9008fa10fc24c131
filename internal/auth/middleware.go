package auth

import (
	"context"
	"net/http"

	"github.com/aibooooot999-bot/website-cms/internal/platform/httpx"
	"github.com/aibooooot999-bot/website-cms/internal/rbac"
)

type principalContextKey struct{}

// ContextWithPrincipal stores the principal in context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal from context.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}

// GrantsFromRequest adapts the context principal for rbac.Middleware.
func GrantsFromRequest(r *http.Request) (rbac.Set, bool) {
	p := PrincipalFromContext(r.Context())
	if p == nil {
		return rbac.Set{}, false
	}
	return p.Permissions, true
}

// Middleware rejects requests that do not resolve to an active principal.
// Rejected requests terminate here with 401; downstream handlers always see
// a principal in context.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		principal, err := r.Authenticate(req.Context(), req.Header.Get("Authorization"))
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, req.WithContext(ContextWithPrincipal(req.Context(), principal)))
	})
}
