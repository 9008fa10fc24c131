package auth

import (
	"context"
	"strings"

	"github.com/aibooooot999-bot/website-cms/internal/rbac"
	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

const bearerPrefix = "Bearer "

// Resolver reconstitutes a Principal from an Authorization header. It is
// stateless: every call verifies the token and performs exactly one store
// lookup, so role and status changes apply on the next request.
type Resolver struct {
	codec *TokenCodec
	store Store
}

// NewResolver constructs a Resolver.
func NewResolver(codec *TokenCodec, store Store) *Resolver {
	return &Resolver{codec: codec, store: store}
}

// Authenticate turns a raw Authorization header into a Principal.
//
// Failures map to the error taxonomy: no/malformed header is
// shared.ErrMissingToken, a token that fails verification is
// shared.ErrInvalidToken, and a verified token whose subject is gone or
// disabled is shared.ErrUserUnavailable.
func (r *Resolver) Authenticate(ctx context.Context, header string) (*Principal, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, shared.ErrMissingToken
	}
	claims, ok := r.codec.Verify(strings.TrimPrefix(header, bearerPrefix))
	if !ok {
		return nil, shared.ErrInvalidToken
	}
	user, err := r.store.GetUserByID(ctx, claims.Subject)
	if err != nil || user.Status != StatusActive {
		return nil, shared.ErrUserUnavailable
	}
	return principalFor(user), nil
}

// principalFor derives a Principal from a store row. The stored permission
// list parses fail-closed: malformed data grants nothing.
func principalFor(user *User) *Principal {
	return &Principal{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Avatar:      user.Avatar,
		RoleID:      user.RoleID,
		RoleName:    user.RoleName,
		RoleDisplay: user.RoleDisplayName,
		Permissions: rbac.ParseSet(user.RolePermissions),
	}
}
