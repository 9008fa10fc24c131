package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

type stubStore struct {
	byID       map[string]*User
	byUsername map[string]*User
	lastLogins []string
}

func (s *stubStore) GetUserByID(ctx context.Context, id string) (*User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	if u, ok := s.byUsername[username]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubStore) UpdateLastLogin(ctx context.Context, id string) error {
	s.lastLogins = append(s.lastLogins, id)
	return nil
}

func editorUser() *User {
	return &User{
		ID:              "user_7",
		Username:        "editor",
		Status:          StatusActive,
		RoleID:          "role_editor",
		RoleName:        "editor",
		RolePermissions: `["pages.view","pages.create","pages.edit","pages.publish"]`,
		CreatedAt:       time.Now(),
	}
}

func newTestResolver(t *testing.T, store Store) (*Resolver, *TokenCodec) {
	t.Helper()
	codec, err := NewTokenCodec("resolver-secret")
	require.NoError(t, err)
	return NewResolver(codec, store), codec
}

func TestAuthenticateHappyPath(t *testing.T) {
	user := editorUser()
	resolver, codec := newTestResolver(t, &stubStore{byID: map[string]*User{user.ID: user}})

	token, err := codec.Issue(user.ID, user.Username, user.RoleID)
	require.NoError(t, err)

	principal, err := resolver.Authenticate(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "user_7", principal.ID)
	assert.Equal(t, "editor", principal.Username)
	assert.True(t, principal.Permissions.Contains("pages.edit"))
	assert.False(t, principal.Permissions.Contains("pages.delete"))
}

func TestAuthenticateMissingHeader(t *testing.T) {
	resolver, _ := newTestResolver(t, &stubStore{})

	for _, header := range []string{"", "Token abc", "bearer lowercase", "Bearer"} {
		_, err := resolver.Authenticate(context.Background(), header)
		assert.ErrorIs(t, err, shared.ErrMissingToken, "header %q", header)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	resolver, _ := newTestResolver(t, &stubStore{})

	_, err := resolver.Authenticate(context.Background(), "Bearer garbage")
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestAuthenticateDisabledUser(t *testing.T) {
	user := editorUser()
	store := &stubStore{byID: map[string]*User{user.ID: user}}
	resolver, codec := newTestResolver(t, store)

	token, err := codec.Issue(user.ID, user.Username, user.RoleID)
	require.NoError(t, err)

	// Token verifies, but the subject has been disabled since issuance.
	user.Status = "disabled"
	_, err = resolver.Authenticate(context.Background(), "Bearer "+token)
	assert.ErrorIs(t, err, shared.ErrUserUnavailable)
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	resolver, codec := newTestResolver(t, &stubStore{})

	token, err := codec.Issue("user_gone", "ghost", "role_viewer")
	require.NoError(t, err)

	_, err = resolver.Authenticate(context.Background(), "Bearer "+token)
	assert.ErrorIs(t, err, shared.ErrUserUnavailable)
}

func TestAuthenticateMalformedPermissionsFailClosed(t *testing.T) {
	user := editorUser()
	user.RolePermissions = "{broken"
	resolver, codec := newTestResolver(t, &stubStore{byID: map[string]*User{user.ID: user}})

	token, err := codec.Issue(user.ID, user.Username, user.RoleID)
	require.NoError(t, err)

	principal, err := resolver.Authenticate(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Zero(t, principal.Permissions.Len(), "malformed stored permissions must grant nothing")
}

func TestAuthenticateDerivesPermissionsFresh(t *testing.T) {
	user := editorUser()
	resolver, codec := newTestResolver(t, &stubStore{byID: map[string]*User{user.ID: user}})

	token, err := codec.Issue(user.ID, user.Username, user.RoleID)
	require.NoError(t, err)

	first, err := resolver.Authenticate(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.True(t, first.Permissions.Contains("pages.publish"))

	// Revoking the permission on the role takes effect on the next request.
	user.RolePermissions = `["pages.view"]`
	second, err := resolver.Authenticate(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.False(t, second.Permissions.Contains("pages.publish"))
}
