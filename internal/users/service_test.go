package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aibooooot999-bot/website-cms/internal/audit"
	"github.com/aibooooot999-bot/website-cms/internal/auth"
	"github.com/aibooooot999-bot/website-cms/internal/rbac"
	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

type mockRepository struct {
	users     map[string]*User
	hashes    map[string]string
	usernames map[string]string
	deleted   []string
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:     make(map[string]*User),
		hashes:    make(map[string]string),
		usernames: make(map[string]string),
	}
}

func (m *mockRepository) ListUsers(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockRepository) GetUser(ctx context.Context, id string) (User, error) {
	if u, ok := m.users[id]; ok {
		return *u, nil
	}
	return User{}, shared.ErrNotFound
}

func (m *mockRepository) GetPasswordHash(ctx context.Context, id string) (string, error) {
	if h, ok := m.hashes[id]; ok {
		return h, nil
	}
	return "", shared.ErrNotFound
}

func (m *mockRepository) CreateUser(ctx context.Context, id, username, passwordHash, displayName, email, roleID string) error {
	if _, taken := m.usernames[username]; taken {
		return shared.ErrDuplicate
	}
	m.users[id] = &User{ID: id, Username: username, DisplayName: displayName, Email: email, RoleID: roleID, Status: "active", CreatedAt: time.Now()}
	m.hashes[id] = passwordHash
	m.usernames[username] = id
	return nil
}

func (m *mockRepository) UpdateUser(ctx context.Context, id string, fields UpdateFields) error {
	u, ok := m.users[id]
	if !ok {
		return shared.ErrNotFound
	}
	if fields.DisplayName != nil {
		u.DisplayName = *fields.DisplayName
	}
	if fields.Status != nil {
		u.Status = *fields.Status
	}
	return nil
}

func (m *mockRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if _, ok := m.users[id]; !ok {
		return shared.ErrNotFound
	}
	m.hashes[id] = passwordHash
	return nil
}

func (m *mockRepository) DeleteUser(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type recordingStub struct {
	entries []audit.Entry
}

func (r *recordingStub) Record(ctx context.Context, entry audit.Entry) (string, error) {
	r.entries = append(r.entries, entry)
	return "log_stub", nil
}

func adminActor() *auth.Principal {
	return &auth.Principal{ID: "user_admin", Username: "admin", Permissions: rbac.NewSet("*")}
}

func TestCreateUserRecordsActivity(t *testing.T) {
	repo := newMockRepository()
	recorder := &recordingStub{}
	svc := NewService(repo, recorder)

	user, err := svc.CreateUser(context.Background(), adminActor(), "10.0.0.1", "newbie", "secret123", "New User", "n@example.com", "role_viewer")
	require.NoError(t, err)
	assert.Equal(t, "newbie", user.Username)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, "user.create", entry.Action)
	assert.Equal(t, "user_admin", entry.ActorID)
	assert.Equal(t, user.ID, entry.TargetID)
	assert.Equal(t, "10.0.0.1", entry.IPAddress)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := newMockRepository()
	recorder := &recordingStub{}
	svc := NewService(repo, recorder)

	_, err := svc.CreateUser(context.Background(), adminActor(), "", "taken", "secret123", "", "", "role_viewer")
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), adminActor(), "", "taken", "secret123", "", "", "role_viewer")
	assert.ErrorIs(t, err, shared.ErrDuplicate)
	assert.Len(t, recorder.entries, 1, "failed create must not add an audit entry")
}

func TestDeleteOwnAccountRejected(t *testing.T) {
	repo := newMockRepository()
	actor := adminActor()
	repo.users[actor.ID] = &User{ID: actor.ID, Username: "admin"}
	svc := NewService(repo, &recordingStub{})

	err := svc.DeleteUser(context.Background(), actor, "", actor.ID)
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)
	assert.Empty(t, repo.deleted)
}

func TestDeleteUserRecordsActivity(t *testing.T) {
	repo := newMockRepository()
	repo.users["user_x"] = &User{ID: "user_x", Username: "target"}
	recorder := &recordingStub{}
	svc := NewService(repo, recorder)

	require.NoError(t, svc.DeleteUser(context.Background(), adminActor(), "", "user_x"))
	assert.Equal(t, []string{"user_x"}, repo.deleted)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "user.delete", recorder.entries[0].Action)
}

func TestChangePasswordSelfRequiresCurrent(t *testing.T) {
	repo := newMockRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo.users["user_self"] = &User{ID: "user_self", Username: "self"}
	repo.hashes["user_self"] = string(hash)
	svc := NewService(repo, &recordingStub{})

	self := &auth.Principal{ID: "user_self", Permissions: rbac.NewSet("pages.view")}

	err = svc.ChangePassword(context.Background(), self, "user_self", "wrong", "new-pass")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), self, "user_self", "old-pass", "new-pass")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.hashes["user_self"]), []byte("new-pass")))
}

func TestChangePasswordOtherNeedsPermission(t *testing.T) {
	repo := newMockRepository()
	repo.users["user_x"] = &User{ID: "user_x"}
	repo.hashes["user_x"] = "hash"
	svc := NewService(repo, &recordingStub{})

	viewer := &auth.Principal{ID: "user_v", Permissions: rbac.NewSet("pages.view")}
	err := svc.ChangePassword(context.Background(), viewer, "user_x", "", "new-pass")
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)

	editor := &auth.Principal{ID: "user_e", Permissions: rbac.NewSet(rbac.PermUsersEdit)}
	assert.NoError(t, svc.ChangePassword(context.Background(), editor, "user_x", "", "new-pass"))
}

func TestUpdateUserStatus(t *testing.T) {
	repo := newMockRepository()
	repo.users["user_x"] = &User{ID: "user_x", Username: "target", Status: "active"}
	recorder := &recordingStub{}
	svc := NewService(repo, recorder)

	status := "disabled"
	updated, err := svc.UpdateUser(context.Background(), adminActor(), "", "user_x", UpdateFields{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "disabled", updated.Status)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "user.update", recorder.entries[0].Action)
}
