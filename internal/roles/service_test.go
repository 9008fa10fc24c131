package roles

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibooooot999-bot/website-cms/internal/audit"
	"github.com/aibooooot999-bot/website-cms/internal/auth"
	"github.com/aibooooot999-bot/website-cms/internal/rbac"
	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

type mockRepository struct {
	roles      map[string]*Role
	userCounts map[string]int
	deleted    []string
}

func newMockRepository() *mockRepository {
	return &mockRepository{roles: make(map[string]*Role), userCounts: make(map[string]int)}
}

func (m *mockRepository) ListRoles(ctx context.Context) ([]Role, error) {
	out := make([]Role, 0, len(m.roles))
	for _, role := range m.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (m *mockRepository) GetRole(ctx context.Context, id string) (Role, error) {
	if role, ok := m.roles[id]; ok {
		return *role, nil
	}
	return Role{}, shared.ErrNotFound
}

func (m *mockRepository) CreateRole(ctx context.Context, id, name, displayName, description string, permissions []string) error {
	for _, existing := range m.roles {
		if existing.Name == name {
			return shared.ErrDuplicate
		}
	}
	m.roles[id] = &Role{ID: id, Name: name, DisplayName: displayName, Description: description,
		Permissions: permissions, CreatedAt: time.Now()}
	return nil
}

func (m *mockRepository) UpdateRole(ctx context.Context, id string, fields UpdateFields) error {
	role, ok := m.roles[id]
	if !ok {
		return shared.ErrNotFound
	}
	if fields.DisplayName != nil {
		role.DisplayName = *fields.DisplayName
	}
	if fields.Permissions != nil {
		role.Permissions = fields.Permissions
	}
	return nil
}

func (m *mockRepository) DeleteRole(ctx context.Context, id string) error {
	if _, ok := m.roles[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.roles, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepository) CountUsers(ctx context.Context, roleID string) (int, error) {
	return m.userCounts[roleID], nil
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

func TestCreateRoleRecordsActivity(t *testing.T) {
	repo := newMockRepository()
	recorder := &recordingStub{}
	svc := NewService(repo, recorder)

	role, err := svc.CreateRole(context.Background(), adminActor(), "10.0.0.1",
		"moderator", "Moderator", "", []string{"pages.view", "pages.edit"})
	require.NoError(t, err)
	assert.Equal(t, "moderator", role.Name)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, "role.create", entry.Action)
	assert.Equal(t, role.ID, entry.TargetID)
	assert.Equal(t, "user_admin", entry.ActorID)
}

func TestUpdateSystemRoleRejected(t *testing.T) {
	repo := newMockRepository()
	repo.roles["role_super_admin"] = &Role{ID: "role_super_admin", Name: "super_admin", IsSystem: true}
	recorder := &recordingStub{}
	svc := NewService(repo, recorder)

	name := "Renamed"
	_, err := svc.UpdateRole(context.Background(), adminActor(), "", "role_super_admin", UpdateFields{DisplayName: &name})
	assert.ErrorIs(t, err, shared.ErrSystemRole)
	assert.Empty(t, recorder.entries)
}

func TestDeleteSystemRoleRejected(t *testing.T) {
	repo := newMockRepository()
	repo.roles["role_viewer"] = &Role{ID: "role_viewer", Name: "viewer", IsSystem: true}
	svc := NewService(repo, &recordingStub{})

	err := svc.DeleteRole(context.Background(), adminActor(), "", "role_viewer")
	assert.ErrorIs(t, err, shared.ErrSystemRole)
	assert.Empty(t, repo.deleted)
}

func TestDeleteRoleInUseRejected(t *testing.T) {
	repo := newMockRepository()
	repo.roles["role_x"] = &Role{ID: "role_x", Name: "custom"}
	repo.userCounts["role_x"] = 3
	svc := NewService(repo, &recordingStub{})

	err := svc.DeleteRole(context.Background(), adminActor(), "", "role_x")
	assert.ErrorIs(t, err, shared.ErrRoleInUse)
	assert.Empty(t, repo.deleted)
}

func TestDeleteRoleRecordsActivity(t *testing.T) {
	repo := newMockRepository()
	repo.roles["role_x"] = &Role{ID: "role_x", Name: "custom"}
	recorder := &recordingStub{}
	svc := NewService(repo, recorder)

	require.NoError(t, svc.DeleteRole(context.Background(), adminActor(), "", "role_x"))
	assert.Equal(t, []string{"role_x"}, repo.deleted)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "role.delete", recorder.entries[0].Action)
}

func TestUpdateRolePermissions(t *testing.T) {
	repo := newMockRepository()
	repo.roles["role_x"] = &Role{ID: "role_x", Name: "custom", Permissions: []string{"pages.view"}}
	recorder := &recordingStub{}
	svc := NewService(repo, recorder)

	updated, err := svc.UpdateRole(context.Background(), adminActor(), "", "role_x",
		UpdateFields{Permissions: []string{"pages.view", "pages.edit"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"pages.view", "pages.edit"}, updated.Permissions)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "role.update", recorder.entries[0].Action)
}
