package roles

import (
	"context"

	"github.com/google/uuid"

	"github.com/aibooooot999-bot/website-cms/internal/audit"
	"github.com/aibooooot999-bot/website-cms/internal/auth"
	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

// RepositoryPort defines data access methods for roles.
type RepositoryPort interface {
	ListRoles(ctx context.Context) ([]Role, error)
	GetRole(ctx context.Context, id string) (Role, error)
	CreateRole(ctx context.Context, id, name, displayName, description string, permissions []string) error
	UpdateRole(ctx context.Context, id string, fields UpdateFields) error
	DeleteRole(ctx context.Context, id string) error
	CountUsers(ctx context.Context, roleID string) (int, error)
}

// ActivityRecorder appends activity log entries.
type ActivityRecorder interface {
	Record(ctx context.Context, entry audit.Entry) (string, error)
}

// Service handles role management business logic.
type Service struct {
	repo     RepositoryPort
	recorder ActivityRecorder
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, recorder ActivityRecorder) *Service {
	return &Service{repo: repo, recorder: recorder}
}

// ListRoles returns all roles.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.repo.ListRoles(ctx)
}

// GetRole returns one role.
func (s *Service) GetRole(ctx context.Context, id string) (Role, error) {
	return s.repo.GetRole(ctx, id)
}

// CreateRole creates a custom role and records the action.
func (s *Service) CreateRole(ctx context.Context, actor *auth.Principal, ip, name, displayName, description string, permissions []string) (Role, error) {
	id := "role_" + uuid.NewString()
	if err := s.repo.CreateRole(ctx, id, name, displayName, description, permissions); err != nil {
		return Role{}, err
	}
	s.record(ctx, actor, ip, audit.Entry{
		Action: "role.create", TargetType: "role", TargetID: id,
		Details: "created role: " + name,
	})
	return s.repo.GetRole(ctx, id)
}

// UpdateRole applies a partial update. System roles are immutable.
func (s *Service) UpdateRole(ctx context.Context, actor *auth.Principal, ip, id string, fields UpdateFields) (Role, error) {
	existing, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return Role{}, err
	}
	if existing.IsSystem {
		return Role{}, shared.ErrSystemRole
	}
	if err := s.repo.UpdateRole(ctx, id, fields); err != nil {
		return Role{}, err
	}
	s.record(ctx, actor, ip, audit.Entry{
		Action: "role.update", TargetType: "role", TargetID: id,
		Details: "updated role: " + existing.Name,
	})
	return s.repo.GetRole(ctx, id)
}

// DeleteRole removes a custom role. System roles and roles still assigned to
// users are rejected.
func (s *Service) DeleteRole(ctx context.Context, actor *auth.Principal, ip, id string) error {
	existing, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsSystem {
		return shared.ErrSystemRole
	}
	count, err := s.repo.CountUsers(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrRoleInUse
	}
	if err := s.repo.DeleteRole(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, ip, audit.Entry{
		Action: "role.delete", TargetType: "role", TargetID: id,
		Details: "deleted role: " + existing.Name,
	})
	return nil
}

func (s *Service) record(ctx context.Context, actor *auth.Principal, ip string, entry audit.Entry) {
	if s.recorder == nil {
		return
	}
	entry.ActorID = actor.ID
	entry.IPAddress = ip
	_, _ = s.recorder.Record(ctx, entry)
}
