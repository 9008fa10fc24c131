package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aibooooot999-bot/website-cms/internal/audit"
	"github.com/aibooooot999-bot/website-cms/internal/auth"
	"github.com/aibooooot999-bot/website-cms/internal/rbac"
	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id string) (User, error)
	GetPasswordHash(ctx context.Context, id string) (string, error)
	CreateUser(ctx context.Context, id, username, passwordHash, displayName, email, roleID string) error
	UpdateUser(ctx context.Context, id string, fields UpdateFields) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	DeleteUser(ctx context.Context, id string) error
}

// ActivityRecorder appends activity log entries.
type ActivityRecorder interface {
	Record(ctx context.Context, entry audit.Entry) (string, error)
}

// Service handles user management business logic.
type Service struct {
	repo     RepositoryPort
	recorder ActivityRecorder
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, recorder ActivityRecorder) *Service {
	return &Service{repo: repo, recorder: recorder}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// GetUser returns one user.
func (s *Service) GetUser(ctx context.Context, id string) (User, error) {
	return s.repo.GetUser(ctx, id)
}

// CreateUser creates an account and records the action.
func (s *Service) CreateUser(ctx context.Context, actor *auth.Principal, ip, username, password, displayName, email, roleID string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("users: hash password: %w", err)
	}
	id := "user_" + uuid.NewString()
	if err := s.repo.CreateUser(ctx, id, username, string(hash), displayName, email, roleID); err != nil {
		return User{}, err
	}
	s.record(ctx, actor, ip, audit.Entry{
		Action: "user.create", TargetType: "user", TargetID: id,
		Details: "created user: " + username,
	})
	return s.repo.GetUser(ctx, id)
}

// UpdateUser applies a partial update and records the action.
func (s *Service) UpdateUser(ctx context.Context, actor *auth.Principal, ip, id string, fields UpdateFields) (User, error) {
	existing, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}
	if err := s.repo.UpdateUser(ctx, id, fields); err != nil {
		return User{}, err
	}
	s.record(ctx, actor, ip, audit.Entry{
		Action: "user.update", TargetType: "user", TargetID: id,
		Details: "updated user: " + existing.Username,
	})
	return s.repo.GetUser(ctx, id)
}

// ChangePassword replaces a user's password. Users change their own password
// by proving the current one; changing someone else's requires users.edit
// (or the global wildcard).
func (s *Service) ChangePassword(ctx context.Context, actor *auth.Principal, id, currentPassword, newPassword string) error {
	if _, err := s.repo.GetUser(ctx, id); err != nil {
		return err
	}
	isSelf := actor.ID == id
	if !isSelf && !rbac.Allows(actor.Permissions, rbac.PermUsersEdit) {
		return shared.ErrPermissionDenied
	}
	if isSelf && currentPassword != "" {
		hash, err := s.repo.GetPasswordHash(ctx, id)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)) != nil {
			return shared.ErrInvalidCredentials
		}
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("users: hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(newHash))
}

// DeleteUser removes an account. Deleting your own account is rejected.
func (s *Service) DeleteUser(ctx context.Context, actor *auth.Principal, ip, id string) error {
	if actor.ID == id {
		return fmt.Errorf("%w: cannot delete own account", shared.ErrPermissionDenied)
	}
	existing, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, ip, audit.Entry{
		Action: "user.delete", TargetType: "user", TargetID: id,
		Details: "deleted user: " + existing.Username,
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
