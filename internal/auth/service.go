package auth

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/aibooooot999-bot/website-cms/internal/audit"
	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

// ActivityRecorder appends activity log entries.
type ActivityRecorder interface {
	Record(ctx context.Context, entry audit.Entry) (string, error)
}

// Service wraps authentication business rules.
type Service struct {
	store    Store
	codec    *TokenCodec
	recorder ActivityRecorder
	logger   *slog.Logger
}

// NewService constructs a new Service.
func NewService(store Store, codec *TokenCodec, recorder ActivityRecorder, logger *slog.Logger) *Service {
	return &Service{store: store, codec: codec, recorder: recorder, logger: logger}
}

// Login validates credentials and issues a bearer token. Every outcome that
// would reveal whether the username exists collapses to ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password, ip string) (string, *Principal, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, shared.ErrInvalidCredentials
	}
	if user.Status != StatusActive {
		return "", nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, shared.ErrInvalidCredentials
	}

	if err := s.store.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("update last login", slog.Any("error", err))
	}

	token, err := s.codec.Issue(user.ID, user.Username, user.RoleID)
	if err != nil {
		return "", nil, err
	}

	s.record(ctx, audit.Entry{ActorID: user.ID, Action: "login", Details: "user logged in", IPAddress: ip})
	return token, principalFor(user), nil
}

// Me reloads the current principal's profile from the store.
func (s *Service) Me(ctx context.Context, principal *Principal) (*Principal, error) {
	user, err := s.store.GetUserByUsername(ctx, principal.Username)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	return principalFor(user), nil
}

// Logout records the logout; token invalidation is the client's concern.
func (s *Service) Logout(ctx context.Context, principal *Principal, ip string) {
	s.record(ctx, audit.Entry{ActorID: principal.ID, Action: "logout", Details: "user logged out", IPAddress: ip})
}

func (s *Service) record(ctx context.Context, entry audit.Entry) {
	if s.recorder == nil {
		return
	}
	// Failures are logged inside the recorder; login/logout proceed regardless.
	_, _ = s.recorder.Record(ctx, entry)
}
