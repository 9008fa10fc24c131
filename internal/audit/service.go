package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

// RepositoryPort defines data access methods for activity logs.
type RepositoryPort interface {
	Insert(ctx context.Context, entry Entry) (string, error)
	List(ctx context.Context, limit, offset int) ([]Entry, error)
	Count(ctx context.Context) (int, error)
}

// Service records and lists activity entries. Recording is best-effort
// relative to the mutation it describes: a failed insert is logged to the
// operational logger and the caller's response proceeds, but the gap is
// never silent.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record appends exactly one entry and returns its id.
func (s *Service) Record(ctx context.Context, entry Entry) (string, error) {
	if entry.Action == "" {
		return "", fmt.Errorf("audit: action required")
	}
	id, err := s.repo.Insert(ctx, entry)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("audit record failed",
				slog.String("action", entry.Action),
				slog.String("actor", entry.ActorID),
				slog.Any("error", err))
		}
		return "", err
	}
	return id, nil
}

// List returns entries newest first together with the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Entry, int, error) {
	limit, offset = shared.ListWindow(limit, offset, 20, 100)
	entries, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
