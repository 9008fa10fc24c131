package pages

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aibooooot999-bot/website-cms/internal/audit"
	"github.com/aibooooot999-bot/website-cms/internal/auth"
	"github.com/aibooooot999-bot/website-cms/internal/rbac"
	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

// RepositoryPort defines data access methods for pages.
type RepositoryPort interface {
	ListPages(ctx context.Context) ([]Page, error)
	GetPage(ctx context.Context, id string) (Page, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	CreatePage(ctx context.Context, id string, page NewPage, createdBy string) error
	UpdatePage(ctx context.Context, id string, fields UpdateFields, updatedBy string) error
	DeletePage(ctx context.Context, id string) error
}

// ActivityRecorder appends activity log entries.
type ActivityRecorder interface {
	Record(ctx context.Context, entry audit.Entry) (string, error)
}

// Service handles page management business logic.
type Service struct {
	repo     RepositoryPort
	recorder ActivityRecorder
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, recorder ActivityRecorder) *Service {
	return &Service{repo: repo, recorder: recorder}
}

// ListPages returns all pages.
func (s *Service) ListPages(ctx context.Context) ([]Page, error) {
	return s.repo.ListPages(ctx)
}

// GetPage returns one page.
func (s *Service) GetPage(ctx context.Context, id string) (Page, error) {
	return s.repo.GetPage(ctx, id)
}

// CreatePage creates a page and records the action. An empty slug is derived
// from the title.
func (s *Service) CreatePage(ctx context.Context, actor *auth.Principal, ip string, page NewPage) (Page, error) {
	if page.Slug == "" {
		page.Slug = Slugify(page.Title)
	}
	taken, err := s.repo.SlugTaken(ctx, page.Slug, "")
	if err != nil {
		return Page{}, err
	}
	if taken {
		return Page{}, fmt.Errorf("%w: slug already in use", shared.ErrDuplicate)
	}
	if page.Status == "" {
		page.Status = StatusDraft
	}
	if page.Template == "" {
		page.Template = "default"
	}
	id := "page_" + uuid.NewString()
	if err := s.repo.CreatePage(ctx, id, page, actor.ID); err != nil {
		return Page{}, err
	}
	s.record(ctx, actor, ip, audit.Entry{
		Action: "page.create", TargetType: "page", TargetID: id,
		Details: "created page: " + page.Title,
	})
	return s.repo.GetPage(ctx, id)
}

// UpdatePage applies a partial update. Setting status to published requires
// the publish permission on top of the edit gate the route already applied.
func (s *Service) UpdatePage(ctx context.Context, actor *auth.Principal, ip, id string, fields UpdateFields) (Page, error) {
	existing, err := s.repo.GetPage(ctx, id)
	if err != nil {
		return Page{}, err
	}
	if fields.Slug != nil && *fields.Slug != existing.Slug {
		taken, err := s.repo.SlugTaken(ctx, *fields.Slug, id)
		if err != nil {
			return Page{}, err
		}
		if taken {
			return Page{}, fmt.Errorf("%w: slug already in use", shared.ErrDuplicate)
		}
	}
	if fields.Status != nil && *fields.Status == StatusPublished &&
		!rbac.Allows(actor.Permissions, rbac.PermPagesPublish) {
		return Page{}, shared.ErrPermissionDenied
	}
	if err := s.repo.UpdatePage(ctx, id, fields, actor.ID); err != nil {
		return Page{}, err
	}
	s.record(ctx, actor, ip, audit.Entry{
		Action: "page.update", TargetType: "page", TargetID: id,
		Details: "updated page: " + existing.Title,
	})
	return s.repo.GetPage(ctx, id)
}

// DeletePage removes a page and records the action.
func (s *Service) DeletePage(ctx context.Context, actor *auth.Principal, ip, id string) error {
	existing, err := s.repo.GetPage(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeletePage(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, ip, audit.Entry{
		Action: "page.delete", TargetType: "page", TargetID: id,
		Details: "deleted page: " + existing.Title,
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
