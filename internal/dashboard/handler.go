package dashboard

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aibooooot999-bot/website-cms/internal/audit"
	"github.com/aibooooot999-bot/website-cms/internal/platform/httpx"
	"github.com/aibooooot999-bot/website-cms/internal/rbac"
)

// Handler manages dashboard endpoints.
type Handler struct {
	logger     *slog.Logger
	service    *Service
	activities *audit.Service
	rbac       rbac.Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, activities *audit.Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, activities: activities, rbac: rbac}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/stats", h.stats)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(rbac.PermLogsView))
		r.Get("/activities", h.listActivities)
	})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("dashboard stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, stats)
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	entries, total, err := h.activities.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list activities", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	httpx.OKList(w, entries, total)
}
