package pages

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aibooooot999-bot/website-cms/internal/auth"
	"github.com/aibooooot999-bot/website-cms/internal/platform/httpx"
	"github.com/aibooooot999-bot/website-cms/internal/rbac"
)

// Handler manages page management endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	rbac      rbac.Middleware
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac, validator: validator.New()}
}

// MountRoutes registers page routes. The publish rule is enforced in the
// service so the edit gate stays the only route-level check on updates.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(rbac.PermPagesView))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(rbac.PermPagesCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(rbac.PermPagesEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(rbac.PermPagesDelete))
		r.Delete("/{id}", h.delete)
	})
}

type createPageRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	Slug            string `json:"slug" validate:"max=200"`
	Content         string `json:"content"`
	Excerpt         string `json:"excerpt"`
	Status          string `json:"status" validate:"omitempty,oneof=draft published"`
	Template        string `json:"template"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

type updatePageRequest struct {
	Title           *string `json:"title,omitempty"`
	Slug            *string `json:"slug,omitempty"`
	Content         *string `json:"content,omitempty"`
	Excerpt         *string `json:"excerpt,omitempty"`
	FeaturedImage   *string `json:"featured_image,omitempty"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Template        *string `json:"template,omitempty"`
	SortOrder       *int    `json:"sort_order,omitempty"`
	MetaTitle       *string `json:"meta_title,omitempty"`
	MetaDescription *string `json:"meta_description,omitempty"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	pages, err := h.service.ListPages(r.Context())
	if err != nil {
		h.logger.Error("list pages", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if pages == nil {
		pages = []Page{}
	}
	httpx.OK(w, pages)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetPage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, page)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "title is required")
		return
	}
	actor := auth.PrincipalFromContext(r.Context())
	page, err := h.service.CreatePage(r.Context(), actor, r.RemoteAddr, NewPage{
		Title:           req.Title,
		Slug:            req.Slug,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		Status:          req.Status,
		Template:        req.Template,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	})
	if err != nil {
		h.logger.Error("create page", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OKMessage(w, page, "page created")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updatePageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid field values")
		return
	}
	actor := auth.PrincipalFromContext(r.Context())
	page, err := h.service.UpdatePage(r.Context(), actor, r.RemoteAddr, chi.URLParam(r, "id"), UpdateFields{
		Title:           req.Title,
		Slug:            req.Slug,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		FeaturedImage:   req.FeaturedImage,
		Status:          req.Status,
		Template:        req.Template,
		SortOrder:       req.SortOrder,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OKMessage(w, page, "page updated")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	actor := auth.PrincipalFromContext(r.Context())
	if err := h.service.DeletePage(r.Context(), actor, r.RemoteAddr, chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OKMessage(w, nil, "page deleted")
}
