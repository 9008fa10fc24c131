package media

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aibooooot999-bot/website-cms/internal/auth"
	"github.com/aibooooot999-bot/website-cms/internal/platform/httpx"
	"github.com/aibooooot999-bot/website-cms/internal/rbac"
)

// Handler manages media library endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes registers library routes (list and delete).
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(rbac.PermMediaView))
		r.Get("/", h.list)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(rbac.PermMediaDelete))
		r.Delete("/{filename}", h.delete)
	})
}

// MountUploadRoutes registers the upload endpoint, mounted separately so the
// public path stays /api/upload/image.
func (h *Handler) MountUploadRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(rbac.PermMediaUpload))
		r.Post("/image", h.upload)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.ListImages(r.Context())
	if err != nil {
		h.logger.Error("list media", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, images)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	// One extra byte over the cap so an at-limit body still parses and the
	// size check produces the domain error rather than a transport one.
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+1)
	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.Fail(w, http.StatusBadRequest, "file exceeds the 5 MB limit")
			return
		}
		httpx.Fail(w, http.StatusBadRequest, "no file selected")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "could not read upload")
		return
	}
	actor := auth.PrincipalFromContext(r.Context())
	uploaded, err := h.service.SaveImage(r.Context(), actor, r.RemoteAddr, header.Filename, data)
	if errors.Is(err, ErrTooLarge) || errors.Is(err, ErrUnsupportedType) {
		httpx.Fail(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), "media: "))
		return
	}
	if err != nil {
		h.logger.Error("upload image", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, uploaded)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" || strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		httpx.Fail(w, http.StatusBadRequest, "invalid filename")
		return
	}
	actor := auth.PrincipalFromContext(r.Context())
	if err := h.service.DeleteImage(r.Context(), actor, r.RemoteAddr, filename); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OKMessage(w, nil, "file deleted")
}
