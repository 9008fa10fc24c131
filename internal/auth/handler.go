package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aibooooot999-bot/website-cms/internal/platform/httpx"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	resolver  *Resolver
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, resolver *Resolver) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		resolver:  resolver,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(h.resolver.Middleware)
		r.Get("/me", h.handleMe)
		r.Post("/logout", h.handleLogout)
	})
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type rolePayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type userPayload struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	DisplayName string      `json:"display_name"`
	Email       string      `json:"email"`
	Avatar      string      `json:"avatar,omitempty"`
	Role        rolePayload `json:"role"`
	Permissions []string    `json:"permissions"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, principal, err := h.service.Login(r.Context(), req.Username, req.Password, r.RemoteAddr)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, loginResponse{Token: token, User: payloadFor(principal)})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	principal, err := h.service.Me(r.Context(), PrincipalFromContext(r.Context()))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, payloadFor(principal))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout(r.Context(), PrincipalFromContext(r.Context()), r.RemoteAddr)
	httpx.OKMessage(w, nil, "logged out")
}

func payloadFor(p *Principal) userPayload {
	perms := p.Permissions.List()
	if perms == nil {
		perms = []string{}
	}
	return userPayload{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Avatar:      p.Avatar,
		Role:        rolePayload{ID: p.RoleID, Name: p.RoleName, DisplayName: p.RoleDisplay},
		Permissions: perms,
	}
}
