package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aibooooot999-bot/website-cms/internal/auth"
	"github.com/aibooooot999-bot/website-cms/internal/dashboard"
	"github.com/aibooooot999-bot/website-cms/internal/media"
	"github.com/aibooooot999-bot/website-cms/internal/pages"
	"github.com/aibooooot999-bot/website-cms/internal/platform/httpx"
	"github.com/aibooooot999-bot/website-cms/internal/roles"
	"github.com/aibooooot999-bot/website-cms/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Resolver         *auth.Resolver
	AuthHandler      *auth.Handler
	UsersHandler     *users.Handler
	RolesHandler     *roles.Handler
	PagesHandler     *pages.Handler
	MediaHandler     *media.Handler
	DashboardHandler *dashboard.Handler
	UploadDir        string
}

// NewRouter constructs the chi.Router. Everything except login, health and
// the uploads file server sits behind the bearer-token resolver.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.OK(w, map[string]string{"service": "website-cms", "status": "running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Group(func(r chi.Router) {
			r.Use(params.Resolver.Middleware)
			r.Route("/users", params.UsersHandler.MountRoutes)
			r.Route("/roles", params.RolesHandler.MountRoutes)
			r.Route("/pages", params.PagesHandler.MountRoutes)
			r.Route("/media", params.MediaHandler.MountRoutes)
			r.Route("/upload", params.MediaHandler.MountUploadRoutes)
			r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		})
	})

	if params.UploadDir != "" {
		fileServer := http.StripPrefix("/uploads/images/", http.FileServer(http.Dir(params.UploadDir)))
		r.Get("/uploads/images/*", func(w http.ResponseWriter, r *http.Request) {
			fileServer.ServeHTTP(w, r)
		})
	}

	return r
}
