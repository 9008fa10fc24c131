package pages

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibooooot999-bot/website-cms/internal/auth"
	"github.com/aibooooot999-bot/website-cms/internal/rbac"
)

func newTestRouter(repo *mockRepository, principal *auth.Principal) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, &recordingStub{})
	handler := NewHandler(logger, svc, rbac.Middleware{Logger: logger, Source: auth.GrantsFromRequest})

	r := chi.NewRouter()
	if principal != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(auth.ContextWithPrincipal(req.Context(), principal)))
			})
		})
	}
	r.Route("/api/pages", handler.MountRoutes)
	return r
}

func TestCreatePageWithoutSlugDerivesFromTitle(t *testing.T) {
	repo := newMockRepository()
	router := newTestRouter(repo, editorActor())

	body := strings.NewReader(`{"title":"Café & Bar"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/pages/", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Success bool `json:"success"`
		Data    Page `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "cafe-bar", envelope.Data.Slug)
}

func TestCreatePageWithoutTitleRejected(t *testing.T) {
	router := newTestRouter(newMockRepository(), editorActor())

	req := httptest.NewRequest(http.MethodPost, "/api/pages/", strings.NewReader(`{"slug":"about"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
