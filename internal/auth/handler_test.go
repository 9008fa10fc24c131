package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aibooooot999-bot/website-cms/internal/audit"
	"github.com/aibooooot999-bot/website-cms/internal/platform/httpx"
)

type stubRecorder struct {
	entries []audit.Entry
}

func (s *stubRecorder) Record(ctx context.Context, entry audit.Entry) (string, error) {
	s.entries = append(s.entries, entry)
	return "log_stub", nil
}

func newLoginFixture(t *testing.T) (*Handler, *stubStore, *stubRecorder) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := editorUser()
	user.PasswordHash = string(hashed)
	store := &stubStore{
		byID:       map[string]*User{user.ID: user},
		byUsername: map[string]*User{user.Username: user},
	}
	codec, err := NewTokenCodec("handler-secret")
	require.NoError(t, err)
	recorder := &stubRecorder{}
	service := NewService(store, codec, recorder, discardLogger())
	return NewHandler(discardLogger(), service, NewResolver(codec, store)), store, recorder
}

func postLogin(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.handleLogin(res, req)
	return res
}

func TestLoginIssuesTokenAndRecordsActivity(t *testing.T) {
	handler, store, recorder := newLoginFixture(t)

	res := postLogin(t, handler, `{"username":"editor","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, res.Code)

	var envelope struct {
		Success bool          `json:"success"`
		Data    loginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.Token)
	assert.Equal(t, "editor", envelope.Data.User.Username)
	assert.Contains(t, envelope.Data.User.Permissions, "pages.edit")

	assert.Equal(t, []string{"user_7"}, store.lastLogins)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "login", recorder.entries[0].Action)
	assert.Equal(t, "user_7", recorder.entries[0].ActorID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	handler, _, recorder := newLoginFixture(t)

	res := postLogin(t, handler, `{"username":"editor","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Empty(t, recorder.entries)
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	handler, store, _ := newLoginFixture(t)
	store.byUsername["editor"].Status = "disabled"

	res := postLogin(t, handler, `{"username":"editor","password":"correct-horse"}`)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	var envelope httpx.Envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Equal(t, "invalid username or password", envelope.Error)
}

func TestLoginRequiresFields(t *testing.T) {
	handler, _, _ := newLoginFixture(t)

	res := postLogin(t, handler, `{"username":"editor"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestMiddlewarePutsPrincipalInContext(t *testing.T) {
	handler, _, _ := newLoginFixture(t)

	res := postLogin(t, handler, `{"username":"editor","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, res.Code)
	var envelope struct {
		Data loginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))

	var seen *Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = PrincipalFromContext(r.Context())
	})
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+envelope.Data.Token)
	handler.resolver.Middleware(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Equal(t, "user_7", seen.ID)
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	handler, _, _ := newLoginFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	res := httptest.NewRecorder()
	handler.resolver.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})).ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
