package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/rpupo63/bloghub-backend/auth"
	"github.com/rpupo63/bloghub-backend/models"
)

func testAuthMiddleware() authMiddleware {
	return authMiddleware{
		responder: NewResponder(zerolog.Nop()),
		tokens:    auth.NewTokens("test-secret", time.Hour, nil),
	}
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	m := testAuthMiddleware()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	m.authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsMalformedToken(t *testing.T) {
	m := testAuthMiddleware()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	m.authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateOptionalPassesAnonymousThrough(t *testing.T) {
	m := testAuthMiddleware()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, err := ctxGetUser(r.Context())
		assert.Error(t, err, "anonymous request must carry no user")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	m.authenticateOptional(next).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateOptionalDegradesBadTokenToAnonymous(t *testing.T) {
	m := testAuthMiddleware()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, err := ctxGetUser(r.Context())
		assert.Error(t, err)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	m.authenticateOptional(next).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminForbidsRegularUser(t *testing.T) {
	m := testAuthMiddleware()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req = req.WithContext(ctxWithUser(req.Context(), &models.User{Username: "alice"}, "token"))
	m.requireAdmin(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminRejectsAnonymous(t *testing.T) {
	m := testAuthMiddleware()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	m.requireAdmin(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminAdmitsAdmin(t *testing.T) {
	m := testAuthMiddleware()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req = req.WithContext(ctxWithUser(req.Context(), &models.User{Username: "root", IsAdmin: true}, "token"))
	m.requireAdmin(next).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
