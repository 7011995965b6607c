package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoroteev/herocards-backend/internal/models"
	"github.com/dkoroteev/herocards-backend/internal/services"
	"github.com/dkoroteev/herocards-backend/internal/token"
)

func newGate(t *testing.T, ttl time.Duration, lookup UserLookup) (*token.Service, http.Handler) {
	t.Helper()
	tokens := token.NewService("test-secret", ttl)
	handler := RequireAuth(tokens, lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r.Context())
		require.NotNil(t, user)
		w.Write([]byte(user.Email))
	}))
	return tokens, handler
}

func knownUser(ctx context.Context, email string) (*models.User, error) {
	if email == "a@x.com" {
		return &models.User{ID: 1, Email: email}, nil
	}
	return nil, services.ErrUserNotFound
}

func TestRequireAuthSuccess(t *testing.T) {
	tokens, handler := newGate(t, 600*time.Second, knownUser)

	tok, err := tokens.Issue("a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", rec.Body.String())
}

func TestRequireAuthMissingHeader(t *testing.T) {
	_, handler := newGate(t, 600*time.Second, knownUser)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authenticated")
}

func TestRequireAuthWrongScheme(t *testing.T) {
	_, handler := newGate(t, 600*time.Second, knownUser)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid authentication scheme")
}

func TestRequireAuthGarbageToken(t *testing.T) {
	_, handler := newGate(t, 600*time.Second, knownUser)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token or expired token")
}

func TestRequireAuthExpiredToken(t *testing.T) {
	tokens, handler := newGate(t, -1*time.Second, knownUser)

	tok, err := tokens.Issue("a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAuthDeletedUser(t *testing.T) {
	tokens, handler := newGate(t, 600*time.Second, knownUser)

	// Token is valid but the subject no longer resolves to a user.
	tok, err := tokens.Issue("deleted@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestCurrentUserWithoutGate(t *testing.T) {
	assert.Nil(t, CurrentUser(context.Background()))
}
