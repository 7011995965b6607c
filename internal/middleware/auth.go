package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dkoroteev/herocards-backend/internal/models"
	"github.com/dkoroteev/herocards-backend/internal/services"
	"github.com/dkoroteev/herocards-backend/internal/token"
)

type contextKey string

const userContextKey contextKey = "current_user"

// UserLookup resolves a verified token subject to a stored user. It
// returns services.ErrUserNotFound when no such user exists.
type UserLookup func(ctx context.Context, email string) (*models.User, error)

// RequireAuth validates the Authorization header and injects the
// resolved user into the request context. Handlers behind this
// middleware must take the caller's identity from CurrentUser only,
// never from the request payload.
//
// Failure contract: 403 for a missing credential, a non-Bearer scheme
// or a token that does not verify; 404 when the token is valid but the
// subject no longer exists (the account was deleted after issuance).
func RequireAuth(tokens *token.Service, lookup UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				authError(w, http.StatusForbidden, "Not authenticated")
				return
			}

			scheme, credential, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") {
				authError(w, http.StatusForbidden, "Invalid authentication scheme")
				return
			}
			credential = strings.TrimSpace(credential)
			if credential == "" {
				authError(w, http.StatusForbidden, "Not authenticated")
				return
			}

			subject, err := tokens.Verify(credential)
			if err != nil {
				authError(w, http.StatusForbidden, "Invalid token or expired token")
				return
			}

			user, err := lookup(r.Context(), subject)
			if err != nil {
				if errors.Is(err, services.ErrUserNotFound) {
					authError(w, http.StatusNotFound, "User not found")
					return
				}
				authError(w, http.StatusInternalServerError, "Failed to load user")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the user resolved by RequireAuth, or nil when the
// request did not pass through it.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func authError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
