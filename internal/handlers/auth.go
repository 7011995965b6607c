package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkoroteev/herocards-backend/internal/middleware"
	"github.com/dkoroteev/herocards-backend/internal/services"
)

// TokenRequest carries login credentials
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the issued bearer token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// IssueToken handles POST /auth/token. Verified credentials yield a
// signed access token; anything else is a 401 with no hint whether the
// email exists.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := services.VerifyCredentials(r.Context(), h.DB, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	accessToken, err := h.Tokens.Issue(user.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{AccessToken: accessToken})
}

// Me handles GET /users/me. The identity comes solely from the
// authorization gate.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	respondJSON(w, http.StatusOK, user)
}
