package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dkoroteev/herocards-backend/internal/services"
)

// RegisterRequest carries new-account data
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /users
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondError(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "Password is required")
		return
	}

	user, err := services.CreateUser(r.Context(), h.DB, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondError(w, http.StatusConflict, "Email already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// ListUsers handles GET /users with skip/limit pagination
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	page, err := services.ListUsers(r.Context(), h.DB, skip, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// GetUser handles GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := services.GetUserByID(r.Context(), h.DB, id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User with id "+strconv.FormatInt(id, 10)+" not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GetUserHeroCards handles GET /users/{user_id}/hero-cards: a
// third-party read of any user's collection, no ownership required.
func (h *Handler) GetUserHeroCards(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if _, err := services.GetUserByID(r.Context(), h.DB, userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User with id "+strconv.FormatInt(userID, 10)+" not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	heroes, err := services.ListUserHeroes(r.Context(), h.DB, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list hero cards")
		return
	}

	respondJSON(w, http.StatusOK, heroes)
}
