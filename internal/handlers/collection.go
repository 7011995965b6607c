package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dkoroteev/herocards-backend/internal/middleware"
	"github.com/dkoroteev/herocards-backend/internal/services"
)

// AddHeroCardRequest names the hero card to add to the collection
type AddHeroCardRequest struct {
	HeroCardID int64 `json:"hero_card_id"`
}

// AddHeroCardResponse confirms an add
type AddHeroCardResponse struct {
	Success bool  `json:"success"`
	HeroID  int64 `json:"hero_id"`
}

// RemoveHeroCardResponse confirms a removal
type RemoveHeroCardResponse struct {
	Success       bool  `json:"success"`
	DeletedHeroID int64 `json:"deleted_hero_id"`
}

// MyHeroCards handles GET /users/me/hero-cards
func (h *Handler) MyHeroCards(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	heroes, err := services.ListUserHeroes(r.Context(), h.DB, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list hero cards")
		return
	}

	respondJSON(w, http.StatusOK, heroes)
}

// AddHeroCard handles POST /users/me/hero-cards. Adding a card the
// user already owns succeeds without creating a duplicate.
func (h *Handler) AddHeroCard(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	var req AddHeroCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	hero, err := services.AddHeroToUser(r.Context(), h.DB, user.ID, req.HeroCardID)
	if err != nil {
		if errors.Is(err, services.ErrHeroNotFound) {
			respondError(w, http.StatusNotFound, "Hero card with id "+strconv.FormatInt(req.HeroCardID, 10)+" not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to add hero card")
		return
	}

	respondJSON(w, http.StatusOK, AddHeroCardResponse{Success: true, HeroID: hero.ID})
}

// RemoveHeroCard handles DELETE /users/me/hero-cards/{id}
func (h *Handler) RemoveHeroCard(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	heroID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid hero card id")
		return
	}

	if err := services.RemoveHeroFromUser(r.Context(), h.DB, user.ID, heroID); err != nil {
		if errors.Is(err, services.ErrHeroNotInCollection) {
			respondError(w, http.StatusNotFound, "Hero with id "+strconv.FormatInt(heroID, 10)+" not in your list")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to remove hero card")
		return
	}

	respondJSON(w, http.StatusOK, RemoveHeroCardResponse{Success: true, DeletedHeroID: heroID})
}
