package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dkoroteev/herocards-backend/internal/services"
)

// ListHeroCards handles GET /hero-cards with skip/limit pagination
func (h *Handler) ListHeroCards(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	page, err := services.ListHeroCards(r.Context(), h.DB, skip, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list hero cards")
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// GetHeroCard handles GET /hero-cards/{id}
func (h *Handler) GetHeroCard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid hero card id")
		return
	}

	hero, err := services.GetHeroCard(r.Context(), h.DB, id)
	if err != nil {
		if errors.Is(err, services.ErrHeroNotFound) {
			respondError(w, http.StatusNotFound, "Hero card with id "+strconv.FormatInt(id, 10)+" not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	respondJSON(w, http.StatusOK, hero)
}
