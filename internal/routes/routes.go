package routes

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/dkoroteev/herocards-backend/internal/handlers"
	"github.com/dkoroteev/herocards-backend/internal/middleware"
	"github.com/dkoroteev/herocards-backend/internal/models"
	"github.com/dkoroteev/herocards-backend/internal/services"
	"github.com/dkoroteev/herocards-backend/internal/token"
)

func SetupRoutes(r *chi.Mux, h *handlers.Handler, tokens *token.Service) {
	requireAuth := middleware.RequireAuth(tokens, func(ctx context.Context, email string) (*models.User, error) {
		return services.GetUserByEmail(ctx, h.DB, email)
	})

	// Auth
	r.Post("/auth/token", h.IssueToken)

	// Users
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Register)
		r.Get("/", h.ListUsers)

		r.Route("/me", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.Me)
			r.Get("/hero-cards", h.MyHeroCards)
			r.Post("/hero-cards", h.AddHeroCard)
			r.Delete("/hero-cards/{id}", h.RemoveHeroCard)
		})

		r.Get("/{id}", h.GetUser)
		r.Get("/{id}/hero-cards", h.GetUserHeroCards)
	})

	// Hero catalog
	r.Route("/hero-cards", func(r chi.Router) {
		r.Get("/", h.ListHeroCards)
		r.Get("/{id}", h.GetHeroCard)
	})
}
