package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dkoroteev/herocards-backend/internal/token"
)

// Handler bundles the shared dependencies of every HTTP handler: the
// connection pool and the token service built at startup.
type Handler struct {
	DB     *sql.DB
	Tokens *token.Service
}

func New(db *sql.DB, tokens *token.Service) *Handler {
	return &Handler{DB: db, Tokens: tokens}
}

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// parsePagination reads skip/limit from the query string. Missing or
// malformed values fall back to skip=0, limit=10.
func parsePagination(r *http.Request) (skip, limit int) {
	skip = 0
	limit = 10
	if v, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && v >= 0 {
		skip = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	return skip, limit
}
