// Package api exposes the content catalog as read-only JSON under /api/v1.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/cityalgo/cityalgo/internal/catalog"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Catalog *catalog.Catalog
	// AllowedOrigins defaults to any origin.
	AllowedOrigins []string
}

// NewAPIRouter creates a chi sub-router for /api/v1.
// All routes are unauthenticated GETs and return application/json.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(jsonContentType)

	h := &catalogHandler{catalog: deps.Catalog}
	r.Get("/sections", h.ListSections)
	r.Get("/tracks", h.ListTracks)
	r.Get("/problems", h.ListProblems)
	r.Get("/problems/{id}", h.GetProblem)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "METHOD_NOT_ALLOWED")
	})

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
