package httpapi

import (
	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/httpapi/middleware"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the property routes. Reads are public; every mutation
// requires a valid bearer token carrying the caller's email.
func NewRouter(h *PropertyHandler, jwtSecret string, log *logger.Logger) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.Recoverer)

	mux.Get("/api/properties", h.HandleListProperties)
	mux.Get("/api/properties/{id}", h.HandleGetProperty)

	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret, log))

		r.Post("/api/properties", h.HandleCreateProperty)
		r.Patch("/api/properties/{id}", h.HandleUpdateProperty)
		r.Delete("/api/properties/{id}", h.HandleDeleteProperty)
		r.Post("/api/properties/{id}/book", h.HandleBookProperty)
	})

	return mux
}
