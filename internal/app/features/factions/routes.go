// internal/app/features/factions/routes.go
package factions

import (
	"github.com/go-chi/chi/v5"

	"github.com/novariagames/novaria/internal/app/system/auth"
)

// Routes returns the faction subrouter, mounted under /api/factions.
func Routes(h *Handler, a *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.With(a.RequireSignedIn).Post("/", h.ServeCreate)

	r.Route("/{factionID}", func(r chi.Router) {
		r.Get("/", h.ServeView)

		r.Group(func(r chi.Router) {
			r.Use(a.RequireSignedIn)
			r.Post("/", h.ServeJoin)
			r.Delete("/", h.ServeDelete)
			r.Patch("/", h.ServeOwnerAction)
			r.Post("/applications", h.ServeApplicationDecision)
		})
	})

	return r
}
