// internal/app/features/articles/routes.go
package articles

import (
	"github.com/go-chi/chi/v5"

	"github.com/novariagames/novaria/internal/app/system/auth"
)

// Routes returns the article subrouter, mounted under /api/articles.
func Routes(h *Handler, a *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{slug}", h.ServeGet)

	r.Group(func(r chi.Router) {
		r.Use(a.RequireSignedIn, a.RequireRole("admin"))
		r.Post("/", h.ServeCreate)
		r.Put("/{slug}", h.ServeUpdate)
		r.Delete("/{slug}", h.ServeDelete)
	})

	return r
}
