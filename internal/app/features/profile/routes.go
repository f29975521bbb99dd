// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/novariagames/novaria/internal/app/system/auth"
)

// Routes returns the profile subrouter, mounted under /api/profile.
func Routes(h *Handler, a *auth.Authenticator) chi.Router {
	r := chi.NewRouter()
	r.Use(a.RequireSignedIn)
	r.Get("/", h.ServeGet)
	r.Put("/", h.ServePut)
	return r
}
