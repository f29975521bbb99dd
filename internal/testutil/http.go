package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/novariagames/novaria/internal/app/system/auth"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call handlers directly, bypassing the
// router.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Player returns an identity for a regular signed-in player.
func Player(uid string) *auth.Identity {
	return &auth.Identity{
		UID:      uid,
		Name:     "Player " + uid,
		PhotoURL: "https://img.example.com/" + uid + ".png",
	}
}

// Admin returns an identity carrying the admin role.
func Admin(uid string) *auth.Identity {
	return &auth.Identity{UID: uid, Name: "Admin " + uid, Role: "admin"}
}

// NewJSONRequest builds a request with a JSON body and content type.
func NewJSONRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r.Header.Set("Content-Type", "application/json")
	return r
}

// NewAuthenticatedRequest builds a JSON request with an identity
// already in context, as auth.LoadIdentity would have left it.
func NewAuthenticatedRequest(method, target, body string, id *auth.Identity) *http.Request {
	return auth.WithIdentity(NewJSONRequest(method, target, body), id)
}
