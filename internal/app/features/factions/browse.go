// internal/app/features/factions/browse.go
package factions

import (
	"context"
	"net/http"

	"github.com/novariagames/novaria/internal/app/system/auth"
	"github.com/novariagames/novaria/internal/app/system/httpjson"
	"github.com/novariagames/novaria/internal/app/system/timeouts"
	"github.com/novariagames/novaria/internal/domain/models"
)

const listLimit = 100

type listResponse struct {
	Factions []models.Faction `json:"factions"`
}

// ServeList handles GET /api/factions: the public faction directory,
// newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Factions.List(ctx, listLimit)
	if err != nil {
		h.fail(w, "list", err)
		return
	}
	if list == nil {
		list = []models.Faction{}
	}
	httpjson.Write(w, http.StatusOK, listResponse{Factions: list})
}

// ServeView handles GET /api/factions/{factionID}. The roster is
// public; pending applications appear only when the caller owns the
// faction.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := factionID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "invalid faction id")
		return
	}

	callerUID := ""
	if user, signedIn := auth.CurrentUser(r); signedIn {
		callerUID = user.UID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	view, err := h.Memberships.FactionView(ctx, callerUID, id)
	if err != nil {
		h.fail(w, "view", err)
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}
