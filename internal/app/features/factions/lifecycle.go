// internal/app/features/factions/lifecycle.go
package factions

import (
	"context"
	"net/http"
	"strings"

	"github.com/novariagames/novaria/internal/app/system/auth"
	"github.com/novariagames/novaria/internal/app/system/htmlsanitize"
	"github.com/novariagames/novaria/internal/app/system/httpjson"
	"github.com/novariagames/novaria/internal/app/system/timeouts"
	"github.com/novariagames/novaria/internal/domain/models"
)

type createRequest struct {
	Name            string `json:"name"`
	Tag             string `json:"tag"`
	Description     string `json:"description"`
	RecruitmentMode string `json:"recruitment_mode"`
	MaxMembers      int    `json:"max_members"`
}

// ServeCreate handles POST /api/factions: the caller founds a faction
// and becomes its owner.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	user, signedIn := auth.CurrentUser(r)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Tag = strings.TrimSpace(req.Tag)
	if len(req.Name) < 3 || len(req.Name) > 50 {
		httpjson.Error(w, http.StatusBadRequest, "name must be 3-50 characters")
		return
	}
	if !validTag(req.Tag) {
		httpjson.Error(w, http.StatusBadRequest, "tag must be 2-8 letters or digits")
		return
	}
	if req.MaxMembers < 0 {
		httpjson.Error(w, http.StatusBadRequest, "max_members cannot be negative")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f, err := h.Memberships.CreateFaction(ctx, user.UID, models.Faction{
		Name:            req.Name,
		Tag:             req.Tag,
		Description:     htmlsanitize.Sanitize(req.Description),
		RecruitmentMode: req.RecruitmentMode,
		MaxMembers:      req.MaxMembers,
	})
	if err != nil {
		h.fail(w, "create", err)
		return
	}
	httpjson.Write(w, http.StatusCreated, f)
}

// ServeJoin handles POST /api/factions/{factionID}: join an open
// faction immediately or file an application with one in application
// mode. The response says which happened.
func (h *Handler) ServeJoin(w http.ResponseWriter, r *http.Request) {
	user, signedIn := auth.CurrentUser(r)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	id, ok := factionID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "invalid faction id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	joined, err := h.Memberships.JoinOrApply(ctx, user.UID, id)
	if err != nil {
		h.fail(w, "join", err)
		return
	}
	if joined {
		httpjson.Message(w, http.StatusOK, "joined")
		return
	}
	httpjson.Message(w, http.StatusOK, "applied")
}

// ServeDelete handles DELETE /api/factions/{factionID}: the owner
// disbands the faction, anyone else leaves it.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	user, signedIn := auth.CurrentUser(r)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	id, ok := factionID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "invalid faction id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	f, err := h.Factions.GetByID(ctx, id)
	if err != nil {
		h.fail(w, "delete", err)
		return
	}

	if f.OwnerUID == user.UID {
		if err := h.Memberships.Disband(ctx, user.UID, id); err != nil {
			h.fail(w, "disband", err)
			return
		}
		httpjson.Message(w, http.StatusOK, "faction disbanded")
		return
	}

	if err := h.Memberships.Leave(ctx, user.UID, id); err != nil {
		h.fail(w, "leave", err)
		return
	}
	httpjson.Message(w, http.StatusOK, "left faction")
}
