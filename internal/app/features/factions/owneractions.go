// internal/app/features/factions/owneractions.go
package factions

import (
	"context"
	"net/http"

	"github.com/novariagames/novaria/internal/app/system/auth"
	"github.com/novariagames/novaria/internal/app/system/httpjson"
	"github.com/novariagames/novaria/internal/app/system/timeouts"
)

type ownerActionRequest struct {
	Action    string `json:"action"`
	TargetUID string `json:"target_uid,omitempty"`
	Value     string `json:"value,omitempty"`
}

// ServeOwnerAction handles PATCH /api/factions/{factionID}. The body
// names one owner action:
//
//	{"action":"kick","target_uid":"..."}
//	{"action":"transfer_ownership","target_uid":"..."}
//	{"action":"set_recruitment_mode","value":"open"|"application"}
//
// Ownership itself is checked by the membership store, so a stale
// owner loses cleanly with 403.
func (h *Handler) ServeOwnerAction(w http.ResponseWriter, r *http.Request) {
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

	var req ownerActionRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch req.Action {
	case "kick":
		if req.TargetUID == "" {
			httpjson.Error(w, http.StatusBadRequest, "target_uid is required")
			return
		}
		if err := h.Memberships.Kick(ctx, user.UID, id, req.TargetUID); err != nil {
			h.fail(w, "kick", err)
			return
		}
		httpjson.Message(w, http.StatusOK, "member removed")

	case "transfer_ownership":
		if req.TargetUID == "" {
			httpjson.Error(w, http.StatusBadRequest, "target_uid is required")
			return
		}
		if err := h.Memberships.TransferOwnership(ctx, user.UID, id, req.TargetUID); err != nil {
			h.fail(w, "transfer", err)
			return
		}
		httpjson.Message(w, http.StatusOK, "ownership transferred")

	case "set_recruitment_mode":
		if err := h.Memberships.SetRecruitmentMode(ctx, user.UID, id, req.Value); err != nil {
			h.fail(w, "set mode", err)
			return
		}
		httpjson.Message(w, http.StatusOK, "recruitment mode updated")

	default:
		httpjson.Error(w, http.StatusBadRequest, "unknown action")
	}
}

type applicationDecisionRequest struct {
	Action    string `json:"action"`
	TargetUID string `json:"target_uid"`
}

// ServeApplicationDecision handles POST /api/factions/{factionID}/applications:
//
//	{"action":"approve_application","target_uid":"..."}
//	{"action":"reject_application","target_uid":"..."}
func (h *Handler) ServeApplicationDecision(w http.ResponseWriter, r *http.Request) {
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

	var req applicationDecisionRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TargetUID == "" {
		httpjson.Error(w, http.StatusBadRequest, "target_uid is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch req.Action {
	case "approve_application":
		if err := h.Memberships.ApproveApplication(ctx, user.UID, id, req.TargetUID); err != nil {
			h.fail(w, "approve", err)
			return
		}
		httpjson.Message(w, http.StatusOK, "application approved")

	case "reject_application":
		if err := h.Memberships.RejectApplication(ctx, user.UID, id, req.TargetUID); err != nil {
			h.fail(w, "reject", err)
			return
		}
		httpjson.Message(w, http.StatusOK, "application rejected")

	default:
		httpjson.Error(w, http.StatusBadRequest, "unknown action")
	}
}
