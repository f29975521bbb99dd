// internal/app/features/factions/handler.go
package factions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	factionstore "github.com/novariagames/novaria/internal/app/store/factions"
	membershipstore "github.com/novariagames/novaria/internal/app/store/memberships"
	"github.com/novariagames/novaria/internal/app/system/httpjson"
)

// Handler serves the faction endpoints. All membership mutations go
// through the membership store; Factions is read-only listing access.
type Handler struct {
	Memberships *membershipstore.Store
	Factions    *factionstore.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Memberships: membershipstore.New(db, logger),
		Factions:    factionstore.New(db),
		Log:         logger,
	}
}

// factionID pulls and validates the {factionID} URL parameter.
func factionID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "factionID"))
	return id, err == nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, membershipstore.ErrFactionNotFound),
		errors.Is(err, factionstore.ErrFactionNotFound),
		errors.Is(err, membershipstore.ErrApplicationNotFound),
		errors.Is(err, membershipstore.ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, membershipstore.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, membershipstore.ErrAlreadyInFaction),
		errors.Is(err, membershipstore.ErrAlreadyApplied),
		errors.Is(err, membershipstore.ErrDuplicateFaction),
		errors.Is(err, membershipstore.ErrOwnerCannotLeave),
		errors.Is(err, membershipstore.ErrCannotTargetOwner):
		return http.StatusConflict
	case errors.Is(err, membershipstore.ErrBadRecruitmentMode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error as JSON. Internal errors are logged and the
// client gets a generic message.
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Log.Error("factions: "+op+" failed", zap.Error(err))
		httpjson.Error(w, status, "internal error")
		return
	}
	httpjson.Error(w, status, err.Error())
}

func validTag(tag string) bool {
	if len(tag) < 2 || len(tag) > 8 {
		return false
	}
	for _, r := range tag {
		if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789", r) {
			return false
		}
	}
	return true
}
