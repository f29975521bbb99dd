// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/novariagames/novaria/internal/app/store/users"
	"github.com/novariagames/novaria/internal/app/system/auth"
	"github.com/novariagames/novaria/internal/app/system/httpjson"
	"github.com/novariagames/novaria/internal/app/system/timeouts"
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Log: logger}
}

// ServeGet handles GET /api/profile: the caller's own profile,
// including the faction pointer. A signed-in user who never saved a
// profile gets their identity fields back with no stored document.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	user, signedIn := auth.CurrentUser(r)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByUID(ctx, user.UID)
	if err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			httpjson.Write(w, http.StatusOK, map[string]string{
				"uid":          user.UID,
				"display_name": user.Name,
				"photo_url":    user.PhotoURL,
			})
			return
		}
		h.Log.Error("profile: load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

type updateRequest struct {
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

// ServePut handles PUT /api/profile: create or update the caller's
// display fields. Faction membership is not editable here.
func (h *Handler) ServePut(w http.ResponseWriter, r *http.Request) {
	user, signedIn := auth.CurrentUser(r)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" || len(req.DisplayName) > 50 {
		httpjson.Error(w, http.StatusBadRequest, "display_name must be 1-50 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.UpsertProfile(ctx, user.UID, req.DisplayName, req.PhotoURL)
	if err != nil {
		h.Log.Error("profile: save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}
