// internal/app/features/feedback/handler.go
package feedback

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	feedbackstore "github.com/novariagames/novaria/internal/app/store/feedback"
	"github.com/novariagames/novaria/internal/app/system/auth"
	"github.com/novariagames/novaria/internal/app/system/htmlsanitize"
	"github.com/novariagames/novaria/internal/app/system/httpjson"
	"github.com/novariagames/novaria/internal/app/system/timeouts"
	"github.com/novariagames/novaria/internal/domain/models"
)

type Handler struct {
	Feedback *feedbackstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Feedback: feedbackstore.New(db), Log: logger}
}

type submitRequest struct {
	Email   string `json:"email,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type submitResponse struct {
	Reference string `json:"reference"`
}

// ServeSubmit handles POST /api/feedback. Anonymous submissions are
// allowed; a signed-in caller's uid is attached automatically. The
// response carries the reference code for follow-up.
func (h *Handler) ServeSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Subject = strings.TrimSpace(req.Subject)
	req.Body = strings.TrimSpace(req.Body)
	if req.Subject == "" || len(req.Subject) > 150 {
		httpjson.Error(w, http.StatusBadRequest, "subject must be 1-150 characters")
		return
	}
	if req.Body == "" || len(req.Body) > 5000 {
		httpjson.Error(w, http.StatusBadRequest, "body must be 1-5000 characters")
		return
	}

	fb := models.Feedback{
		Email:   strings.TrimSpace(req.Email),
		Subject: htmlsanitize.Sanitize(req.Subject),
		Body:    htmlsanitize.Sanitize(req.Body),
	}
	if user, signedIn := auth.CurrentUser(r); signedIn {
		fb.UID = user.UID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, err := h.Feedback.Create(ctx, fb)
	if err != nil {
		h.Log.Error("feedback: save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Log.Info("feedback received", zap.String("reference", saved.Reference))
	httpjson.Write(w, http.StatusCreated, submitResponse{Reference: saved.Reference})
}
