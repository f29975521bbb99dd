// internal/app/features/articles/handler.go
package articles

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	articlestore "github.com/novariagames/novaria/internal/app/store/articles"
	"github.com/novariagames/novaria/internal/app/system/auth"
	"github.com/novariagames/novaria/internal/app/system/htmlsanitize"
	"github.com/novariagames/novaria/internal/app/system/httpjson"
	"github.com/novariagames/novaria/internal/app/system/timeouts"
	"github.com/novariagames/novaria/internal/domain/models"
)

// Handler serves the lore/news article endpoints. Reads are public and
// limited to published articles; writes are admin-only and gated by
// middleware in routes.go.
type Handler struct {
	Articles *articlestore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Articles: articlestore.New(db), Log: logger}
}

const listLimit = 50

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, articlestore.ErrArticleNotFound) {
		httpjson.Error(w, http.StatusNotFound, err.Error())
		return
	}
	if errors.Is(err, articlestore.ErrDuplicateSlug) {
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	h.Log.Error("articles: "+op+" failed", zap.Error(err))
	httpjson.Error(w, http.StatusInternalServerError, "internal error")
}

func validKind(kind string) bool {
	return kind == models.ArticleNews || kind == models.ArticleLore
}

// ServeList handles GET /api/articles?kind=news|lore. Admins see
// drafts too.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind != "" && !validKind(kind) {
		httpjson.Error(w, http.StatusBadRequest, "kind must be news or lore")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Articles.List(ctx, kind, isAdmin(r), listLimit)
	if err != nil {
		h.fail(w, "list", err)
		return
	}
	if list == nil {
		list = []models.Article{}
	}
	httpjson.Write(w, http.StatusOK, map[string][]models.Article{"articles": list})
}

// ServeGet handles GET /api/articles/{slug}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Articles.GetBySlug(ctx, chi.URLParam(r, "slug"), isAdmin(r))
	if err != nil {
		h.fail(w, "get", err)
		return
	}
	httpjson.Write(w, http.StatusOK, a)
}

type articleRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Kind      string `json:"kind"`
	Published bool   `json:"published"`
}

func (req *articleRequest) validate() string {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || len(req.Title) > 120 {
		return "title must be 1-120 characters"
	}
	if !validKind(req.Kind) {
		return "kind must be news or lore"
	}
	return ""
}

// ServeCreate handles POST /api/articles (admin).
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	var req articleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		httpjson.Error(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Articles.Create(ctx, models.Article{
		Title:     req.Title,
		Body:      string(htmlsanitize.PrepareForDisplay(req.Body)),
		Kind:      req.Kind,
		Published: req.Published,
		AuthorUID: user.UID,
	})
	if err != nil {
		h.fail(w, "create", err)
		return
	}
	httpjson.Write(w, http.StatusCreated, a)
}

// ServeUpdate handles PUT /api/articles/{slug} (admin).
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Articles.GetBySlug(ctx, chi.URLParam(r, "slug"), true)
	if err != nil {
		h.fail(w, "update", err)
		return
	}

	var req articleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		httpjson.Error(w, http.StatusBadRequest, msg)
		return
	}

	a, err := h.Articles.Update(ctx, existing.ID,
		req.Title, string(htmlsanitize.PrepareForDisplay(req.Body)), req.Kind, req.Published)
	if err != nil {
		h.fail(w, "update", err)
		return
	}
	httpjson.Write(w, http.StatusOK, a)
}

// ServeDelete handles DELETE /api/articles/{slug} (admin).
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Articles.GetBySlug(ctx, chi.URLParam(r, "slug"), true)
	if err != nil {
		h.fail(w, "delete", err)
		return
	}
	if err := h.Articles.Delete(ctx, existing.ID); err != nil {
		h.fail(w, "delete", err)
		return
	}
	httpjson.Message(w, http.StatusOK, "article deleted")
}

func isAdmin(r *http.Request) bool {
	user, signedIn := auth.CurrentUser(r)
	return signedIn && user.Role == "admin"
}
