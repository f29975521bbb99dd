package articles_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/novariagames/novaria/internal/app/features/articles"
	"github.com/novariagames/novaria/internal/app/system/indexes"
	"github.com/novariagames/novaria/internal/domain/models"
	"github.com/novariagames/novaria/internal/testutil"
)

func newTestHandler(t *testing.T) (*articles.Handler, *testutil.Fixtures) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	return articles.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestServeCreateAndGet(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"title":"The First War","body":"It began quietly.","kind":"lore","published":true}`
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/api/articles", body, testutil.Admin("uid-admin"))
	rec := httptest.NewRecorder()
	h.ServeCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	var a models.Article
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if a.Slug != "the-first-war" {
		t.Errorf("slug = %q", a.Slug)
	}
	// Plain text bodies are wrapped as HTML for display.
	if !strings.Contains(a.Body, "<p>") {
		t.Errorf("body = %q, want HTML-wrapped plain text", a.Body)
	}

	get := testutil.NewJSONRequest(http.MethodGet, "/api/articles/"+a.Slug, "")
	get = testutil.WithChiURLParam(get, "slug", a.Slug)
	rec = httptest.NewRecorder()
	h.ServeGet(rec, get)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
}

func TestDraftsHiddenFromPublic(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"title":"Unfinished Patch Notes","body":"wip","kind":"news","published":false}`
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/api/articles", body, testutil.Admin("uid-admin"))
	rec := httptest.NewRecorder()
	h.ServeCreate(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	// Public get: 404.
	get := testutil.NewJSONRequest(http.MethodGet, "/api/articles/unfinished-patch-notes", "")
	get = testutil.WithChiURLParam(get, "slug", "unfinished-patch-notes")
	rec = httptest.NewRecorder()
	h.ServeGet(rec, get)
	if rec.Code != http.StatusNotFound {
		t.Errorf("public get of draft: status = %d, want 404", rec.Code)
	}

	// Admin get: 200.
	get = testutil.NewAuthenticatedRequest(http.MethodGet, "/api/articles/unfinished-patch-notes", "", testutil.Admin("uid-admin"))
	get = testutil.WithChiURLParam(get, "slug", "unfinished-patch-notes")
	rec = httptest.NewRecorder()
	h.ServeGet(rec, get)
	if rec.Code != http.StatusOK {
		t.Errorf("admin get of draft: status = %d, want 200", rec.Code)
	}
}

func TestServeListFiltersKind(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateArticle(ctx, "launch-day", "Launch Day", models.ArticleNews)
	fx.CreateArticle(ctx, "first-war", "The First War", models.ArticleLore)

	req := testutil.NewJSONRequest(http.MethodGet, "/api/articles?kind=news", "")
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string][]models.Article
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp["articles"]) != 1 || resp["articles"][0].Slug != "launch-day" {
		t.Errorf("news list = %+v", resp["articles"])
	}

	req = testutil.NewJSONRequest(http.MethodGet, "/api/articles?kind=gossip", "")
	rec = httptest.NewRecorder()
	h.ServeList(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad kind: status = %d, want 400", rec.Code)
	}
}

func TestServeUpdateAndDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateArticle(ctx, "patch-1-2", "Patch 1.2", models.ArticleNews)

	body := `{"title":"Patch 1.2.1","body":"Hotfix.","kind":"news","published":true}`
	req := testutil.NewAuthenticatedRequest(http.MethodPut, "/api/articles/patch-1-2", body, testutil.Admin("uid-admin"))
	req = testutil.WithChiURLParam(req, "slug", "patch-1-2")
	rec := httptest.NewRecorder()
	h.ServeUpdate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}

	req = testutil.NewAuthenticatedRequest(http.MethodDelete, "/api/articles/patch-1-2", "", testutil.Admin("uid-admin"))
	req = testutil.WithChiURLParam(req, "slug", "patch-1-2")
	rec = httptest.NewRecorder()
	h.ServeDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	req = testutil.NewAuthenticatedRequest(http.MethodDelete, "/api/articles/patch-1-2", "", testutil.Admin("uid-admin"))
	req = testutil.WithChiURLParam(req, "slug", "patch-1-2")
	rec = httptest.NewRecorder()
	h.ServeDelete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}
