package articlestore_test

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	articlestore "github.com/novariagames/novaria/internal/app/store/articles"
	"github.com/novariagames/novaria/internal/app/system/indexes"
	"github.com/novariagames/novaria/internal/domain/models"
	"github.com/novariagames/novaria/internal/testutil"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	store := articlestore.New(db)

	a, err := store.Create(ctx, models.Article{
		Title:     "The Fall of the Outer Rim",
		Body:      "<p>It began quietly.</p>",
		Kind:      models.ArticleLore,
		Published: true,
		AuthorUID: "uid-admin",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Slug != "the-fall-of-the-outer-rim" {
		t.Errorf("slug = %q, want slug derived from title", a.Slug)
	}

	got, err := store.GetBySlug(ctx, a.Slug, false)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.Title != a.Title {
		t.Errorf("title = %q, want %q", got.Title, a.Title)
	}

	_, err = store.Create(ctx, models.Article{Title: "The Fall of the Outer Rim", Kind: models.ArticleLore})
	if !errors.Is(err, articlestore.ErrDuplicateSlug) {
		t.Fatalf("duplicate slug: err = %v, want ErrDuplicateSlug", err)
	}
}

func TestUnpublishedHiddenFromPublicReads(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := articlestore.New(db)

	a, err := store.Create(ctx, models.Article{
		Title: "Patch Notes Draft",
		Kind:  models.ArticleNews,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := store.GetBySlug(ctx, a.Slug, false); !errors.Is(err, articlestore.ErrArticleNotFound) {
		t.Errorf("public read of draft: err = %v, want ErrArticleNotFound", err)
	}
	if _, err := store.GetBySlug(ctx, a.Slug, true); err != nil {
		t.Errorf("admin read of draft: %v", err)
	}

	list, err := store.List(ctx, "", false, 50)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("public list has %d articles, want 0", len(list))
	}
	list, err = store.List(ctx, "", true, 50)
	if err != nil {
		t.Fatalf("List (admin): %v", err)
	}
	if len(list) != 1 {
		t.Errorf("admin list has %d articles, want 1", len(list))
	}
}

func TestUpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := articlestore.New(db)

	a, err := store.Create(ctx, models.Article{Title: "Patch 1.2", Kind: models.ArticleNews})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	up, err := store.Update(ctx, a.ID, "Patch 1.2.1", "<p>Hotfix.</p>", models.ArticleNews, true)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if up.Title != "Patch 1.2.1" || !up.Published {
		t.Errorf("update did not apply: %+v", up)
	}
	if up.Slug != a.Slug {
		t.Errorf("slug changed on update: %q -> %q", a.Slug, up.Slug)
	}

	if err := store.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, a.ID); !errors.Is(err, articlestore.ErrArticleNotFound) {
		t.Fatalf("second delete: err = %v, want ErrArticleNotFound", err)
	}
}

func TestListByKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateArticle(ctx, "launch-day", "Launch Day", models.ArticleNews)
	fx.CreateArticle(ctx, "first-war", "The First War", models.ArticleLore)

	store := articlestore.New(db)

	news, err := store.List(ctx, models.ArticleNews, false, 50)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(news) != 1 || news[0].Slug != "launch-day" {
		t.Errorf("news list = %+v, want just launch-day", news)
	}
}
