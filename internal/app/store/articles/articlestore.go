// internal/app/store/articles/articlestore.go
package articlestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/novariagames/novaria/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrDuplicateSlug   = errors.New("an article with this slug already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("articles")}
}

// Create inserts a new article. The slug is derived from the title
// unless the caller supplies one explicitly.
func (s *Store) Create(ctx context.Context, a models.Article) (models.Article, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	if a.Slug == "" {
		a.Slug = slug.Make(a.Title)
	} else {
		a.Slug = slug.Make(a.Slug)
	}
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Article{}, ErrDuplicateSlug
		}
		return models.Article{}, err
	}
	return a, nil
}

// Update rewrites the mutable fields of an existing article. The slug
// is immutable once created so published URLs stay stable.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, title, body, kind string, published bool) (models.Article, error) {
	update := bson.M{"$set": bson.M{
		"title":      title,
		"body":       body,
		"kind":       kind,
		"published":  published,
		"updated_at": time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var a models.Article
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Article{}, ErrArticleNotFound
		}
		return models.Article{}, err
	}
	return a, nil
}

// Delete removes an article.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrArticleNotFound
	}
	return nil
}

// GetBySlug loads one article by slug. Unpublished articles are only
// returned when includeUnpublished is set (admin views).
func (s *Store) GetBySlug(ctx context.Context, slugStr string, includeUnpublished bool) (models.Article, error) {
	filter := bson.M{"slug": slugStr}
	if !includeUnpublished {
		filter["published"] = true
	}

	var a models.Article
	if err := s.c.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Article{}, ErrArticleNotFound
		}
		return models.Article{}, err
	}
	return a, nil
}

// List returns articles newest-first, optionally filtered by kind.
func (s *Store) List(ctx context.Context, kind string, includeUnpublished bool, limit int64) ([]models.Article, error) {
	filter := bson.M{}
	if kind != "" {
		filter["kind"] = kind
	}
	if !includeUnpublished {
		filter["published"] = true
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Article
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
