// internal/app/store/factions/factionstore.go
package factionstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/novariagames/novaria/internal/domain/models"
)

// Store covers read access to faction documents. All writes that touch
// membership state — including faction creation and deletion — go
// through the membership store so they stay inside one transaction.
type Store struct {
	c *mongo.Collection
}

var ErrFactionNotFound = errors.New("faction not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("factions")}
}

// GetByID loads a faction by its ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Faction, error) {
	var f models.Faction
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Faction{}, ErrFactionNotFound
		}
		return models.Faction{}, err
	}
	return f, nil
}

// List returns factions newest-first, capped at limit.
func (s *Store) List(ctx context.Context, limit int64) ([]models.Faction, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Faction
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
