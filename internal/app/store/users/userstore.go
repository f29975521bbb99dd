// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/novariagames/novaria/internal/domain/models"
)

// Store reads and writes the per-user profile documents. The faction
// back-reference fields (faction_id/faction_tag) are owned by the
// membership store and are deliberately not writable from here.
type Store struct {
	c *mongo.Collection
}

var ErrUserNotFound = errors.New("user not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByUID loads a profile by the identity provider's uid.
func (s *Store) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": uid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpsertProfile creates or updates the caller's display fields. First
// write wins the created_at stamp; faction fields are untouched.
func (s *Store) UpsertProfile(ctx context.Context, uid, displayName, photoURL string) (*models.User, error) {
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"display_name":    displayName,
			"display_name_ci": text.Fold(displayName),
			"photo_url":       photoURL,
			"updated_at":      now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u models.User
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": uid}, update, opts).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}
