// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Index creation is idempotent: creating
an index that already exists with the same keys and options is a no-op.
Errors are aggregated so every problem is visible and startup can fail
fast.

The unique indexes here are the backstop for the membership invariants:
a uid can hold at most one member document and at most one pending
application across all factions, and at most one of each per faction.
The membership transactions enforce the same rules; the indexes make
sure a bug or a non-transactional fallback cannot corrupt the data.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	ensure := func(coll string, models []mongo.IndexModel) {
		if len(models) == 0 {
			return
		}
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		logger.Debug("indexes ensured", zap.String("collection", coll), zap.Int("count", len(models)))
	}

	unique := options.Index().SetUnique(true)

	ensure("users", []mongo.IndexModel{
		{Keys: bson.D{{Key: "faction_id", Value: 1}}},
		{Keys: bson.D{{Key: "display_name_ci", Value: 1}}},
	})

	ensure("factions", []mongo.IndexModel{
		{Keys: bson.D{{Key: "name_ci", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "tag_ci", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})

	ensure("faction_members", []mongo.IndexModel{
		// One faction per user, globally.
		{Keys: bson.D{{Key: "uid", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "faction_id", Value: 1}, {Key: "uid", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "faction_id", Value: 1}, {Key: "joined_at", Value: 1}}},
	})

	ensure("faction_applications", []mongo.IndexModel{
		// One pending application per user, globally.
		{Keys: bson.D{{Key: "uid", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "faction_id", Value: 1}, {Key: "uid", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "faction_id", Value: 1}, {Key: "applied_at", Value: 1}}},
	})

	ensure("articles", []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "published", Value: 1}, {Key: "created_at", Value: -1}}},
	})

	ensure("feedback", []mongo.IndexModel{
		{Keys: bson.D{{Key: "reference", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
