// internal/app/store/memberships/membershipstore.go
package membershipstore

// Terminology:
//   - uid: the external identity provider's stable user identifier
//     (string, also the _id of the users collection)
//   - faction ID: the Mongo ObjectID of the faction document
//
// This store is the only code allowed to write membership state: the
// faction document's owner/count fields, the faction_members and
// faction_applications collections, and the faction_id/faction_tag
// back-reference on user profiles. Every mutation here commits as one
// transaction so the three stores move together or not at all.

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/novariagames/novaria/internal/app/system/txn"
	"github.com/novariagames/novaria/internal/domain/models"
)

type Store struct {
	client       *mongo.Client
	factions     *mongo.Collection
	members      *mongo.Collection
	applications *mongo.Collection
	users        *mongo.Collection
	log          *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		client:       db.Client(),
		factions:     db.Collection("factions"),
		members:      db.Collection("faction_members"),
		applications: db.Collection("faction_applications"),
		users:        db.Collection("users"),
		log:          logger,
	}
}

var (
	ErrFactionNotFound     = errors.New("faction not found")
	ErrAlreadyInFaction    = errors.New("user already belongs to a faction")
	ErrAlreadyApplied      = errors.New("user already has a pending application")
	ErrApplicationNotFound = errors.New("application not found")
	ErrMemberNotFound      = errors.New("member not found in this faction")
	ErrNotOwner            = errors.New("only the faction owner may do this")
	ErrOwnerCannotLeave    = errors.New("the owner cannot leave; transfer ownership or disband instead")
	ErrCannotTargetOwner   = errors.New("the owner cannot be the target of this action")
	ErrDuplicateFaction    = errors.New("a faction with this name or tag already exists")
	ErrBadRecruitmentMode  = errors.New(`recruitment mode must be "open" or "application"`)
)

/*─────────────────────────────────────────────────────────────────────────────*
| Shared lookups (run inside the caller's transaction context)                |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Store) faction(ctx context.Context, id primitive.ObjectID) (models.Faction, error) {
	var f models.Faction
	if err := s.factions.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Faction{}, ErrFactionNotFound
		}
		return models.Faction{}, err
	}
	return f, nil
}

// profile loads a user document; a missing profile is not an error
// (a verified uid may not have visited the site yet).
func (s *Store) profile(ctx context.Context, uid string) (models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"_id": uid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{UID: uid}, nil
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// setFactionPointer writes the profile back-reference. Upserts so a
// join works even before the user's first profile save.
func (s *Store) setFactionPointer(ctx context.Context, uid string, f models.Faction) error {
	now := time.Now().UTC()
	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{
			"$set":         bson.M{"faction_id": f.ID, "faction_tag": f.Tag, "updated_at": now},
			"$setOnInsert": bson.M{"display_name": "", "display_name_ci": "", "created_at": now},
		},
		options.Update().SetUpsert(true))
	return err
}

func (s *Store) clearFactionPointer(ctx context.Context, uid string) error {
	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{
			"$unset": bson.M{"faction_id": "", "faction_tag": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

func (s *Store) bumpMemberCount(ctx context.Context, factionID primitive.ObjectID, delta int) error {
	_, err := s.factions.UpdateByID(ctx, factionID, bson.M{
		"$inc": bson.M{"member_count": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

func asMemberNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrMemberNotFound
	}
	return err
}

/*─────────────────────────────────────────────────────────────────────────────*
| Join / apply                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// JoinOrApply is the single entry point for a user trying to get into
// a faction. Open factions admit immediately; application factions get
// a pending application carrying a snapshot of the caller's profile.
// Returns joined=true only on the immediate-admit path.
func (s *Store) JoinOrApply(ctx context.Context, uid string, factionID primitive.ObjectID) (joined bool, err error) {
	err = txn.WithTransaction(ctx, s.client, s.log, func(ctx context.Context) error {
		f, err := s.faction(ctx, factionID)
		if err != nil {
			return err
		}

		u, err := s.profile(ctx, uid)
		if err != nil {
			return err
		}
		if u.FactionID != nil {
			return ErrAlreadyInFaction
		}

		if f.RecruitmentMode == models.RecruitmentOpen {
			// A pending application to this faction is superseded by
			// the join (the mode may have switched since it was filed).
			if _, err := s.applications.DeleteOne(ctx, bson.M{"faction_id": f.ID, "uid": uid}); err != nil {
				return err
			}
			if err := s.insertMember(ctx, f, uid, models.RoleMember); err != nil {
				return err
			}
			if err := s.setFactionPointer(ctx, uid, f); err != nil {
				return err
			}
			if err := s.bumpMemberCount(ctx, f.ID, 1); err != nil {
				return err
			}
			joined = true
			return nil
		}

		app := models.FactionApplication{
			ID:          primitive.NewObjectID(),
			FactionID:   f.ID,
			UID:         uid,
			DisplayName: u.DisplayName,
			PhotoURL:    u.PhotoURL,
			AppliedAt:   time.Now().UTC(),
		}
		if _, err := s.applications.InsertOne(ctx, app); err != nil {
			if wafflemongo.IsDup(err) {
				return ErrAlreadyApplied
			}
			return err
		}
		return nil
	})
	return joined, err
}

// insertMember creates the member document. The unique index on uid
// turns a lost race into a duplicate-key error here.
func (s *Store) insertMember(ctx context.Context, f models.Faction, uid, role string) error {
	m := models.FactionMember{
		ID:        primitive.NewObjectID(),
		FactionID: f.ID,
		UID:       uid,
		Role:      role,
		JoinedAt:  time.Now().UTC(),
	}
	if _, err := s.members.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrAlreadyInFaction
		}
		return err
	}
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Application decisions (owner only)                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// ApproveApplication promotes a pending application to membership.
// If the target joined another faction while the application was
// pending, the approval fails with ErrAlreadyInFaction and the
// application stays pending for the owner to reject explicitly.
func (s *Store) ApproveApplication(ctx context.Context, ownerUID string, factionID primitive.ObjectID, targetUID string) error {
	return txn.WithTransaction(ctx, s.client, s.log, func(ctx context.Context) error {
		f, err := s.faction(ctx, factionID)
		if err != nil {
			return err
		}
		if f.OwnerUID != ownerUID {
			return ErrNotOwner
		}

		res, err := s.applications.DeleteOne(ctx, bson.M{"faction_id": f.ID, "uid": targetUID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return ErrApplicationNotFound
		}

		target, err := s.profile(ctx, targetUID)
		if err != nil {
			return err
		}
		if target.FactionID != nil {
			return ErrAlreadyInFaction
		}

		if err := s.insertMember(ctx, f, targetUID, models.RoleMember); err != nil {
			return err
		}
		if err := s.setFactionPointer(ctx, targetUID, f); err != nil {
			return err
		}
		return s.bumpMemberCount(ctx, f.ID, 1)
	})
}

// RejectApplication deletes a pending application. The owner check and
// the delete run in one transaction so a concurrent ownership transfer
// cannot slip in between them.
func (s *Store) RejectApplication(ctx context.Context, ownerUID string, factionID primitive.ObjectID, targetUID string) error {
	return txn.WithTransaction(ctx, s.client, s.log, func(ctx context.Context) error {
		f, err := s.faction(ctx, factionID)
		if err != nil {
			return err
		}
		if f.OwnerUID != ownerUID {
			return ErrNotOwner
		}

		res, err := s.applications.DeleteOne(ctx, bson.M{"faction_id": f.ID, "uid": targetUID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return ErrApplicationNotFound
		}
		return nil
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Recruitment mode (owner only)                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// SetRecruitmentMode updates the faction's recruitment policy.
// Switching from application to open does NOT auto-approve pending
// applications; the owner decides each one explicitly.
func (s *Store) SetRecruitmentMode(ctx context.Context, ownerUID string, factionID primitive.ObjectID, mode string) error {
	if !models.ValidRecruitmentMode(mode) {
		return ErrBadRecruitmentMode
	}

	if _, err := s.faction(ctx, factionID); err != nil {
		return err
	}

	// The owner_uid filter makes the owner check and the write one
	// atomic step, so a concurrent ownership transfer cannot slip in
	// between.
	res, err := s.factions.UpdateOne(ctx,
		bson.M{"_id": factionID, "owner_uid": ownerUID},
		bson.M{"$set": bson.M{"recruitment_mode": mode, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotOwner
	}
	return nil
}
