// internal/app/store/memberships/lifecycle.go
package membershipstore

import (
	"context"
	"fmt"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/novariagames/novaria/internal/app/system/txn"
	"github.com/novariagames/novaria/internal/domain/models"
)

// CreateFaction creates a faction with the caller as owner. The faction
// document, the owner's member record, and the owner's profile pointer
// are written together; name and tag uniqueness rides on the folded
// unique indexes.
func (s *Store) CreateFaction(ctx context.Context, ownerUID string, f models.Faction) (models.Faction, error) {
	if f.RecruitmentMode == "" {
		f.RecruitmentMode = models.RecruitmentOpen
	}
	if !models.ValidRecruitmentMode(f.RecruitmentMode) {
		return models.Faction{}, ErrBadRecruitmentMode
	}

	now := time.Now().UTC()
	f.ID = primitive.NewObjectID()
	f.NameCI = text.Fold(f.Name)
	f.TagCI = text.Fold(f.Tag)
	f.OwnerUID = ownerUID
	f.MemberCount = 1
	f.CreatedAt = now
	f.UpdatedAt = now

	err := txn.WithTransaction(ctx, s.client, s.log, func(ctx context.Context) error {
		u, err := s.profile(ctx, ownerUID)
		if err != nil {
			return err
		}
		if u.FactionID != nil {
			return ErrAlreadyInFaction
		}

		if _, err := s.factions.InsertOne(ctx, f); err != nil {
			if wafflemongo.IsDup(err) {
				return ErrDuplicateFaction
			}
			return err
		}
		if err := s.insertMember(ctx, f, ownerUID, models.RoleOwner); err != nil {
			return err
		}
		return s.setFactionPointer(ctx, ownerUID, f)
	})
	if err != nil {
		return models.Faction{}, err
	}
	return f, nil
}

// Leave removes the caller from their faction. The owner cannot leave;
// they must transfer ownership or disband.
func (s *Store) Leave(ctx context.Context, uid string, factionID primitive.ObjectID) error {
	return txn.WithTransaction(ctx, s.client, s.log, func(ctx context.Context) error {
		if _, err := s.faction(ctx, factionID); err != nil {
			return err
		}

		var m models.FactionMember
		err := s.members.FindOne(ctx, bson.M{"faction_id": factionID, "uid": uid}).Decode(&m)
		if err != nil {
			return asMemberNotFound(err)
		}
		if m.Role == models.RoleOwner {
			return ErrOwnerCannotLeave
		}

		return s.removeMember(ctx, factionID, uid)
	})
}

// Kick removes a non-owner member at the owner's request.
func (s *Store) Kick(ctx context.Context, ownerUID string, factionID primitive.ObjectID, targetUID string) error {
	return txn.WithTransaction(ctx, s.client, s.log, func(ctx context.Context) error {
		f, err := s.faction(ctx, factionID)
		if err != nil {
			return err
		}
		if f.OwnerUID != ownerUID {
			return ErrNotOwner
		}
		if targetUID == f.OwnerUID {
			return ErrCannotTargetOwner
		}

		return s.removeMember(ctx, factionID, targetUID)
	})
}

// removeMember deletes the member record, clears the profile pointer,
// and decrements the count. The delete's DeletedCount is the arbiter
// when two removals race: exactly one sees 1, the other gets
// ErrMemberNotFound, and the count only moves once.
func (s *Store) removeMember(ctx context.Context, factionID primitive.ObjectID, uid string) error {
	res, err := s.members.DeleteOne(ctx, bson.M{"faction_id": factionID, "uid": uid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrMemberNotFound
	}

	if err := s.clearFactionPointer(ctx, uid); err != nil {
		return err
	}
	return s.bumpMemberCount(ctx, factionID, -1)
}

// TransferOwnership hands the faction to an existing member. The old
// owner stays on as a regular member.
func (s *Store) TransferOwnership(ctx context.Context, ownerUID string, factionID primitive.ObjectID, targetUID string) error {
	return txn.WithTransaction(ctx, s.client, s.log, func(ctx context.Context) error {
		f, err := s.faction(ctx, factionID)
		if err != nil {
			return err
		}
		if f.OwnerUID != ownerUID {
			return ErrNotOwner
		}
		if targetUID == ownerUID {
			return ErrCannotTargetOwner
		}

		var target models.FactionMember
		err = s.members.FindOne(ctx, bson.M{"faction_id": factionID, "uid": targetUID}).Decode(&target)
		if err != nil {
			return asMemberNotFound(err)
		}

		res, err := s.factions.UpdateOne(ctx,
			bson.M{"_id": factionID, "owner_uid": ownerUID},
			bson.M{"$set": bson.M{"owner_uid": targetUID, "updated_at": time.Now().UTC()}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotOwner
		}

		up, err := s.members.UpdateOne(ctx,
			bson.M{"faction_id": factionID, "uid": ownerUID, "role": models.RoleOwner},
			bson.M{"$set": bson.M{"role": models.RoleMember}})
		if err != nil {
			return err
		}
		if up.MatchedCount == 0 {
			return fmt.Errorf("faction %s: owner %s has no member record", factionID.Hex(), ownerUID)
		}

		up, err = s.members.UpdateOne(ctx,
			bson.M{"_id": target.ID},
			bson.M{"$set": bson.M{"role": models.RoleOwner}})
		if err != nil {
			return err
		}
		if up.MatchedCount == 0 {
			return ErrMemberNotFound
		}
		return nil
	})
}

// Disband deletes the faction and everything hanging off it: member
// records, pending applications, and every member's profile pointer.
// One transaction, no chunking; faction sizes here are far below any
// 16MB transaction concern.
func (s *Store) Disband(ctx context.Context, ownerUID string, factionID primitive.ObjectID) error {
	return txn.WithTransaction(ctx, s.client, s.log, func(ctx context.Context) error {
		f, err := s.faction(ctx, factionID)
		if err != nil {
			return err
		}
		if f.OwnerUID != ownerUID {
			return ErrNotOwner
		}

		if _, err := s.users.UpdateMany(ctx,
			bson.M{"faction_id": factionID},
			bson.M{
				"$unset": bson.M{"faction_id": "", "faction_tag": ""},
				"$set":   bson.M{"updated_at": time.Now().UTC()},
			}); err != nil {
			return err
		}
		if _, err := s.members.DeleteMany(ctx, bson.M{"faction_id": factionID}); err != nil {
			return err
		}
		if _, err := s.applications.DeleteMany(ctx, bson.M{"faction_id": factionID}); err != nil {
			return err
		}

		res, err := s.factions.DeleteOne(ctx, bson.M{"_id": factionID, "owner_uid": ownerUID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return ErrNotOwner
		}
		return nil
	})
}
