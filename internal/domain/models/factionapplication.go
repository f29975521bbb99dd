// internal/domain/models/factionapplication.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FactionApplication is a pending join request for an application-mode
// faction. DisplayName and PhotoURL are snapshots of the applicant's
// profile at application time so the owner's review list stays stable
// even if the profile changes afterward.
//
// A uid holds at most one pending application globally (unique index on
// uid); approval promotes the document to a FactionMember, rejection
// deletes it outright.
type FactionApplication struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FactionID   primitive.ObjectID `bson:"faction_id" json:"faction_id"`
	UID         string             `bson:"uid" json:"uid"`
	DisplayName string             `bson:"display_name" json:"display_name"`
	PhotoURL    string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	AppliedAt   time.Time          `bson:"applied_at" json:"applied_at"`
}
