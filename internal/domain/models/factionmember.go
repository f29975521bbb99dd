// internal/domain/models/factionmember.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FactionMember is the authoritative join between users and factions.
// Exactly one document per (faction_id, uid); a uid appears in at most
// one faction globally (unique index on uid).
type FactionMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FactionID primitive.ObjectID `bson:"faction_id" json:"faction_id"`
	UID       string             `bson:"uid" json:"uid"`
	Role      string             `bson:"role" json:"role"` // "owner" | "officer" | "member"
	JoinedAt  time.Time          `bson:"joined_at" json:"joined_at"`
}
