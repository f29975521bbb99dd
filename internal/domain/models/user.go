// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the per-user profile document. The _id is the uid issued by
// the external identity provider, not a Mongo-generated ObjectID.
//
// NOTE:
//   - FactionID/FactionTag form a denormalized back-reference kept in
//     sync by the membership store. FactionID is set iff a
//     FactionMember document with this uid exists. No other code path
//     may write these fields.
type User struct {
	UID           string              `bson:"_id" json:"uid"`
	DisplayName   string              `bson:"display_name" json:"display_name"`
	DisplayNameCI string              `bson:"display_name_ci" json:"-"` // lowercase, diacritics-stripped
	PhotoURL      string              `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	FactionID     *primitive.ObjectID `bson:"faction_id,omitempty" json:"faction_id,omitempty"`
	FactionTag    string              `bson:"faction_tag,omitempty" json:"faction_tag,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
