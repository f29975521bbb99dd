// internal/domain/models/faction.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recruitment modes for a faction.
const (
	RecruitmentOpen        = "open"        // anyone may join instantly
	RecruitmentApplication = "application" // owner must approve each applicant
)

// Member roles within a faction.
const (
	RoleOwner   = "owner"
	RoleOfficer = "officer"
	RoleMember  = "member"
)

// Faction is the root document of the membership aggregate.
//
// NOTE:
//   - MemberCount is denormalized and must equal the number of
//     faction_members documents for this faction at all times. It is
//     only ever written inside the same transaction that adds or
//     removes a member document.
//   - OwnerUID always matches the single member carrying RoleOwner.
type Faction struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Tag         string             `bson:"tag" json:"tag"`
	TagCI       string             `bson:"tag_ci" json:"-"`
	Description string             `bson:"description" json:"description"`

	OwnerUID        string `bson:"owner_uid" json:"owner_uid"`
	RecruitmentMode string `bson:"recruitment_mode" json:"recruitment_mode"`
	MemberCount     int    `bson:"member_count" json:"member_count"`
	MaxMembers      int    `bson:"max_members,omitempty" json:"max_members,omitempty"` // advisory cap, not enforced

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidRecruitmentMode reports whether mode is a known recruitment mode.
func ValidRecruitmentMode(mode string) bool {
	return mode == RecruitmentOpen || mode == RecruitmentApplication
}
