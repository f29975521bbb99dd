// internal/app/store/memberships/view.go
package membershipstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/novariagames/novaria/internal/domain/models"
)

// MemberView is a member record joined with live profile display
// fields at read time, so renamed players show their current name.
type MemberView struct {
	UID         string    `json:"uid"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url,omitempty"`
}

// View is the full faction detail page payload. Applications is only
// populated when the caller owns the faction.
type View struct {
	Faction      models.Faction              `json:"faction"`
	Members      []MemberView                `json:"members"`
	Applications []models.FactionApplication `json:"applications,omitempty"`
}

// FactionView assembles the faction detail: the faction document, its
// roster in join order with current profile data, and (for the owner)
// the pending applications oldest-first. callerUID may be empty for
// anonymous readers.
func (s *Store) FactionView(ctx context.Context, callerUID string, factionID primitive.ObjectID) (View, error) {
	f, err := s.faction(ctx, factionID)
	if err != nil {
		return View{}, err
	}

	cur, err := s.members.Find(ctx,
		bson.M{"faction_id": factionID},
		options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return View{}, err
	}
	var members []models.FactionMember
	if err := cur.All(ctx, &members); err != nil {
		return View{}, err
	}

	uids := make([]string, 0, len(members))
	for _, m := range members {
		uids = append(uids, m.UID)
	}
	profiles, err := s.profilesByUID(ctx, uids)
	if err != nil {
		return View{}, err
	}

	view := View{Faction: f, Members: make([]MemberView, 0, len(members))}
	for _, m := range members {
		mv := MemberView{
			UID:      m.UID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
		if p, ok := profiles[m.UID]; ok {
			mv.DisplayName = p.DisplayName
			mv.PhotoURL = p.PhotoURL
		}
		view.Members = append(view.Members, mv)
	}

	if callerUID != "" && callerUID == f.OwnerUID {
		cur, err := s.applications.Find(ctx,
			bson.M{"faction_id": factionID},
			options.Find().SetSort(bson.D{{Key: "applied_at", Value: 1}}))
		if err != nil {
			return View{}, err
		}
		if err := cur.All(ctx, &view.Applications); err != nil {
			return View{}, err
		}
	}
	return view, nil
}

func (s *Store) profilesByUID(ctx context.Context, uids []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(uids))
	if len(uids) == 0 {
		return out, nil
	}

	cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": uids}})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.UID] = u
	}
	return out, nil
}
