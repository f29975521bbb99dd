package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/novariagames/novaria/internal/domain/models"
)

// Fixtures provides helper methods for creating test data. Documents
// are inserted directly so store tests can set up arbitrary states,
// including ones the coordinator itself would refuse to create.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a profile document with no faction pointer.
func (f *Fixtures) CreateUser(ctx context.Context, uid, displayName string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		UID:           uid,
		DisplayName:   displayName,
		DisplayNameCI: text.Fold(displayName),
		PhotoURL:      "https://img.example.com/" + uid + ".png",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateFaction creates a faction with the given owner: the faction
// document, the owner's member document, and the owner's profile with
// the faction pointer set. MemberCount starts at 1.
func (f *Fixtures) CreateFaction(ctx context.Context, name, tag, ownerUID, mode string) models.Faction {
	f.t.Helper()

	now := time.Now().UTC()
	fac := models.Faction{
		ID:              primitive.NewObjectID(),
		Name:            name,
		NameCI:          text.Fold(name),
		Tag:             tag,
		TagCI:           text.Fold(tag),
		Description:     "A test faction.",
		OwnerUID:        ownerUID,
		RecruitmentMode: mode,
		MemberCount:     1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := f.db.Collection("factions").InsertOne(ctx, fac); err != nil {
		f.t.Fatalf("failed to create test faction: %v", err)
	}

	f.CreateUser(ctx, ownerUID, "Owner "+ownerUID)
	f.insertMember(ctx, fac, ownerUID, models.RoleOwner)
	return fac
}

// AddMember creates a profile for uid, a member document with the given
// role, sets the profile pointer, and bumps the faction's member count.
func (f *Fixtures) AddMember(ctx context.Context, fac models.Faction, uid, role string) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, uid, "Member "+uid)
	f.insertMember(ctx, fac, uid, role)

	if _, err := f.db.Collection("factions").UpdateByID(ctx, fac.ID,
		map[string]any{"$inc": map[string]any{"member_count": 1}}); err != nil {
		f.t.Fatalf("failed to bump member count: %v", err)
	}
	return u
}

func (f *Fixtures) insertMember(ctx context.Context, fac models.Faction, uid, role string) {
	f.t.Helper()

	m := models.FactionMember{
		ID:        primitive.NewObjectID(),
		FactionID: fac.ID,
		UID:       uid,
		Role:      role,
		JoinedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("faction_members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}

	if _, err := f.db.Collection("users").UpdateByID(ctx, uid, map[string]any{
		"$set": map[string]any{"faction_id": fac.ID, "faction_tag": fac.Tag},
	}); err != nil {
		f.t.Fatalf("failed to set profile faction pointer: %v", err)
	}
}

// CreateApplication creates a profile for uid plus a pending
// application to the faction.
func (f *Fixtures) CreateApplication(ctx context.Context, fac models.Faction, uid string) models.FactionApplication {
	f.t.Helper()

	u := f.CreateUser(ctx, uid, "Applicant "+uid)
	app := models.FactionApplication{
		ID:          primitive.NewObjectID(),
		FactionID:   fac.ID,
		UID:         uid,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		AppliedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("faction_applications").InsertOne(ctx, app); err != nil {
		f.t.Fatalf("failed to create test application: %v", err)
	}
	return app
}

// CreateArticle creates a published article.
func (f *Fixtures) CreateArticle(ctx context.Context, slug, title, kind string) models.Article {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Article{
		ID:        primitive.NewObjectID(),
		Slug:      slug,
		Title:     title,
		Body:      "<p>Body of " + title + "</p>",
		Kind:      kind,
		Published: true,
		AuthorUID: "uid-admin",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("articles").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test article: %v", err)
	}
	return a
}
