package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/inovatehub/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
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

// CreateUser inserts a user record as the identity service would have
// written it.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, userType string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		UserType:  userType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateParticipant creates a test participant user.
func (f *Fixtures) CreateParticipant(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, "participant")
}

// CreateOrganizer creates a test organizer user.
func (f *Fixtures) CreateOrganizer(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, "organizer")
}

// CreateHackathon inserts a hackathon owned by the given organizer.
func (f *Fixtures) CreateHackathon(ctx context.Context, name string, organizerID primitive.ObjectID) models.Hackathon {
	f.t.Helper()

	now := time.Now().UTC()
	h := models.Hackathon{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Description:  "A test hackathon",
		Theme:        "testing",
		LocationType: "online",
		Date:         "2026-10-01",
		TeamSize:     4,
		OrganizerID:  organizerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("hackathons").InsertOne(ctx, h); err != nil {
		f.t.Fatalf("failed to create test hackathon: %v", err)
	}
	return h
}

// Register inserts a registration for (hackathon, user).
func (f *Fixtures) Register(ctx context.Context, hackathonID, userID primitive.ObjectID) models.Registration {
	f.t.Helper()

	now := time.Now().UTC()
	reg := models.Registration{
		ID:          primitive.NewObjectID(),
		HackathonID: hackathonID,
		UserID:      userID,
		Status:      "confirmed",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("registrations").InsertOne(ctx, reg); err != nil {
		f.t.Fatalf("failed to create test registration: %v", err)
	}
	return reg
}

// CreateJoinRequest inserts a pending join request or invitation.
func (f *Fixtures) CreateJoinRequest(ctx context.Context, hackathonID, teamID, userID primitive.ObjectID, invitedByLeader bool) models.JoinRequest {
	f.t.Helper()

	now := time.Now().UTC()
	r := models.JoinRequest{
		ID:              primitive.NewObjectID(),
		HackathonID:     hackathonID,
		TeamID:          teamID,
		UserID:          userID,
		Status:          models.RequestPending,
		InvitedByLeader: invitedByLeader,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := f.db.Collection("join_requests").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test join request: %v", err)
	}
	return r
}

// CreateTeam inserts a team led by leaderID with the given extra members.
func (f *Fixtures) CreateTeam(ctx context.Context, hackathonID primitive.ObjectID, name, code string, leaderID primitive.ObjectID, members ...primitive.ObjectID) models.Team {
	f.t.Helper()

	now := time.Now().UTC()
	team := models.Team{
		ID:          primitive.NewObjectID(),
		HackathonID: hackathonID,
		Name:        name,
		NameCI:      text.Fold(name),
		Code:        code,
		LeaderID:    leaderID,
		Members:     append([]primitive.ObjectID{leaderID}, members...),
		MaxMembers:  5,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	return team
}
