package messagestore_test

import (
	"fmt"
	"testing"
	"time"

	messagestore "github.com/inovatehub/hackhub/internal/app/store/messages"
	"github.com/inovatehub/hackhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Append(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	leader := fixtures.CreateParticipant(ctx, "Leader", "leader@test.com")
	team := fixtures.CreateTeam(ctx, hack.ID, "Byte Bandits", "AAAAAA", leader.ID)

	msg, err := store.Append(ctx, hack.ID, team.ID, leader.ID, "standup at 9")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if msg.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if msg.SenderID != leader.ID {
		t.Errorf("SenderID: got %v, want %v", msg.SenderID, leader.ID)
	}
	if msg.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_ListRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	leader := fixtures.CreateParticipant(ctx, "Leader", "leader@test.com")
	team := fixtures.CreateTeam(ctx, hack.ID, "Byte Bandits", "AAAAAA", leader.ID)
	otherTeam := fixtures.CreateTeam(ctx, hack.ID, "Other Team", "BBBBBB", org.ID)

	for i := 0; i < 3; i++ {
		if _, err := store.Append(ctx, hack.ID, team.ID, leader.ID, fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	if _, err := store.Append(ctx, hack.ID, otherTeam.ID, org.ID, "elsewhere"); err != nil {
		t.Fatalf("Append to other team failed: %v", err)
	}

	got, err := store.ListRecent(ctx, team.ID)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	// Newest first.
	if got[0].Message != "msg 2" || got[2].Message != "msg 0" {
		t.Errorf("wrong order: first %q, last %q", got[0].Message, got[2].Message)
	}
}

func TestStore_ListRecent_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	leader := fixtures.CreateParticipant(ctx, "Leader", "leader@test.com")
	team := fixtures.CreateTeam(ctx, hack.ID, "Byte Bandits", "AAAAAA", leader.ID)

	for i := 0; i < messagestore.PageSize+5; i++ {
		if _, err := store.Append(ctx, hack.ID, team.ID, leader.ID, fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
	}

	got, err := store.ListRecent(ctx, team.ID)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(got) != messagestore.PageSize {
		t.Errorf("expected %d messages, got %d", messagestore.PageSize, len(got))
	}
}

func TestStore_DeleteByHackathon(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	other := fixtures.CreateHackathon(ctx, "Other Hackathon", org.ID)
	leader := fixtures.CreateParticipant(ctx, "Leader", "leader@test.com")
	team := fixtures.CreateTeam(ctx, hack.ID, "Team A", "AAAAAA", leader.ID)
	otherTeam := fixtures.CreateTeam(ctx, other.ID, "Team B", "BBBBBB", leader.ID)

	if _, err := store.Append(ctx, hack.ID, team.ID, leader.ID, "going away"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := store.Append(ctx, other.ID, otherTeam.ID, leader.ID, "staying"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	n, err := store.DeleteByHackathon(ctx, hack.ID)
	if err != nil {
		t.Fatalf("DeleteByHackathon failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted count: got %d, want 1", n)
	}

	kept, err := store.ListRecent(ctx, otherTeam.ID)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(kept) != 1 {
		t.Errorf("messages in other hackathon should survive, got %d", len(kept))
	}
}
