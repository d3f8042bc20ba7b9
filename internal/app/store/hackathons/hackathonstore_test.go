package hackathonstore_test

import (
	"errors"
	"testing"
	"time"

	hackathonstore "github.com/inovatehub/hackhub/internal/app/store/hackathons"
	"github.com/inovatehub/hackhub/internal/domain/models"
	"github.com/inovatehub/hackhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := hackathonstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")

	created, err := store.Create(ctx, models.Hackathon{
		Name:         "Spring Jam",
		Theme:        "climate",
		LocationType: "online",
		Date:         "2026-10-01",
		TeamSize:     4,
		OrganizerID:  org.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Spring Jam" {
		t.Errorf("name: got %q", got.Name)
	}

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := hackathonstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")

	older := fixtures.CreateHackathon(ctx, "Older", org.ID)
	time.Sleep(5 * time.Millisecond)
	newer := fixtures.CreateHackathon(ctx, "Newer", org.ID)

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hackathons, got %d", len(got))
	}
	if got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Errorf("wrong order: got %q then %q", got[0].Name, got[1].Name)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := hackathonstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Doomed", org.ID)

	n, err := store.Delete(ctx, hack.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted count: got %d, want 1", n)
	}

	n, err = store.Delete(ctx, hack.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("second delete count: got %d, want 0", n)
	}
}

func TestStore_NamesByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := hackathonstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	spring := fixtures.CreateHackathon(ctx, "Spring Jam", org.ID)
	autumn := fixtures.CreateHackathon(ctx, "Autumn Jam", org.ID)
	missing := primitive.NewObjectID()

	names, err := store.NamesByIDs(ctx, []primitive.ObjectID{spring.ID, autumn.ID, missing})
	if err != nil {
		t.Fatalf("NamesByIDs failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(names))
	}
	if names[spring.ID] != "Spring Jam" || names[autumn.ID] != "Autumn Jam" {
		t.Errorf("wrong names: %v", names)
	}
	if _, ok := names[missing]; ok {
		t.Error("unknown ID should be absent from result")
	}

	names, err = store.NamesByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("NamesByIDs with no IDs failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected empty map, got %v", names)
	}
}
