package registrations_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inovatehub/hackhub/internal/app/features/registrations"
	"github.com/inovatehub/hackhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*registrations.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := registrations.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestHandleRegister_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	user := fixtures.CreateParticipant(ctx, "Alice", "alice@test.com")

	req := testutil.NewAuthenticatedRequest("POST", "/hackathons/"+hack.ID.Hex()+"/register", nil, testutil.AsTestUser(user.ID, "Alice"))
	req = testutil.WithChiURLParam(req, "hackathonID", hack.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleRegister(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	count, err := fixtures.DB().Collection("registrations").CountDocuments(ctx,
		bson.M{"hackathon_id": hack.ID, "user_id": user.ID, "status": "confirmed"})
	if err != nil {
		t.Fatalf("count registrations: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 registration, got %d", count)
	}
}

func TestHandleRegister_Idempotent(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	user := fixtures.CreateParticipant(ctx, "Alice", "alice@test.com")

	register := func() *httptest.ResponseRecorder {
		req := testutil.NewAuthenticatedRequest("POST", "/hackathons/"+hack.ID.Hex()+"/register", nil, testutil.AsTestUser(user.ID, "Alice"))
		req = testutil.WithChiURLParam(req, "hackathonID", hack.ID.Hex())
		rec := httptest.NewRecorder()
		handler.HandleRegister(rec, req)
		return rec
	}

	if rec := register(); rec.Code != http.StatusOK {
		t.Fatalf("first register: expected %d, got %d", http.StatusOK, rec.Code)
	}
	if rec := register(); rec.Code != http.StatusOK {
		t.Fatalf("second register: expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	count, err := fixtures.DB().Collection("registrations").CountDocuments(ctx,
		bson.M{"hackathon_id": hack.ID, "user_id": user.ID})
	if err != nil {
		t.Fatalf("count registrations: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 registration after double register, got %d", count)
	}
}

func TestHandleRegister_UnknownHackathon(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateParticipant(ctx, "Alice", "alice@test.com")
	missing := primitive.NewObjectID()

	req := testutil.NewAuthenticatedRequest("POST", "/hackathons/"+missing.Hex()+"/register", nil, testutil.AsTestUser(user.ID, "Alice"))
	req = testutil.WithChiURLParam(req, "hackathonID", missing.Hex())

	rec := httptest.NewRecorder()
	handler.HandleRegister(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestServeMine(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	spring := fixtures.CreateHackathon(ctx, "Spring Jam", org.ID)
	autumn := fixtures.CreateHackathon(ctx, "Autumn Jam", org.ID)
	user := fixtures.CreateParticipant(ctx, "Alice", "alice@test.com")
	other := fixtures.CreateParticipant(ctx, "Bob", "bob@test.com")

	fixtures.Register(ctx, spring.ID, user.ID)
	time.Sleep(5 * time.Millisecond)
	fixtures.Register(ctx, autumn.ID, user.ID)
	fixtures.Register(ctx, spring.ID, other.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/registrations", nil, testutil.AsTestUser(user.ID, "Alice"))
	rec := httptest.NewRecorder()
	handler.ServeMine(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Registrations []struct {
			HackathonID   string `json:"hackathon_id"`
			HackathonName string `json:"hackathon_name"`
			Status        string `json:"status"`
		} `json:"registrations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Registrations) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(resp.Registrations))
	}
	if resp.Registrations[0].HackathonName != "Autumn Jam" || resp.Registrations[1].HackathonName != "Spring Jam" {
		t.Errorf("wrong order or names: %+v", resp.Registrations)
	}
	for _, reg := range resp.Registrations {
		if reg.Status != "confirmed" {
			t.Errorf("status: got %q, want %q", reg.Status, "confirmed")
		}
	}
}

func TestServeMine_Unauthenticated(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.NewRequest("GET", "/registrations", nil)
	rec := httptest.NewRecorder()
	handler.ServeMine(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}
