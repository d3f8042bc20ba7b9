package teams_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inovatehub/hackhub/internal/app/features/teams"
	"github.com/inovatehub/hackhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*teams.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := teams.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestHandleCreate_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	leader := fixtures.CreateParticipant(ctx, "Leader", "leader@test.com")
	fixtures.Register(ctx, hack.ID, leader.ID)

	body := strings.NewReader(`{"name": "Byte Bandits", "description": "we ship"}`)
	req := testutil.NewAuthenticatedRequest("POST", "/hackathons/"+hack.ID.Hex()+"/teams", body, testutil.AsTestUser(leader.ID, "Leader"))
	req = testutil.WithChiURLParam(req, "hackathonID", hack.ID.Hex())
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp struct {
		Team teams.TeamView `json:"team"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Team.Name != "Byte Bandits" {
		t.Errorf("name: got %q", resp.Team.Name)
	}
	if resp.Team.Code == "" {
		t.Error("creator should see the join code")
	}
	if len(resp.Team.Members) != 1 || !resp.Team.Members[0].Leader {
		t.Errorf("expected the creator as sole leader member, got %+v", resp.Team.Members)
	}

	count, err := fixtures.DB().Collection("teams").CountDocuments(ctx, bson.M{"name": "Byte Bandits"})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 team, got %d", count)
	}
}

func TestHandleCreate_NotRegistered(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	user := fixtures.CreateParticipant(ctx, "User", "user@test.com")

	body := strings.NewReader(`{"name": "Byte Bandits"}`)
	req := testutil.NewAuthenticatedRequest("POST", "/hackathons/"+hack.ID.Hex()+"/teams", body, testutil.AsTestUser(user.ID, "User"))
	req = testutil.WithChiURLParam(req, "hackathonID", hack.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestHandleCreate_DuplicateName(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	first := fixtures.CreateParticipant(ctx, "First", "first@test.com")
	second := fixtures.CreateParticipant(ctx, "Second", "second@test.com")
	fixtures.Register(ctx, hack.ID, second.ID)
	fixtures.CreateTeam(ctx, hack.ID, "Byte Bandits", "AAAAAA", first.ID)

	body := strings.NewReader(`{"name": "byte bandits"}`)
	req := testutil.NewAuthenticatedRequest("POST", "/hackathons/"+hack.ID.Hex()+"/teams", body, testutil.AsTestUser(second.ID, "Second"))
	req = testutil.WithChiURLParam(req, "hackathonID", hack.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d: %s", http.StatusConflict, rec.Code, rec.Body.String())
	}
}

func TestHandleCreate_EmptyName(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	user := fixtures.CreateParticipant(ctx, "User", "user@test.com")
	fixtures.Register(ctx, hack.ID, user.ID)

	// HTML-only names sanitize to empty and are rejected.
	body := strings.NewReader(`{"name": "<b></b>  "}`)
	req := testutil.NewAuthenticatedRequest("POST", "/hackathons/"+hack.ID.Hex()+"/teams", body, testutil.AsTestUser(user.ID, "User"))
	req = testutil.WithChiURLParam(req, "hackathonID", hack.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandleJoin_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	leader := fixtures.CreateParticipant(ctx, "Leader", "leader@test.com")
	joiner := fixtures.CreateParticipant(ctx, "Joiner", "joiner@test.com")
	fixtures.Register(ctx, hack.ID, joiner.ID)
	team := fixtures.CreateTeam(ctx, hack.ID, "Byte Bandits", "XYZ123", leader.ID)

	body := strings.NewReader(`{"code": "XYZ123"}`)
	req := testutil.NewAuthenticatedRequest("POST", "/hackathons/"+hack.ID.Hex()+"/teams/join", body, testutil.AsTestUser(joiner.ID, "Joiner"))
	req = testutil.WithChiURLParam(req, "hackathonID", hack.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleJoin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	count, err := fixtures.DB().Collection("teams").CountDocuments(ctx, bson.M{"_id": team.ID, "members": joiner.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Error("expected joiner in team members")
	}
}

func TestHandleJoin_WrongCode(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	leader := fixtures.CreateParticipant(ctx, "Leader", "leader@test.com")
	joiner := fixtures.CreateParticipant(ctx, "Joiner", "joiner@test.com")
	fixtures.Register(ctx, hack.ID, joiner.ID)
	fixtures.CreateTeam(ctx, hack.ID, "Byte Bandits", "XYZ123", leader.ID)

	body := strings.NewReader(`{"code": "WRONG1"}`)
	req := testutil.NewAuthenticatedRequest("POST", "/hackathons/"+hack.ID.Hex()+"/teams/join", body, testutil.AsTestUser(joiner.ID, "Joiner"))
	req = testutil.WithChiURLParam(req, "hackathonID", hack.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleJoin(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestServeMine_NoTeam(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	user := fixtures.CreateParticipant(ctx, "User", "user@test.com")

	req := testutil.NewAuthenticatedRequest("GET", "/hackathons/"+hack.ID.Hex()+"/teams/mine", nil, testutil.AsTestUser(user.ID, "User"))
	req = testutil.WithChiURLParam(req, "hackathonID", hack.ID.Hex())

	rec := httptest.NewRecorder()
	handler.ServeMine(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp struct {
		Team *teams.TeamView `json:"team"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Team != nil {
		t.Errorf("expected null team, got %+v", resp.Team)
	}
}

func TestServeList_HidesForeignCodes(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	leaderA := fixtures.CreateParticipant(ctx, "Leader A", "la@test.com")
	leaderB := fixtures.CreateParticipant(ctx, "Leader B", "lb@test.com")
	fixtures.CreateTeam(ctx, hack.ID, "Team A", "AAAAAA", leaderA.ID)
	fixtures.CreateTeam(ctx, hack.ID, "Team B", "BBBBBB", leaderB.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/hackathons/"+hack.ID.Hex()+"/teams", nil, testutil.AsTestUser(leaderA.ID, "Leader A"))
	req = testutil.WithChiURLParam(req, "hackathonID", hack.ID.Hex())

	rec := httptest.NewRecorder()
	handler.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp struct {
		Teams []teams.TeamView `json:"teams"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(resp.Teams))
	}
	for _, tv := range resp.Teams {
		switch tv.Name {
		case "Team A":
			if tv.Code == "" {
				t.Error("viewer should see the code of their own team")
			}
		case "Team B":
			if tv.Code != "" {
				t.Error("viewer must not see another team's code")
			}
		}
	}
}

func TestHandleUpdate_NotLeader(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	leader := fixtures.CreateParticipant(ctx, "Leader", "leader@test.com")
	member := fixtures.CreateParticipant(ctx, "Member", "member@test.com")
	team := fixtures.CreateTeam(ctx, hack.ID, "Byte Bandits", "AAAAAA", leader.ID, member.ID)

	body := strings.NewReader(`{"description": "hijack"}`)
	req := testutil.NewAuthenticatedRequest("PATCH", "/teams/"+team.ID.Hex(), body, testutil.AsTestUser(member.ID, "Member"))
	req = testutil.WithChiURLParam(req, "teamID", team.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleUpdate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestHandleRemoveMember_Leader(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganizer(ctx, "Org", "org@test.com")
	hack := fixtures.CreateHackathon(ctx, "Test Hackathon", org.ID)
	leader := fixtures.CreateParticipant(ctx, "Leader", "leader@test.com")
	member := fixtures.CreateParticipant(ctx, "Member", "member@test.com")
	team := fixtures.CreateTeam(ctx, hack.ID, "Byte Bandits", "AAAAAA", leader.ID, member.ID)

	req := testutil.NewAuthenticatedRequest("DELETE", "/teams/"+team.ID.Hex()+"/members/"+member.ID.Hex(), nil, testutil.AsTestUser(leader.ID, "Leader"))
	req = testutil.WithChiURLParam(req, "teamID", team.ID.Hex())
	req = testutil.WithChiURLParam(req, "userID", member.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleRemoveMember(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	count, err := fixtures.DB().Collection("teams").CountDocuments(ctx, bson.M{"_id": team.ID, "members": member.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Error("expected member removed from team")
	}
}
