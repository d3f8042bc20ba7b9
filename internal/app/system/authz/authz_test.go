package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/inovatehub/hackhub/internal/app/system/auth"
	"github.com/inovatehub/hackhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_NoUser(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	role, name, uid, ok := authz.UserCtx(r)
	if ok {
		t.Fatal("expected ok=false without a user")
	}
	if role != "visitor" || name != "" || uid != primitive.NilObjectID {
		t.Errorf("got role=%q name=%q uid=%v", role, name, uid)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	r := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.TokenUser{
		ID:   "not-an-object-id",
		Role: "participant",
	})
	if _, _, _, ok := authz.UserCtx(r); ok {
		t.Error("expected ok=false for malformed user ID")
	}
}

func TestUserCtx_NormalizesRole(t *testing.T) {
	id := primitive.NewObjectID()
	r := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.TokenUser{
		ID:   id.Hex(),
		Name: "Org Anne",
		Role: "Organizer",
	})
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "organizer" {
		t.Errorf("role: got %q, want organizer", role)
	}
	if name != "Org Anne" || uid != id {
		t.Errorf("got name=%q uid=%v", name, uid)
	}
	if !authz.IsOrganizer(r) {
		t.Error("IsOrganizer should be true")
	}
	if authz.IsParticipant(r) {
		t.Error("IsParticipant should be false")
	}
}
