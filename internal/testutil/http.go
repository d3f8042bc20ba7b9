package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/inovatehub/hackhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calls chain: an existing route context is reused, not replaced.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		rctx.URLParams.Add(key, value)
		return r
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// ParticipantUser returns a TestUser with the participant role.
func ParticipantUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Participant",
		Email: "participant@test.com",
		Role:  "participant",
	}
}

// OrganizerUser returns a TestUser with the organizer role.
func OrganizerUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Organizer",
		Email: "organizer@test.com",
		Role:  "organizer",
	}
}

// AsTestUser wraps an ObjectID as a participant TestUser, for handler tests
// that need the context identity to match a fixture user.
func AsTestUser(id primitive.ObjectID, name string) TestUser {
	return TestUser{
		ID:    id.Hex(),
		Name:  name,
		Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@test.com",
		Role:  "participant",
	}
}

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses token verification and injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.TokenUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string, body io.Reader) *http.Request {
	return httptest.NewRequest(method, target, body)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, body io.Reader, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, body), user)
}
