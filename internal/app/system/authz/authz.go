// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/inovatehub/hackhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a
// found flag. If no user is present in context or the user ID is malformed,
// it returns "visitor", "", NilObjectID, false — so ok=true always means a
// valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed subject in a signed token; fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsOrganizer reports whether the current request's user is an organizer.
func IsOrganizer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "organizer"
}

// IsParticipant reports whether the current request's user is a participant.
func IsParticipant(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "participant"
}

// IsJudge reports whether the current request's user is a judge.
func IsJudge(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "judge"
}
