// internal/app/policy/requestpolicy/requestpolicy.go

// Package requestpolicy decides who may resolve a pending join request
// or invitation. The rule follows the direction of the document: the
// team leader answers requests from participants, the invited user
// answers invitations from the leader. Nobody else, organizers
// included, may act on either.
package requestpolicy

import (
	"net/http"

	"github.com/inovatehub/hackhub/internal/app/system/authz"
	"github.com/inovatehub/hackhub/internal/domain/models"
)

// CanResolveRequest reports whether the current request user may approve
// or reject a participant-initiated join request for the given team.
func CanResolveRequest(r *http.Request, req models.JoinRequest, team models.Team) bool {
	if req.Kind() != models.KindRequest {
		return false
	}
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	return team.LeaderID == uid
}

// CanResolveInvitation reports whether the current request user may
// accept or decline a leader-issued invitation.
func CanResolveInvitation(r *http.Request, req models.JoinRequest) bool {
	if req.Kind() != models.KindInvitation {
		return false
	}
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	return req.UserID == uid
}
