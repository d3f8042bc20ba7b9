// internal/domain/models/joinrequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Join request status values. The machine is linear: pending may move to
// approved or rejected, and both of those are terminal.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// JoinRequest is one user's relationship with one team: either a
// participant-initiated join request or a leader-issued invitation,
// distinguished by InvitedByLeader. Exactly one document may exist per
// (team_id, user_id), which is what prevents a user from holding two
// unresolved relationships with the same team.
//
// Who resolves it depends on the direction: the team leader resolves
// requests, the invited user resolves invitations.
type JoinRequest struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HackathonID     primitive.ObjectID `bson:"hackathon_id" json:"hackathon_id"`
	TeamID          primitive.ObjectID `bson:"team_id" json:"team_id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	Message         string             `bson:"message" json:"message"`
	Status          string             `bson:"status" json:"status"`
	InvitedByLeader bool               `bson:"invited_by_leader" json:"invited_by_leader"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RequestKind names the two variants a JoinRequest document can be.
type RequestKind string

const (
	// KindRequest is a participant asking a leader to let them in.
	KindRequest RequestKind = "request"
	// KindInvitation is a leader asking a participant to join.
	KindInvitation RequestKind = "invitation"
)

// Kind returns which side initiated the relationship. Resolution
// permissions dispatch on this: the leader answers a KindRequest, the
// invited user answers a KindInvitation.
func (r JoinRequest) Kind() RequestKind {
	if r.InvitedByLeader {
		return KindInvitation
	}
	return KindRequest
}

// Resolved reports whether the request has reached a terminal state.
func (r JoinRequest) Resolved() bool {
	return r.Status == RequestApproved || r.Status == RequestRejected
}
