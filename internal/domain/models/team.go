// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team is a hackathon team.
//
// Invariants (enforced by teamstore and its unique indexes):
//   - Members is non-empty and Members[0] == LeaderID.
//   - len(Members) <= MaxMembers at all times.
//   - (hackathon_id, name_ci) and (hackathon_id, code) are unique.
type Team struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HackathonID primitive.ObjectID `bson:"hackathon_id" json:"hackathon_id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description" json:"description"`

	// Code is the short join token; knowing it lets a registered user
	// join directly without a request.
	Code string `bson:"code" json:"code"`

	LeaderID   primitive.ObjectID   `bson:"leader_id" json:"leader_id"`
	Members    []primitive.ObjectID `bson:"members" json:"members"`
	MaxMembers int                  `bson:"max_members" json:"max_members"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether the user appears in the members list.
func (t Team) HasMember(userID primitive.ObjectID) bool {
	for _, m := range t.Members {
		if m == userID {
			return true
		}
	}
	return false
}
