// internal/domain/models/teammessage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamMessage is one entry on a team's message board. Messages are
// append-only and immutable once written.
type TeamMessage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HackathonID primitive.ObjectID `bson:"hackathon_id" json:"hackathon_id"`
	TeamID      primitive.ObjectID `bson:"team_id" json:"team_id"`
	SenderID    primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	Message     string             `bson:"message" json:"message"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
