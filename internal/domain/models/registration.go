// internal/domain/models/registration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration records that a user opted into a hackathon. Exactly one
// document per (hackathon_id, user_id); opt-in is an idempotent upsert.
// Registrations are never deleted individually, only by the hackathon
// deletion cascade.
type Registration struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HackathonID primitive.ObjectID `bson:"hackathon_id" json:"hackathon_id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Status      string             `bson:"status" json:"status"` // confirmed

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
