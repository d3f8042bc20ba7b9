// internal/domain/models/hackathon.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hackathon is the event record participants register for. Team formation
// treats it as read-only except for the deletion cascade.
type Hackathon struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Theme        string             `bson:"theme" json:"theme"`
	LocationType string             `bson:"location_type" json:"locationType"` // online | offline
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	Date         string             `bson:"date" json:"date"`

	// TeamSize is the organizer-configured team size. Team capacity
	// enforcement uses the fixed cap in teamstore, not this value.
	TeamSize    int                `bson:"team_size" json:"team_size"`
	OrganizerID primitive.ObjectID `bson:"organizer_id" json:"organizer_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
