// internal/app/store/messages/messagestore.go
package messagestore

import (
	"context"
	"time"

	"github.com/inovatehub/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize is the fixed number of messages a listing returns.
const PageSize = 50

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("team_messages")}
}

// Append writes one message to the team board. Messages are never
// updated or individually deleted.
func (s *Store) Append(ctx context.Context, hackathonID, teamID, senderID primitive.ObjectID, message string) (models.TeamMessage, error) {
	m := models.TeamMessage{
		ID:          primitive.NewObjectID(),
		HackathonID: hackathonID,
		TeamID:      teamID,
		SenderID:    senderID,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.TeamMessage{}, err
	}
	return m, nil
}

// ListRecent returns the most recent messages for a team, newest first.
func (s *Store) ListRecent(ctx context.Context, teamID primitive.ObjectID) ([]models.TeamMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(PageSize)
	cur, err := s.c.Find(ctx, bson.M{"team_id": teamID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TeamMessage
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByHackathon removes all messages for a hackathon. Returns the
// number of documents deleted.
func (s *Store) DeleteByHackathon(ctx context.Context, hackathonID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"hackathon_id": hackathonID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
