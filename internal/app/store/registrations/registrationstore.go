// internal/app/store/registrations/registrationstore.go
package registrationstore

import (
	"context"
	"time"

	"github.com/inovatehub/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatusConfirmed is the only registration status the system writes.
const StatusConfirmed = "confirmed"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("registrations")}
}

// Upsert records that a user registered for a hackathon. Repeating the
// call for the same pair is a no-op apart from updated_at; the unique
// (hackathon_id, user_id) index backs this up under concurrency.
func (s *Store) Upsert(ctx context.Context, hackathonID, userID primitive.ObjectID) (models.Registration, error) {
	now := time.Now().UTC()
	filter := bson.M{"hackathon_id": hackathonID, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"status":     StatusConfirmed,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"hackathon_id": hackathonID,
			"user_id":      userID,
			"created_at":   now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var reg models.Registration
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&reg); err != nil {
		return models.Registration{}, err
	}
	return reg, nil
}

// Exists reports whether the user is registered for the hackathon.
func (s *Store) Exists(ctx context.Context, hackathonID, userID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"hackathon_id": hackathonID, "user_id": userID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByUser returns every registration the user holds, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Registration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Registration
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByHackathon returns how many users are registered.
func (s *Store) CountByHackathon(ctx context.Context, hackathonID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"hackathon_id": hackathonID})
}

// DeleteByHackathon removes all registrations for a hackathon. Returns
// the number of documents deleted.
func (s *Store) DeleteByHackathon(ctx context.Context, hackathonID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"hackathon_id": hackathonID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
