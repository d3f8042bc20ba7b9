// internal/app/store/hackathons/hackathonstore.go
package hackathonstore

import (
	"context"
	"time"

	"github.com/inovatehub/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("hackathons")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Hackathon, error) {
	var h models.Hackathon
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		return models.Hackathon{}, err
	}
	return h, nil
}

// List returns all hackathons newest first.
func (s *Store) List(ctx context.Context) ([]models.Hackathon, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Hackathon
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NamesByIDs resolves hackathon IDs to display names in one query.
// IDs with no matching document are simply absent from the result.
func (s *Store) NamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	out := map[primitive.ObjectID]string{}
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var h models.Hackathon
		if err := cur.Decode(&h); err != nil {
			return nil, err
		}
		out[h.ID] = h.Name
	}
	return out, cur.Err()
}

func (s *Store) Create(ctx context.Context, h models.Hackathon) (models.Hackathon, error) {
	now := time.Now().UTC()
	h.ID = primitive.NewObjectID()
	h.CreatedAt = now
	h.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, h); err != nil {
		return models.Hackathon{}, err
	}
	return h, nil
}

// Delete removes a hackathon by ID. Returns the number of documents
// deleted (0 or 1). Dependent records are removed by the caller's
// cascade, not here.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
