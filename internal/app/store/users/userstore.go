// internal/app/store/users/userstore.go
package userstore

import (
	"context"

	"github.com/inovatehub/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store reads the user collection owned by the identity service.
// It is read-only on purpose; account lifecycle lives elsewhere.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Display holds the subset of user fields handlers embed in responses.
type Display struct {
	ID    primitive.ObjectID
	Name  string
	Email string
}

// DisplayByIDs resolves display info for a set of user IDs in one query.
// Unknown IDs are simply absent from the result map.
func (s *Store) DisplayByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]Display, error) {
	out := make(map[primitive.ObjectID]Display, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = Display{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return out, cur.Err()
}
