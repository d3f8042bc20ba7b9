// internal/app/store/joinrequests/joinrequeststore.go
package joinrequeststore

import (
	"context"
	"errors"
	"time"

	"github.com/inovatehub/hackhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateRequest means a request or invitation already links this
// user and team. The unique (team_id, user_id) index enforces it.
var ErrDuplicateRequest = errors.New("a request already exists between this user and team")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("join_requests")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.JoinRequest, error) {
	var r models.JoinRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return models.JoinRequest{}, err
	}
	return r, nil
}

// Create records a participant-initiated join request in the pending state.
func (s *Store) Create(ctx context.Context, hackathonID, teamID, userID primitive.ObjectID, message string) (models.JoinRequest, error) {
	now := time.Now().UTC()
	r := models.JoinRequest{
		ID:          primitive.NewObjectID(),
		HackathonID: hackathonID,
		TeamID:      teamID,
		UserID:      userID,
		Message:     message,
		Status:      models.RequestPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.JoinRequest{}, ErrDuplicateRequest
		}
		return models.JoinRequest{}, err
	}
	return r, nil
}

// UpsertInvite records a leader-issued invitation. Re-inviting a user
// with a pending invitation refreshes its message and timestamp rather
// than failing; any other existing link between the pair is a conflict.
func (s *Store) UpsertInvite(ctx context.Context, hackathonID, teamID, userID primitive.ObjectID, message string) (models.JoinRequest, error) {
	now := time.Now().UTC()

	filter := bson.M{
		"team_id":           teamID,
		"user_id":           userID,
		"invited_by_leader": true,
		"status":            models.RequestPending,
	}
	update := bson.M{"$set": bson.M{"message": message, "updated_at": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var inv models.JoinRequest
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&inv)
	if err == nil {
		return inv, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.JoinRequest{}, err
	}

	inv = models.JoinRequest{
		ID:              primitive.NewObjectID(),
		HackathonID:     hackathonID,
		TeamID:          teamID,
		UserID:          userID,
		Message:         message,
		Status:          models.RequestPending,
		InvitedByLeader: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		if wafflemongo.IsDup(err) {
			// A non-invite request (or a resolved invite) already links
			// the pair.
			return models.JoinRequest{}, ErrDuplicateRequest
		}
		return models.JoinRequest{}, err
	}
	return inv, nil
}

// Resolve moves a pending document to approved or rejected. The status
// condition lives in the filter, so a request that was already resolved
// (or never existed) comes back as mongo.ErrNoDocuments and the state
// machine stays one-way.
func (s *Store) Resolve(ctx context.Context, id primitive.ObjectID, status string) (models.JoinRequest, error) {
	if status != models.RequestApproved && status != models.RequestRejected {
		return models.JoinRequest{}, errors.New(`status must be "approved" or "rejected"`)
	}

	filter := bson.M{"_id": id, "status": models.RequestPending}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var r models.JoinRequest
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&r); err != nil {
		return models.JoinRequest{}, err
	}
	return r, nil
}

// ListPendingForTeams returns pending join requests (not invitations)
// across a set of teams, oldest first so leaders review in arrival order.
func (s *Store) ListPendingForTeams(ctx context.Context, teamIDs []primitive.ObjectID) ([]models.JoinRequest, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	filter := bson.M{
		"team_id":           bson.M{"$in": teamIDs},
		"status":            models.RequestPending,
		"invited_by_leader": false,
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.JoinRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListInvitationsForUser returns a user's pending invitations across all
// hackathons, newest first.
func (s *Store) ListInvitationsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.JoinRequest, error) {
	filter := bson.M{
		"user_id":           userID,
		"status":            models.RequestPending,
		"invited_by_leader": true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.JoinRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByHackathon removes all requests and invitations for a hackathon.
// Returns the number of documents deleted.
func (s *Store) DeleteByHackathon(ctx context.Context, hackathonID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"hackathon_id": hackathonID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
