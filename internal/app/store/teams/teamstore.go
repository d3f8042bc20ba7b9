// internal/app/store/teams/teamstore.go
package teamstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/inovatehub/hackhub/internal/app/system/teamcode"
	"github.com/inovatehub/hackhub/internal/app/system/txn"
	"github.com/inovatehub/hackhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MaxMembers is the hard team capacity, leader included. It is applied
// uniformly regardless of what the hackathon record says its team size is.
const MaxMembers = 5

// codeAttempts bounds join-code regeneration on collision. The code space
// is large enough that more than one retry is already unlikely.
const codeAttempts = 5

var (
	ErrDuplicateTeamName  = errors.New("a team with this name already exists in the hackathon")
	ErrAlreadyInTeam      = errors.New("user already belongs to a team in this hackathon")
	ErrAlreadyMember      = errors.New("user is already a member of this team")
	ErrTeamFull           = errors.New("team is full")
	ErrNotMember          = errors.New("user is not a member of this team")
	ErrCannotRemoveLeader = errors.New("the team leader cannot be removed from the team")
)

type Store struct {
	db  *mongo.Database
	c   *mongo.Collection
	log *zap.Logger
}

func New(db *mongo.Database, log *zap.Logger) *Store {
	return &Store{db: db, c: db.Collection("teams"), log: log}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// GetByCode looks a team up by its join code within a hackathon.
func (s *Store) GetByCode(ctx context.Context, hackathonID primitive.ObjectID, code string) (models.Team, error) {
	var t models.Team
	err := s.c.FindOne(ctx, bson.M{"hackathon_id": hackathonID, "code": code}).Decode(&t)
	if err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// GetMyTeam returns the team the user belongs to in the hackathon, or
// mongo.ErrNoDocuments when they have none.
func (s *Store) GetMyTeam(ctx context.Context, hackathonID, userID primitive.ObjectID) (models.Team, error) {
	var t models.Team
	err := s.c.FindOne(ctx, bson.M{"hackathon_id": hackathonID, "members": userID}).Decode(&t)
	if err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// ListByHackathon returns all teams in a hackathon, newest first.
func (s *Store) ListByHackathon(ctx context.Context, hackathonID primitive.ObjectID) ([]models.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"hackathon_id": hackathonID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Team
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TeamsLedBy returns the teams the user leads in a hackathon. In practice
// a user leads at most one team per hackathon, but the store does not
// assume it.
func (s *Store) TeamsLedBy(ctx context.Context, hackathonID, leaderID primitive.ObjectID) ([]models.Team, error) {
	cur, err := s.c.Find(ctx, bson.M{"hackathon_id": hackathonID, "leader_id": leaderID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Team
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new team with the caller as leader and sole member.
// The one-team-per-hackathon rule is checked in the same transaction as
// the insert; the unique (hackathon_id, name_ci) index turns a name race
// into ErrDuplicateTeamName for the loser.
func (s *Store) Create(ctx context.Context, hackathonID, leaderID primitive.ObjectID, name, description string) (models.Team, error) {
	var created models.Team
	err := txn.Run(ctx, s.db, s.log, func(sc context.Context) error {
		n, err := s.c.CountDocuments(sc, bson.M{"hackathon_id": hackathonID, "members": leaderID})
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyInTeam
		}

		now := time.Now().UTC()
		t := models.Team{
			HackathonID: hackathonID,
			Name:        name,
			NameCI:      text.Fold(name),
			Description: description,
			LeaderID:    leaderID,
			Members:     []primitive.ObjectID{leaderID},
			MaxMembers:  MaxMembers,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		for attempt := 0; attempt < codeAttempts; attempt++ {
			code, err := teamcode.Generate()
			if err != nil {
				return err
			}
			t.ID = primitive.NewObjectID()
			t.Code = code

			_, err = s.c.InsertOne(sc, t)
			if err == nil {
				created = t
				return nil
			}
			if dupOnIndex(err, "uniq_teams_hackathon_code") {
				continue
			}
			if wafflemongo.IsDup(err) {
				return ErrDuplicateTeamName
			}
			return err
		}
		return errors.New("could not generate a unique team code")
	})
	if err != nil {
		return models.Team{}, err
	}
	return created, nil
}

// AddMember adds a user to a team. The capacity check and the insert are
// a single conditional update, so two concurrent joins for the last slot
// cannot both succeed. The one-team rule is checked in the same
// transaction.
//
// Returns mongo.ErrNoDocuments when the team does not exist,
// ErrAlreadyMember / ErrAlreadyInTeam / ErrTeamFull for the respective
// conflicts.
func (s *Store) AddMember(ctx context.Context, hackathonID, teamID, userID primitive.ObjectID) (models.Team, error) {
	var joined models.Team
	err := txn.Run(ctx, s.db, s.log, func(sc context.Context) error {
		// Existing membership anywhere in the hackathon decides between
		// already-member and already-in-team before capacity is considered.
		var existing models.Team
		err := s.c.FindOne(sc, bson.M{"hackathon_id": hackathonID, "members": userID}).Decode(&existing)
		switch {
		case err == nil:
			if existing.ID == teamID {
				return ErrAlreadyMember
			}
			return ErrAlreadyInTeam
		case errors.Is(err, mongo.ErrNoDocuments):
			// free to join
		default:
			return err
		}

		filter := bson.M{
			"_id":     teamID,
			"members": bson.M{"$ne": userID},
			"$expr":   bson.M{"$lt": bson.A{bson.M{"$size": "$members"}, "$max_members"}},
		}
		update := bson.M{
			"$push": bson.M{"members": userID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

		err = s.c.FindOneAndUpdate(sc, filter, update, opts).Decode(&joined)
		if err == nil {
			return nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}

		// The conditional update matched nothing: either the team is gone
		// or it is full. Re-read to tell the two apart.
		var t models.Team
		if err := s.c.FindOne(sc, bson.M{"_id": teamID}).Decode(&t); err != nil {
			return err // mongo.ErrNoDocuments when the team does not exist
		}
		return ErrTeamFull
	})
	if err != nil {
		return models.Team{}, err
	}
	return joined, nil
}

// RemoveMember takes a user off a team. The leader cannot leave; teams
// are disbanded only by the hackathon deletion cascade.
func (s *Store) RemoveMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": teamID}).Decode(&t); err != nil {
		return err
	}
	if t.LeaderID == userID {
		return ErrCannotRemoveLeader
	}
	if !t.HasMember(userID) {
		return ErrNotMember
	}

	_, err := s.c.UpdateByID(ctx, teamID, bson.M{
		"$pull": bson.M{"members": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// UpdateDescription replaces the team description. An empty string clears it.
func (s *Store) UpdateDescription(ctx context.Context, teamID primitive.ObjectID, description string) error {
	res, err := s.c.UpdateByID(ctx, teamID, bson.M{
		"$set": bson.M{
			"description": description,
			"updated_at":  time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteByHackathon removes all teams in a hackathon. Returns the number
// of documents deleted.
func (s *Store) DeleteByHackathon(ctx context.Context, hackathonID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"hackathon_id": hackathonID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// dupOnIndex reports whether err is a duplicate-key error on the named
// index. Used to tell a join-code collision (retryable) apart from a
// duplicate team name (not).
func dupOnIndex(err error, index string) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 && strings.Contains(e.Message, index) {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return strings.Contains(ce.Message, index)
	}
	return false
}
