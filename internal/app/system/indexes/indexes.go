// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The unique indexes declared here are load-bearing: name/code/request
uniqueness and the registration upsert key are enforced HERE, at the
store level, not by application pre-checks.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	var problems []string

	if err := ensureUsers(ctx, db, log); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureHackathons(ctx, db, log); err != nil {
		problems = append(problems, "hackathons: "+err.Error())
	}
	if err := ensureRegistrations(ctx, db, log); err != nil {
		problems = append(problems, "registrations: "+err.Error())
	}
	if err := ensureTeams(ctx, db, log); err != nil {
		problems = append(problems, "teams: "+err.Error())
	}
	if err := ensureJoinRequests(ctx, db, log); err != nil {
		problems = append(problems, "join_requests: "+err.Error())
	}
	if err := ensureTeamMessages(ctx, db, log); err != nil {
		problems = append(problems, "team_messages: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, log *zap.Logger, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()
		log.Info("ensuring index",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))

		// Load existing indexes keyed by their key signature.
		existing := map[string]existingIndex{}
		cur, err := coll.Indexes().List(ctx)
		if err == nil {
			for cur.Next(ctx) {
				var idx existingIndex
				if err := cur.Decode(&idx); err != nil {
					log.Warn("failed to decode existing index",
						zap.String("collection", coll.Name()),
						zap.Error(err))
					continue
				}
				existing[keySig(idx.Key)] = idx
			}
			cur.Close(ctx)
		}

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) {
				log.Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.String("took", time.Since(start).String()))
				continue
			}

			// Options mismatch (e.g. upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			}
			continue
		}

		log.Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, log, []mongo.IndexModel{
		// Owned by the identity service, but we keep its contract visible.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
	})
}

func ensureHackathons(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	c := db.Collection("hackathons")
	return ensureIndexSet(ctx, c, log, []mongo.IndexModel{
		// Listing is newest-first.
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_hackathons_createdat_desc"),
		},
		{
			Keys:    bson.D{{Key: "organizer_id", Value: 1}},
			Options: options.Index().SetName("idx_hackathons_organizer"),
		},
	})
}

func ensureRegistrations(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	c := db.Collection("registrations")
	return ensureIndexSet(ctx, c, log, []mongo.IndexModel{
		// The opt-in upsert key. Concurrent identical opt-ins collapse here.
		{
			Keys:    bson.D{{Key: "hackathon_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_registrations_hackathon_user"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_registrations_user"),
		},
	})
}

func ensureTeams(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	c := db.Collection("teams")
	return ensureIndexSet(ctx, c, log, []mongo.IndexModel{
		// Team names are unique per hackathon, case/diacritics folded.
		{
			Keys:    bson.D{{Key: "hackathon_id", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_teams_hackathon_nameci"),
		},
		// Join codes are unique per hackathon; creation retries on collision.
		{
			Keys:    bson.D{{Key: "hackathon_id", Value: 1}, {Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_teams_hackathon_code"),
		},
		// Membership lookups (GetMyTeam, one-team-per-hackathon checks).
		{
			Keys:    bson.D{{Key: "hackathon_id", Value: 1}, {Key: "members", Value: 1}},
			Options: options.Index().SetName("idx_teams_hackathon_members"),
		},
		// Leader's teams.
		{
			Keys:    bson.D{{Key: "hackathon_id", Value: 1}, {Key: "leader_id", Value: 1}},
			Options: options.Index().SetName("idx_teams_hackathon_leader"),
		},
	})
}

func ensureJoinRequests(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	c := db.Collection("join_requests")
	return ensureIndexSet(ctx, c, log, []mongo.IndexModel{
		// One relationship per (team, user), requests and invitations alike.
		{
			Keys:    bson.D{{Key: "team_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_joinrequests_team_user"),
		},
		// Leader's pending queue per team.
		{
			Keys:    bson.D{{Key: "team_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_joinrequests_team_status"),
		},
		// A user's invitations, newest first.
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "invited_by_leader", Value: 1},
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_joinrequests_user_invited_status_createdat"),
		},
		// Cascade deletes select by hackathon.
		{
			Keys:    bson.D{{Key: "hackathon_id", Value: 1}},
			Options: options.Index().SetName("idx_joinrequests_hackathon"),
		},
	})
}

func ensureTeamMessages(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	c := db.Collection("team_messages")
	return ensureIndexSet(ctx, c, log, []mongo.IndexModel{
		// Board reads are newest-first with a bounded page.
		{
			Keys:    bson.D{{Key: "team_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_teammessages_team_createdat_desc"),
		},
		{
			Keys:    bson.D{{Key: "hackathon_id", Value: 1}},
			Options: options.Index().SetName("idx_teammessages_hackathon"),
		},
	})
}
