// internal/app/features/teams/types.go
package teams

import (
	"context"
	"time"

	"github.com/inovatehub/hackhub/internal/app/policy/teampolicy"
	userstore "github.com/inovatehub/hackhub/internal/app/store/users"
	"github.com/inovatehub/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MemberView is one resolved team member in a response.
type MemberView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Leader bool   `json:"leader"`
}

// TeamView is a team with member display data resolved. The join code is
// included only for members; outsiders see an empty string.
type TeamView struct {
	ID          string       `json:"id"`
	HackathonID string       `json:"hackathon_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Code        string       `json:"code,omitempty"`
	LeaderID    string       `json:"leader_id"`
	Members     []MemberView `json:"members"`
	MaxMembers  int          `json:"max_members"`
	CreatedAt   time.Time    `json:"created_at"`
}

func buildView(t models.Team, names map[primitive.ObjectID]userstore.Display, includeCode bool) TeamView {
	v := TeamView{
		ID:          t.ID.Hex(),
		HackathonID: t.HackathonID.Hex(),
		Name:        t.Name,
		Description: t.Description,
		LeaderID:    t.LeaderID.Hex(),
		Members:     make([]MemberView, 0, len(t.Members)),
		MaxMembers:  t.MaxMembers,
		CreatedAt:   t.CreatedAt,
	}
	if includeCode {
		v.Code = t.Code
	}
	for _, m := range t.Members {
		mv := MemberView{ID: m.Hex(), Leader: teampolicy.IsLeader(t, m)}
		if d, ok := names[m]; ok {
			mv.Name = d.Name
			mv.Email = d.Email
		}
		v.Members = append(v.Members, mv)
	}
	return v
}

// resolveViews builds TeamViews for a set of teams with one user lookup.
func resolveViews(ctx context.Context, db *mongo.Database, list []models.Team, viewer primitive.ObjectID) ([]TeamView, error) {
	var ids []primitive.ObjectID
	for _, t := range list {
		ids = append(ids, t.Members...)
	}
	names, err := userstore.New(db).DisplayByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]TeamView, 0, len(list))
	for _, t := range list {
		out = append(out, buildView(t, names, t.HasMember(viewer)))
	}
	return out, nil
}
