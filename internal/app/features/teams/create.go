// internal/app/features/teams/create.go
package teams

import (
	"context"
	"errors"
	"net/http"
	"strings"

	hackathonstore "github.com/inovatehub/hackhub/internal/app/store/hackathons"
	registrationstore "github.com/inovatehub/hackhub/internal/app/store/registrations"
	teamstore "github.com/inovatehub/hackhub/internal/app/store/teams"
	"github.com/inovatehub/hackhub/internal/app/system/authz"
	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/sanitize"
	"github.com/inovatehub/hackhub/internal/app/system/timeouts"
	"github.com/inovatehub/hackhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate creates a team in a hackathon with the caller as leader.
// The caller must be registered for the hackathon and not already on a
// team there. Duplicate names surface from the unique index, never from
// a pre-read, so a naming race has exactly one winner.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "sign in required")
		return
	}

	hackID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "hackathonID"))
	if err != nil {
		httpjson.BadRequest(w, "invalid hackathon id")
		return
	}

	var req createTeamRequest
	if err := httpjson.ReadJSON(w, r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	name := normalizeName(sanitize.Text(req.Name))
	if name == "" {
		httpjson.BadRequest(w, "team name is required")
		return
	}
	desc := sanitize.Text(req.Description)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := hackathonstore.New(h.DB).GetByID(ctx, hackID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "hackathon not found")
			return
		}
		httpjson.Internal(w, h.Log, "get hackathon for team create", err)
		return
	}

	registered, err := registrationstore.New(h.DB).Exists(ctx, hackID, uid)
	if err != nil {
		httpjson.Internal(w, h.Log, "check registration", err)
		return
	}
	if !registered {
		httpjson.Forbidden(w, "you must register for the hackathon before creating a team")
		return
	}

	team, err := teamstore.New(h.DB, h.Log).Create(ctx, hackID, uid, name, desc)
	if err != nil {
		switch {
		case errors.Is(err, teamstore.ErrDuplicateTeamName):
			httpjson.Conflict(w, "a team with this name already exists in the hackathon")
		case errors.Is(err, teamstore.ErrAlreadyInTeam):
			httpjson.Conflict(w, "you already belong to a team in this hackathon")
		default:
			httpjson.Internal(w, h.Log, "create team", err)
		}
		return
	}

	h.Log.Info("team created",
		zap.String("hackathon_id", hackID.Hex()),
		zap.String("team_id", team.ID.Hex()),
		zap.String("leader_id", uid.Hex()),
		zap.String("name", team.Name))

	views, err := resolveViews(ctx, h.DB, []models.Team{team}, uid)
	if err != nil {
		httpjson.Internal(w, h.Log, "resolve team view", err)
		return
	}
	httpjson.WriteJSON(w, http.StatusCreated, map[string]interface{}{"team": views[0]})
}

// normalizeName collapses interior whitespace so "Byte  Bandits" and
// "Byte Bandits" are the same team name.
func normalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
