// internal/app/features/teams/join.go
package teams

import (
	"context"
	"errors"
	"net/http"
	"strings"

	registrationstore "github.com/inovatehub/hackhub/internal/app/store/registrations"
	teamstore "github.com/inovatehub/hackhub/internal/app/store/teams"
	"github.com/inovatehub/hackhub/internal/app/system/authz"
	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/timeouts"
	"github.com/inovatehub/hackhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type joinTeamRequest struct {
	Code string `json:"code"`
}

// HandleJoin adds the caller to the team whose join code they present.
// The code is the only credential; no approval step is involved. A wrong
// code answers 404 so callers cannot probe which codes exist.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
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

	var req joinTeamRequest
	if err := httpjson.ReadJSON(w, r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		httpjson.BadRequest(w, "join code is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	registered, err := registrationstore.New(h.DB).Exists(ctx, hackID, uid)
	if err != nil {
		httpjson.Internal(w, h.Log, "check registration", err)
		return
	}
	if !registered {
		httpjson.Forbidden(w, "you must register for the hackathon before joining a team")
		return
	}

	store := teamstore.New(h.DB, h.Log)
	team, err := store.GetByCode(ctx, hackID, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "no team with this code")
			return
		}
		httpjson.Internal(w, h.Log, "look up team by code", err)
		return
	}

	joined, err := store.AddMember(ctx, hackID, team.ID, uid)
	if err != nil {
		switch {
		case errors.Is(err, teamstore.ErrAlreadyMember):
			httpjson.Conflict(w, "you are already a member of this team")
		case errors.Is(err, teamstore.ErrAlreadyInTeam):
			httpjson.Conflict(w, "you already belong to a team in this hackathon")
		case errors.Is(err, teamstore.ErrTeamFull):
			httpjson.Conflict(w, "team is full")
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.NotFound(w, "no team with this code")
		default:
			httpjson.Internal(w, h.Log, "join team", err)
		}
		return
	}

	h.Log.Info("user joined team by code",
		zap.String("team_id", joined.ID.Hex()),
		zap.String("user_id", uid.Hex()))

	views, err := resolveViews(ctx, h.DB, []models.Team{joined}, uid)
	if err != nil {
		httpjson.Internal(w, h.Log, "resolve team view", err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]interface{}{"team": views[0]})
}
