// internal/app/features/teams/manage.go
package teams

import (
	"context"
	"errors"
	"net/http"

	"github.com/inovatehub/hackhub/internal/app/policy/teampolicy"
	teamstore "github.com/inovatehub/hackhub/internal/app/store/teams"
	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/sanitize"
	"github.com/inovatehub/hackhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type updateTeamRequest struct {
	Description string `json:"description"`
}

// HandleUpdate edits the team description. Leader only. The description
// is the only writable field; name, code, and membership have their own
// paths.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	teamID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "teamID"))
	if err != nil {
		httpjson.BadRequest(w, "invalid team id")
		return
	}

	var req updateTeamRequest
	if err := httpjson.ReadJSON(w, r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := teamstore.New(h.DB, h.Log)
	team, err := store.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "team not found")
			return
		}
		httpjson.Internal(w, h.Log, "get team for update", err)
		return
	}
	if !teampolicy.CanManageTeam(r, team) {
		httpjson.Forbidden(w, "only the team leader can edit the team")
		return
	}

	if err := store.UpdateDescription(ctx, teamID, sanitize.Text(req.Description)); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "team not found")
			return
		}
		httpjson.Internal(w, h.Log, "update team description", err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]string{"message": "team updated"})
}

// HandleRemoveMember takes a member off the team. Leader only; the
// leader themselves cannot be removed.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "teamID"))
	if err != nil {
		httpjson.BadRequest(w, "invalid team id")
		return
	}
	memberID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.BadRequest(w, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := teamstore.New(h.DB, h.Log)
	team, err := store.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "team not found")
			return
		}
		httpjson.Internal(w, h.Log, "get team for member removal", err)
		return
	}
	if !teampolicy.CanManageTeam(r, team) {
		httpjson.Forbidden(w, "only the team leader can remove members")
		return
	}

	if err := store.RemoveMember(ctx, teamID, memberID); err != nil {
		switch {
		case errors.Is(err, teamstore.ErrCannotRemoveLeader):
			httpjson.Conflict(w, "the team leader cannot be removed")
		case errors.Is(err, teamstore.ErrNotMember):
			httpjson.NotFound(w, "user is not a member of this team")
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.NotFound(w, "team not found")
		default:
			httpjson.Internal(w, h.Log, "remove team member", err)
		}
		return
	}

	h.Log.Info("team member removed",
		zap.String("team_id", teamID.Hex()),
		zap.String("user_id", memberID.Hex()))
	httpjson.WriteJSON(w, http.StatusOK, map[string]string{"message": "member removed"})
}
