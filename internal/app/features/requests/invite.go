// internal/app/features/requests/invite.go
package requests

import (
	"context"
	"errors"
	"net/http"

	joinrequeststore "github.com/inovatehub/hackhub/internal/app/store/joinrequests"
	registrationstore "github.com/inovatehub/hackhub/internal/app/store/registrations"
	teamstore "github.com/inovatehub/hackhub/internal/app/store/teams"
	userstore "github.com/inovatehub/hackhub/internal/app/store/users"
	"github.com/inovatehub/hackhub/internal/app/system/authz"
	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/sanitize"
	"github.com/inovatehub/hackhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type inviteRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// HandleInvite sends an invitation to a registered user on behalf of
// the team the caller leads in the hackathon. Re-inviting someone with
// a pending invitation refreshes it; a user who already filed their own
// request, or who was already answered, is a conflict.
func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
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

	var body inviteRequest
	if err := httpjson.ReadJSON(w, r, &body); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	inviteeID, err := primitive.ObjectIDFromHex(body.UserID)
	if err != nil {
		httpjson.BadRequest(w, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teams := teamstore.New(h.DB, h.Log)
	led, err := teams.TeamsLedBy(ctx, hackID, uid)
	if err != nil {
		httpjson.Internal(w, h.Log, "list led teams", err)
		return
	}
	if len(led) == 0 {
		httpjson.Forbidden(w, "you do not lead a team in this hackathon")
		return
	}
	team := led[0]

	if _, err := userstore.New(h.DB).GetByID(ctx, inviteeID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "user not found")
			return
		}
		httpjson.Internal(w, h.Log, "get invitee", err)
		return
	}

	registered, err := registrationstore.New(h.DB).Exists(ctx, hackID, inviteeID)
	if err != nil {
		httpjson.Internal(w, h.Log, "check invitee registration", err)
		return
	}
	if !registered {
		httpjson.Conflict(w, "the user is not registered for this hackathon")
		return
	}

	if _, err := teams.GetMyTeam(ctx, hackID, inviteeID); err == nil {
		httpjson.Conflict(w, "the user already belongs to a team in this hackathon")
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Internal(w, h.Log, "check invitee team", err)
		return
	}

	inv, err := joinrequeststore.New(h.DB).UpsertInvite(ctx, hackID, team.ID, inviteeID, sanitize.Text(body.Message))
	if err != nil {
		if errors.Is(err, joinrequeststore.ErrDuplicateRequest) {
			httpjson.Conflict(w, "a request already exists between this user and your team")
			return
		}
		httpjson.Internal(w, h.Log, "create invitation", err)
		return
	}

	h.Log.Info("invitation sent",
		zap.String("invitation_id", inv.ID.Hex()),
		zap.String("team_id", team.ID.Hex()),
		zap.String("invitee_id", inviteeID.Hex()))
	httpjson.WriteJSON(w, http.StatusCreated, map[string]interface{}{"invitation": inv})
}
