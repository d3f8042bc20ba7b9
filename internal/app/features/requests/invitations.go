// internal/app/features/requests/invitations.go
package requests

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/inovatehub/hackhub/internal/app/policy/requestpolicy"
	joinrequeststore "github.com/inovatehub/hackhub/internal/app/store/joinrequests"
	teamstore "github.com/inovatehub/hackhub/internal/app/store/teams"
	"github.com/inovatehub/hackhub/internal/app/system/authz"
	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/timeouts"
	"github.com/inovatehub/hackhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// invitationView is one pending invitation with team display data.
type invitationView struct {
	ID          string    `json:"id"`
	HackathonID string    `json:"hackathon_id"`
	TeamID      string    `json:"team_id"`
	TeamName    string    `json:"team_name"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// ServeInvitations lists the caller's pending invitations across all
// hackathons, newest first.
func (h *Handler) ServeInvitations(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	invs, err := joinrequeststore.New(h.DB).ListInvitationsForUser(ctx, uid)
	if err != nil {
		httpjson.Internal(w, h.Log, "list invitations", err)
		return
	}

	teamNames, err := h.teamNames(ctx, invs)
	if err != nil {
		httpjson.Internal(w, h.Log, "resolve team names", err)
		return
	}

	views := make([]invitationView, 0, len(invs))
	for _, inv := range invs {
		views = append(views, invitationView{
			ID:          inv.ID.Hex(),
			HackathonID: inv.HackathonID.Hex(),
			TeamID:      inv.TeamID.Hex(),
			TeamName:    teamNames[inv.TeamID],
			Message:     inv.Message,
			CreatedAt:   inv.CreatedAt,
		})
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]interface{}{"invitations": views})
}

func (h *Handler) teamNames(ctx context.Context, invs []models.JoinRequest) (map[primitive.ObjectID]string, error) {
	out := map[primitive.ObjectID]string{}
	if len(invs) == 0 {
		return out, nil
	}
	ids := make([]primitive.ObjectID, 0, len(invs))
	for _, inv := range invs {
		ids = append(ids, inv.TeamID)
	}

	cur, err := h.DB.Collection("teams").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var t models.Team
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		out[t.ID] = t.Name
	}
	return out, cur.Err()
}

// HandleInvitationRespond lets the invited user accept or reject an
// invitation. Accepting runs the same membership path as joining by
// code, so a full team or a membership acquired in the meantime turns
// the accept into a conflict and the invitation stays pending.
func (h *Handler) HandleInvitationRespond(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(r); !ok {
		httpjson.Unauthorized(w, "sign in required")
		return
	}

	invID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "invitationID"))
	if err != nil {
		httpjson.BadRequest(w, "invalid invitation id")
		return
	}

	var body respondRequest
	if err := httpjson.ReadJSON(w, r, &body); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	var target string
	switch body.Action {
	case "accept":
		target = models.RequestApproved
	case "reject":
		target = models.RequestRejected
	default:
		httpjson.BadRequest(w, `action must be "accept" or "reject"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reqStore := joinrequeststore.New(h.DB)
	inv, err := reqStore.GetByID(ctx, invID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "invitation not found")
			return
		}
		httpjson.Internal(w, h.Log, "get invitation", err)
		return
	}
	if !requestpolicy.CanResolveInvitation(r, inv) {
		httpjson.Forbidden(w, "only the invited user can respond to this invitation")
		return
	}
	if inv.Resolved() {
		httpjson.NotFound(w, "invitation already resolved")
		return
	}

	if target == models.RequestApproved {
		_, err := teamstore.New(h.DB, h.Log).AddMember(ctx, inv.HackathonID, inv.TeamID, inv.UserID)
		switch {
		case err == nil, errors.Is(err, teamstore.ErrAlreadyMember):
		case errors.Is(err, teamstore.ErrAlreadyInTeam):
			httpjson.Conflict(w, "you already belong to a team in this hackathon")
			return
		case errors.Is(err, teamstore.ErrTeamFull):
			httpjson.Conflict(w, "team is full")
			return
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.NotFound(w, "team not found")
			return
		default:
			httpjson.Internal(w, h.Log, "add member on accept", err)
			return
		}
	}

	resolved, err := reqStore.Resolve(ctx, invID, target)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "invitation already resolved")
			return
		}
		httpjson.Internal(w, h.Log, "resolve invitation", err)
		return
	}

	h.Log.Info("invitation resolved",
		zap.String("invitation_id", invID.Hex()),
		zap.String("status", resolved.Status))
	httpjson.WriteJSON(w, http.StatusOK, map[string]interface{}{"invitation": resolved})
}
