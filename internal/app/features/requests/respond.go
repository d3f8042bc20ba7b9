// internal/app/features/requests/respond.go
package requests

import (
	"context"
	"errors"
	"net/http"

	"github.com/inovatehub/hackhub/internal/app/policy/requestpolicy"
	joinrequeststore "github.com/inovatehub/hackhub/internal/app/store/joinrequests"
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

type respondRequest struct {
	Action string `json:"action"`
}

// HandleRespond lets a team leader approve or reject a pending join
// request for their team.
//
// On approve the membership write happens before the status write; if
// the process dies between the two, the request stays pending and the
// approval can be retried (the membership add is then a no-op). A
// request that is already resolved answers 404, the same as one that
// never existed.
func (h *Handler) HandleRespond(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(r); !ok {
		httpjson.Unauthorized(w, "sign in required")
		return
	}

	reqID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "requestID"))
	if err != nil {
		httpjson.BadRequest(w, "invalid request id")
		return
	}

	var body respondRequest
	if err := httpjson.ReadJSON(w, r, &body); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	var target string
	switch body.Action {
	case "approve":
		target = models.RequestApproved
	case "reject":
		target = models.RequestRejected
	default:
		httpjson.BadRequest(w, `action must be "approve" or "reject"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reqStore := joinrequeststore.New(h.DB)
	req, err := reqStore.GetByID(ctx, reqID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "request not found")
			return
		}
		httpjson.Internal(w, h.Log, "get join request", err)
		return
	}

	teams := teamstore.New(h.DB, h.Log)
	team, err := teams.GetByID(ctx, req.TeamID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "team not found")
			return
		}
		httpjson.Internal(w, h.Log, "get team for request response", err)
		return
	}
	if !requestpolicy.CanResolveRequest(r, req, team) {
		httpjson.Forbidden(w, "only the team leader can respond to this request")
		return
	}
	if req.Resolved() {
		httpjson.NotFound(w, "request already resolved")
		return
	}

	if target == models.RequestApproved {
		_, err := teams.AddMember(ctx, req.HackathonID, req.TeamID, req.UserID)
		switch {
		case err == nil, errors.Is(err, teamstore.ErrAlreadyMember):
			// already a member is fine; the approval still resolves
		case errors.Is(err, teamstore.ErrAlreadyInTeam):
			httpjson.Conflict(w, "the requester already joined another team")
			return
		case errors.Is(err, teamstore.ErrTeamFull):
			httpjson.Conflict(w, "team is full")
			return
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.NotFound(w, "team not found")
			return
		default:
			httpjson.Internal(w, h.Log, "add member on approval", err)
			return
		}
	}

	resolved, err := reqStore.Resolve(ctx, reqID, target)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "request already resolved")
			return
		}
		httpjson.Internal(w, h.Log, "resolve join request", err)
		return
	}

	h.Log.Info("join request resolved",
		zap.String("request_id", reqID.Hex()),
		zap.String("status", resolved.Status))
	httpjson.WriteJSON(w, http.StatusOK, map[string]interface{}{"request": resolved})
}

// currentUser is a small indirection over authz for handlers that only
// need to know a user is present.
func currentUser(r *http.Request) (primitive.ObjectID, bool) {
	_, _, uid, ok := authz.UserCtx(r)
	return uid, ok
}
