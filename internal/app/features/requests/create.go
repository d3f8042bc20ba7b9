// internal/app/features/requests/create.go
package requests

import (
	"context"
	"errors"
	"net/http"

	joinrequeststore "github.com/inovatehub/hackhub/internal/app/store/joinrequests"
	registrationstore "github.com/inovatehub/hackhub/internal/app/store/registrations"
	teamstore "github.com/inovatehub/hackhub/internal/app/store/teams"
	"github.com/inovatehub/hackhub/internal/app/system/authz"
	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/sanitize"
	"github.com/inovatehub/hackhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createRequest struct {
	Message string `json:"message"`
}

// HandleCreate files a join request with a team's leader. The caller
// must be registered for the team's hackathon. Any prior record between
// the caller and the team, whatever its status, makes this a conflict;
// the unique index decides, not a pre-read.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "sign in required")
		return
	}

	teamID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "teamID"))
	if err != nil {
		httpjson.BadRequest(w, "invalid team id")
		return
	}

	var req createRequest
	if err := httpjson.ReadJSON(w, r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	team, err := teamstore.New(h.DB, h.Log).GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "team not found")
			return
		}
		httpjson.Internal(w, h.Log, "get team for join request", err)
		return
	}

	registered, err := registrationstore.New(h.DB).Exists(ctx, team.HackathonID, uid)
	if err != nil {
		httpjson.Internal(w, h.Log, "check registration", err)
		return
	}
	if !registered {
		httpjson.Forbidden(w, "you must register for the hackathon before requesting to join a team")
		return
	}

	created, err := joinrequeststore.New(h.DB).Create(ctx, team.HackathonID, teamID, uid, sanitize.Text(req.Message))
	if err != nil {
		if errors.Is(err, joinrequeststore.ErrDuplicateRequest) {
			httpjson.Conflict(w, "a request already exists between you and this team")
			return
		}
		httpjson.Internal(w, h.Log, "create join request", err)
		return
	}

	h.Log.Info("join request created",
		zap.String("request_id", created.ID.Hex()),
		zap.String("team_id", teamID.Hex()),
		zap.String("user_id", uid.Hex()))
	httpjson.WriteJSON(w, http.StatusCreated, map[string]interface{}{"request": created})
}
