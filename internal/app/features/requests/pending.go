// internal/app/features/requests/pending.go
package requests

import (
	"context"
	"net/http"
	"time"

	joinrequeststore "github.com/inovatehub/hackhub/internal/app/store/joinrequests"
	teamstore "github.com/inovatehub/hackhub/internal/app/store/teams"
	userstore "github.com/inovatehub/hackhub/internal/app/store/users"
	"github.com/inovatehub/hackhub/internal/app/system/authz"
	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// requestView is one pending join request with requester display data.
type requestView struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	TeamName  string    `json:"team_name"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ServePending lists the pending join requests across every team the
// caller leads in the hackathon, oldest first. A user who leads no team
// gets an empty list, not an error.
func (h *Handler) ServePending(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	led, err := teamstore.New(h.DB, h.Log).TeamsLedBy(ctx, hackID, uid)
	if err != nil {
		httpjson.Internal(w, h.Log, "list led teams", err)
		return
	}

	teamIDs := make([]primitive.ObjectID, 0, len(led))
	teamNames := make(map[primitive.ObjectID]string, len(led))
	for _, t := range led {
		teamIDs = append(teamIDs, t.ID)
		teamNames[t.ID] = t.Name
	}

	pending, err := joinrequeststore.New(h.DB).ListPendingForTeams(ctx, teamIDs)
	if err != nil {
		httpjson.Internal(w, h.Log, "list pending requests", err)
		return
	}

	userIDs := make([]primitive.ObjectID, 0, len(pending))
	for _, p := range pending {
		userIDs = append(userIDs, p.UserID)
	}
	names, err := userstore.New(h.DB).DisplayByIDs(ctx, userIDs)
	if err != nil {
		httpjson.Internal(w, h.Log, "resolve requester names", err)
		return
	}

	views := make([]requestView, 0, len(pending))
	for _, p := range pending {
		v := requestView{
			ID:        p.ID.Hex(),
			TeamID:    p.TeamID.Hex(),
			TeamName:  teamNames[p.TeamID],
			UserID:    p.UserID.Hex(),
			Message:   p.Message,
			CreatedAt: p.CreatedAt,
		}
		if d, ok := names[p.UserID]; ok {
			v.UserName = d.Name
			v.UserEmail = d.Email
		}
		views = append(views, v)
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]interface{}{"requests": views})
}
