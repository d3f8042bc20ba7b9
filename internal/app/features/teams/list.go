// internal/app/features/teams/list.go
package teams

import (
	"context"
	"errors"
	"net/http"

	teamstore "github.com/inovatehub/hackhub/internal/app/store/teams"
	"github.com/inovatehub/hackhub/internal/app/system/authz"
	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/timeouts"
	"github.com/inovatehub/hackhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeList returns every team in a hackathon with member names
// resolved. Join codes appear only on the viewer's own team.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
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

	list, err := teamstore.New(h.DB, h.Log).ListByHackathon(ctx, hackID)
	if err != nil {
		httpjson.Internal(w, h.Log, "list teams", err)
		return
	}

	views, err := resolveViews(ctx, h.DB, list, uid)
	if err != nil {
		httpjson.Internal(w, h.Log, "resolve team views", err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]interface{}{"teams": views})
}

// ServeMine returns the viewer's team in the hackathon. Having no team
// is a normal condition and answers 200 with a null team, not a 404.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	team, err := teamstore.New(h.DB, h.Log).GetMyTeam(ctx, hackID, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteJSON(w, http.StatusOK, map[string]interface{}{"team": nil})
			return
		}
		httpjson.Internal(w, h.Log, "get my team", err)
		return
	}

	views, err := resolveViews(ctx, h.DB, []models.Team{team}, uid)
	if err != nil {
		httpjson.Internal(w, h.Log, "resolve team view", err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]interface{}{"team": views[0]})
}
