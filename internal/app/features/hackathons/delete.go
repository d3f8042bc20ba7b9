// internal/app/features/hackathons/delete.go
package hackathons

import (
	"context"
	"errors"
	"net/http"

	hackathonstore "github.com/inovatehub/hackhub/internal/app/store/hackathons"
	joinrequeststore "github.com/inovatehub/hackhub/internal/app/store/joinrequests"
	messagestore "github.com/inovatehub/hackhub/internal/app/store/messages"
	registrationstore "github.com/inovatehub/hackhub/internal/app/store/registrations"
	teamstore "github.com/inovatehub/hackhub/internal/app/store/teams"
	"github.com/inovatehub/hackhub/internal/app/system/authz"
	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDelete removes a hackathon and everything hanging off it:
// registrations, teams, join requests and invitations, team messages.
// Only the organizer who owns the hackathon may do this.
//
// Dependent collections are cleared before the hackathon record itself,
// so an interrupted cascade leaves the hackathon visible and the delete
// retryable rather than orphaning records.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "sign in required")
		return
	}
	if !authz.IsOrganizer(r) {
		httpjson.Forbidden(w, "only organizers can delete hackathons")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "hackathonID"))
	if err != nil {
		httpjson.BadRequest(w, "invalid hackathon id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	hacks := hackathonstore.New(h.DB)
	hack, err := hacks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "hackathon not found")
			return
		}
		httpjson.Internal(w, h.Log, "get hackathon for delete", err)
		return
	}
	if hack.OrganizerID != uid {
		httpjson.Forbidden(w, "only the owning organizer can delete this hackathon")
		return
	}

	if _, err := messagestore.New(h.DB).DeleteByHackathon(ctx, id); err != nil {
		httpjson.Internal(w, h.Log, "cascade delete messages", err)
		return
	}
	if _, err := joinrequeststore.New(h.DB).DeleteByHackathon(ctx, id); err != nil {
		httpjson.Internal(w, h.Log, "cascade delete join requests", err)
		return
	}
	if _, err := teamstore.New(h.DB, h.Log).DeleteByHackathon(ctx, id); err != nil {
		httpjson.Internal(w, h.Log, "cascade delete teams", err)
		return
	}
	if _, err := registrationstore.New(h.DB).DeleteByHackathon(ctx, id); err != nil {
		httpjson.Internal(w, h.Log, "cascade delete registrations", err)
		return
	}
	if _, err := hacks.Delete(ctx, id); err != nil {
		httpjson.Internal(w, h.Log, "delete hackathon", err)
		return
	}

	h.Log.Info("hackathon deleted",
		zap.String("hackathon_id", id.Hex()),
		zap.String("organizer_id", uid.Hex()))
	httpjson.WriteJSON(w, http.StatusOK, map[string]string{"message": "hackathon deleted"})
}
