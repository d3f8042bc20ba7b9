// internal/app/features/teams/routes.go
package teams

import (
	"github.com/inovatehub/hackhub/internal/app/features/requests"
	"github.com/inovatehub/hackhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the team-scoped operations: leader edits, member
// removal, and filing a join request with the team's leader.
func Routes(h *Handler, rq *requests.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Patch("/{teamID}", h.HandleUpdate)
	r.Delete("/{teamID}/members/{userID}", h.HandleRemoveMember)
	r.Post("/{teamID}/requests", rq.HandleCreate)

	return r
}
