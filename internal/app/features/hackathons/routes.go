// internal/app/features/hackathons/routes.go
package hackathons

import (
	"github.com/inovatehub/hackhub/internal/app/features/messages"
	"github.com/inovatehub/hackhub/internal/app/features/registrations"
	"github.com/inovatehub/hackhub/internal/app/features/requests"
	"github.com/inovatehub/hackhub/internal/app/features/teams"
	"github.com/inovatehub/hackhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the hackathon resource and everything scoped under one:
// registration, team formation, the leader's pending requests,
// invitations, and the team message board. Reads on the hackathon
// itself are public; everything else needs a signed-in user.
func Routes(h *Handler, reg *registrations.Handler, tm *teams.Handler, rq *requests.Handler, ms *messages.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{hackathonID}", h.ServeGet)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Delete("/{hackathonID}", h.HandleDelete)

		pr.Post("/{hackathonID}/register", reg.HandleRegister)

		pr.Post("/{hackathonID}/teams", tm.HandleCreate)
		pr.Get("/{hackathonID}/teams", tm.ServeList)
		pr.Get("/{hackathonID}/teams/mine", tm.ServeMine)
		pr.Post("/{hackathonID}/teams/join", tm.HandleJoin)

		pr.Get("/{hackathonID}/requests/pending", rq.ServePending)
		pr.Post("/{hackathonID}/invitations", rq.HandleInvite)

		pr.Post("/{hackathonID}/messages", ms.HandlePost)
		pr.Get("/{hackathonID}/messages", ms.ServeList)
	})

	return r
}
