// internal/app/features/requests/routes.go
package requests

import (
	"github.com/inovatehub/hackhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires responses to join requests, mounted at /requests.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/{requestID}/respond", h.HandleRespond)

	return r
}

// InvitationRoutes wires the invitee's side, mounted at /invitations.
func InvitationRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeInvitations)
	r.Post("/{invitationID}/respond", h.HandleInvitationRespond)

	return r
}
