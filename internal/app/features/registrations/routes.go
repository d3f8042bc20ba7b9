// internal/app/features/registrations/routes.go
package registrations

import (
	"github.com/inovatehub/hackhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the caller's own registration listing, mounted at
// /registrations. Registering itself lives under the hackathon routes.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeMine)

	return r
}
