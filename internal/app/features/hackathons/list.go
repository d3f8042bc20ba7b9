// internal/app/features/hackathons/list.go
package hackathons

import (
	"context"
	"errors"
	"net/http"

	hackathonstore "github.com/inovatehub/hackhub/internal/app/store/hackathons"
	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/timeouts"
	"github.com/inovatehub/hackhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeList returns every hackathon, newest first. Public.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := hackathonstore.New(h.DB).List(ctx)
	if err != nil {
		httpjson.Internal(w, h.Log, "list hackathons", err)
		return
	}
	if list == nil {
		list = []models.Hackathon{}
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]interface{}{"hackathons": list})
}

// ServeGet returns one hackathon by ID. Public.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "hackathonID"))
	if err != nil {
		httpjson.BadRequest(w, "invalid hackathon id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	hack, err := hackathonstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "hackathon not found")
			return
		}
		httpjson.Internal(w, h.Log, "get hackathon", err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]interface{}{"hackathon": hack})
}
