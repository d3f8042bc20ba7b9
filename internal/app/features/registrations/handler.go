// internal/app/features/registrations/handler.go
package registrations

import (
	"context"
	"errors"
	"net/http"
	"time"

	hackathonstore "github.com/inovatehub/hackhub/internal/app/store/hackathons"
	registrationstore "github.com/inovatehub/hackhub/internal/app/store/registrations"
	"github.com/inovatehub/hackhub/internal/app/system/authz"
	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the registrations feature.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// HandleRegister opts the current user into a hackathon. Registering
// twice is not an error; the record is upserted and the call returns the
// same registration either way.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
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

	if _, err := hackathonstore.New(h.DB).GetByID(ctx, hackID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "hackathon not found")
			return
		}
		httpjson.Internal(w, h.Log, "get hackathon for register", err)
		return
	}

	reg, err := registrationstore.New(h.DB).Upsert(ctx, hackID, uid)
	if err != nil {
		httpjson.Internal(w, h.Log, "register for hackathon", err)
		return
	}

	h.Log.Info("user registered",
		zap.String("hackathon_id", hackID.Hex()),
		zap.String("user_id", uid.Hex()))
	httpjson.WriteJSON(w, http.StatusOK, map[string]interface{}{"registration": reg})
}

// registrationView is one of the caller's registrations with the
// hackathon's name resolved.
type registrationView struct {
	ID            string    `json:"id"`
	HackathonID   string    `json:"hackathon_id"`
	HackathonName string    `json:"hackathon_name"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ServeMine lists the caller's registrations across all hackathons,
// newest first.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	regs, err := registrationstore.New(h.DB).ListByUser(ctx, uid)
	if err != nil {
		httpjson.Internal(w, h.Log, "list registrations", err)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(regs))
	for _, reg := range regs {
		ids = append(ids, reg.HackathonID)
	}
	names, err := hackathonstore.New(h.DB).NamesByIDs(ctx, ids)
	if err != nil {
		httpjson.Internal(w, h.Log, "resolve hackathon names", err)
		return
	}

	views := make([]registrationView, 0, len(regs))
	for _, reg := range regs {
		views = append(views, registrationView{
			ID:            reg.ID.Hex(),
			HackathonID:   reg.HackathonID.Hex(),
			HackathonName: names[reg.HackathonID],
			Status:        reg.Status,
			CreatedAt:     reg.CreatedAt,
		})
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]interface{}{"registrations": views})
}
