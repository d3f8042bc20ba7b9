// internal/app/features/messages/handler.go
package messages

import (
	"context"
	"errors"
	"net/http"
	"time"

	messagestore "github.com/inovatehub/hackhub/internal/app/store/messages"
	teamstore "github.com/inovatehub/hackhub/internal/app/store/teams"
	userstore "github.com/inovatehub/hackhub/internal/app/store/users"
	"github.com/inovatehub/hackhub/internal/app/system/authz"
	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/sanitize"
	"github.com/inovatehub/hackhub/internal/app/system/timeouts"
	"github.com/inovatehub/hackhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the team message board. The board belongs to the
// sender's team in the hackathon, so every route resolves the caller's
// team first and answers 403 when they have none.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

type postMessageRequest struct {
	Message string `json:"message"`
}

// messageView is one board entry with the sender's name resolved.
type messageView struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// HandlePost appends a message to the caller's team board. The text is
// sanitized; a message that is blank after trimming is rejected.
func (h *Handler) HandlePost(w http.ResponseWriter, r *http.Request) {
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

	var body postMessageRequest
	if err := httpjson.ReadJSON(w, r, &body); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	text := sanitize.Text(body.Message)
	if text == "" {
		httpjson.BadRequest(w, "message must not be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	team, err := h.callerTeam(ctx, w, hackID, uid)
	if err != nil {
		return
	}

	msg, err := messagestore.New(h.DB).Append(ctx, hackID, team.ID, uid, text)
	if err != nil {
		httpjson.Internal(w, h.Log, "post team message", err)
		return
	}

	httpjson.WriteJSON(w, http.StatusCreated, map[string]interface{}{"message": msg})
}

// ServeList returns the most recent messages on the caller's team
// board, newest first, with sender names resolved.
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

	team, err := h.callerTeam(ctx, w, hackID, uid)
	if err != nil {
		return
	}

	msgs, err := messagestore.New(h.DB).ListRecent(ctx, team.ID)
	if err != nil {
		httpjson.Internal(w, h.Log, "list team messages", err)
		return
	}

	senderIDs := make([]primitive.ObjectID, 0, len(msgs))
	for _, m := range msgs {
		senderIDs = append(senderIDs, m.SenderID)
	}
	names, err := userstore.New(h.DB).DisplayByIDs(ctx, senderIDs)
	if err != nil {
		httpjson.Internal(w, h.Log, "resolve sender names", err)
		return
	}

	views := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		v := messageView{
			ID:        m.ID.Hex(),
			SenderID:  m.SenderID.Hex(),
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
		}
		if d, ok := names[m.SenderID]; ok {
			v.SenderName = d.Name
		}
		views = append(views, v)
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]interface{}{"messages": views})
}

// callerTeam resolves the caller's team in the hackathon, writing the
// error response itself when there is none.
func (h *Handler) callerTeam(ctx context.Context, w http.ResponseWriter, hackID, uid primitive.ObjectID) (models.Team, error) {
	team, err := teamstore.New(h.DB, h.Log).GetMyTeam(ctx, hackID, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Forbidden(w, "you do not belong to a team in this hackathon")
			return models.Team{}, err
		}
		httpjson.Internal(w, h.Log, "get caller team", err)
		return models.Team{}, err
	}
	return team, nil
}
