// internal/app/features/health/handler.go
package health

import (
	"context"
	"net/http"

	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler reports process liveness and database reachability for load
// balancers and orchestrators.
type Handler struct {
	Client *mongo.Client
	Log    *zap.Logger
}

func NewHandler(client *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Log: logger}
}

func (h *Handler) ServeHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	dbStatus := "up"
	status := http.StatusOK
	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Warn("health check ping failed", zap.Error(err))
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	httpjson.WriteJSON(w, status, map[string]string{
		"status":   "ok",
		"database": dbStatus,
	})
}
