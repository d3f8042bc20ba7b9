// internal/app/features/requests/handler.go

// Package requests implements the mediated paths onto a team: join
// requests a participant sends to a leader and invitations a leader
// sends to a participant. Both share one pending/approved/rejected
// record; only the direction and the resolver differ.
package requests

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the requests feature.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}
