// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"

	hackathonsfeature "github.com/inovatehub/hackhub/internal/app/features/hackathons"
	healthfeature "github.com/inovatehub/hackhub/internal/app/features/health"
	messagesfeature "github.com/inovatehub/hackhub/internal/app/features/messages"
	registrationsfeature "github.com/inovatehub/hackhub/internal/app/features/registrations"
	requestsfeature "github.com/inovatehub/hackhub/internal/app/features/requests"
	teamsfeature "github.com/inovatehub/hackhub/internal/app/features/teams"
	"github.com/inovatehub/hackhub/internal/app/system/auth"
	"github.com/inovatehub/hackhub/internal/app/system/httpjson"
	"github.com/inovatehub/hackhub/internal/app/system/reqlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app. WAFFLE calls this after configuration, DB connections,
// schema setup, and Startup have completed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	verifier, err := auth.NewVerifier(appCfg.JWTSecret, logger)
	if err != nil {
		logger.Error("token verifier init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	hackHandler := hackathonsfeature.NewHandler(db, logger)
	regHandler := registrationsfeature.NewHandler(db, logger)
	teamHandler := teamsfeature.NewHandler(db, logger)
	reqHandler := requestsfeature.NewHandler(db, logger)
	msgHandler := messagesfeature.NewHandler(db, logger)

	r := chi.NewRouter()

	r.Use(reqlog.Middleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(appCfg.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Global auth middleware: parses the bearer token, if present, and
	// loads the TokenUser into context. Routes decide whether to require it.
	r.Use(verifier.LoadTokenUser)

	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Mount("/hackathons", hackathonsfeature.Routes(hackHandler, regHandler, teamHandler, reqHandler, msgHandler))
	r.Mount("/registrations", registrationsfeature.Routes(regHandler))
	r.Mount("/teams", teamsfeature.Routes(teamHandler, reqHandler))
	r.Mount("/requests", requestsfeature.Routes(reqHandler))
	r.Mount("/invitations", requestsfeature.InvitationRoutes(reqHandler))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpjson.NotFound(w, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpjson.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r, nil
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{"*"}
	}
	return out
}
