// Package auth validates the bearer identity assertions issued by the
// external identity service and makes the resolved user available to
// handlers through the request context.
//
// Token issuance lives outside this service; all we share with the issuer
// is the HS256 secret and the claim layout (sub, email, name, user_type).
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// TokenUser is the identity carried by a verified assertion. It is what we
// inject into r.Context() for handlers.
type TokenUser struct {
	ID    string
	Name  string
	Email string
	Role  string // participant | organizer | judge
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

var ErrInvalidToken = errors.New("invalid or expired token")

// Verifier checks bearer assertions against the shared signing secret.
type Verifier struct {
	secret []byte
	log    *zap.Logger
}

// NewVerifier builds a Verifier. The secret must be non-empty; anything
// shorter than 32 bytes gets a startup warning.
func NewVerifier(secret string, logger *zap.Logger) (*Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty; provide ≥32 random chars")
	}
	if len(secret) < 32 && logger != nil {
		logger.Warn("jwt secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	return &Verifier{secret: []byte(secret), log: logger}, nil
}

// Verify parses and validates a compact JWT and returns the identity it
// asserts. Only HMAC signatures are accepted.
func (v *Verifier) Verify(tokenString string) (*TokenUser, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}

	u := &TokenUser{ID: sub}
	u.Email, _ = claims["email"].(string)
	u.Name, _ = claims["name"].(string)
	u.Role, _ = claims["user_type"].(string)
	if u.Role == "" {
		u.Role = "participant"
	}
	return u, nil
}

// CurrentUser returns the verified user and a "found?" flag.
func CurrentUser(r *http.Request) (*TokenUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*TokenUser)
	return u, ok
}

// LoadTokenUser injects the user into context when the request carries a
// valid bearer token. Requests without a token pass through anonymous;
// RequireSignedIn decides whether that is acceptable per route.
func (v *Verifier) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := bearerToken(r); raw != "" {
			if u, err := v.Verify(raw); err == nil {
				r = withUser(r, u)
			} else if v.log != nil {
				v.log.Debug("rejected bearer token", zap.Error(err))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a verified user in context
// (set by LoadTokenUser) and responds 401 otherwise.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			writeAuthError(w, http.StatusUnauthorized, "missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the verified user has one of the allowed roles.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "missing or invalid bearer token")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				writeAuthError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithTestUser injects a user directly into the request context,
// bypassing token verification. For tests only.
func WithTestUser(r *http.Request, u *TokenUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *TokenUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, "{\"error\":%q}\n", msg)
}
