package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"taskgarden/internal/models/user"
	"taskgarden/internal/service"

	"github.com/google/uuid"
)

// SessionCookie carries the opaque session token.
const SessionCookie = "taskgarden_session"

const currentUserKey contextKey = "current_user"

type Authenticator interface {
	Authenticate(ctx context.Context, token uuid.UUID) (*user.User, error)
}

// SessionAuth resolves the session cookie to a user and stores it in the
// request context. Anything missing or stale ends the request with 401.
func SessionAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				unauthorized(w)
				return
			}

			token, err := uuid.Parse(cookie.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			u, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user placed by SessionAuth.
// Handlers behind the middleware can rely on it being non-nil.
func CurrentUser(ctx context.Context) *user.User {
	u, _ := ctx.Value(currentUserKey).(*user.User)
	return u
}

// WithUser is a test hook: it builds the context SessionAuth would.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"error": service.MsgLoginRequired})
}
