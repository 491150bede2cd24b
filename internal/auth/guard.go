package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/sakif/lessonhub/internal/apperror"
	"github.com/sakif/lessonhub/internal/model"
	"github.com/sakif/lessonhub/internal/repository"
)

// SessionHeader is the sole authentication credential on protected routes.
const SessionHeader = "X-Session-ID"

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the stored user.
type contextKey string

const userKey contextKey = "user"

// Guard resolves a session token to a full user record. It runs on every
// protected request; nothing is cached between requests — the session and
// user rows are re-read from the store each time.
type Guard struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
	now      func() time.Time
}

// NewGuard creates a Guard over the session and user stores.
func NewGuard(sessions repository.SessionRepository, users repository.UserRepository) *Guard {
	return &Guard{
		sessions: sessions,
		users:    users,
		now:      time.Now,
	}
}

// Resolve returns the user bound to the session token, or Unauthorized.
//
// Every failure mode collapses to Unauthorized: missing token, unknown
// token, expired session, and a session whose user no longer exists (a data
// inconsistency, but indistinguishable to the caller). Expiry is strict —
// a session is rejected the moment now reaches expires_at.
func (g *Guard) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperror.Unauthorized("session ID required")
	}

	session, err := g.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, apperror.Unauthorized("invalid or expired session")
	}
	if !session.Valid(g.now()) {
		return nil, apperror.Unauthorized("invalid or expired session")
	}

	user, err := g.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, apperror.Unauthorized("user not found")
	}

	return user, nil
}

// RequireUser is the middleware enforcing authentication on protected
// routes. It reads the X-Session-ID header, resolves it through the guard,
// and stores the full user record in the request context. A failed
// resolution ends the request with 401 before any handler runs.
func RequireUser(guard *Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := guard.Resolve(r.Context(), r.Header.Get(SessionHeader))
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"` + err.Error() + `"}`))
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user stored by RequireUser.
// Returns (nil, false) if the request did not pass through the middleware.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}
