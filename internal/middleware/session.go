package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/repository"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Session resolves the bearer token into a session and stores it on the
// request context. A missing, unknown or expired token leaves the request
// anonymous; handlers that need a user reject it themselves.
func Session(sessions repository.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := sessions.GetSession(r.Context(), token)
			if err != nil {
				logger.FromContext(r.Context()).Error("Session lookup failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if session == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the resolved session, or nil for anonymous
// requests.
func SessionFromContext(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return session
}

// WithSession stores a session on the context. Exposed for tests.
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// BearerToken extracts the bearer token from the Authorization header, or
// the token query parameter for transports that cannot set headers.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return r.URL.Query().Get("token")
}
