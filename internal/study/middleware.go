package study

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/verbum-dei-api/pkg/response"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionMiddleware resolves the bearer token to a session, marks it seen and
// active for the length of the request, and stores it in the request context.
func (m *Manager) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, http.StatusUnauthorized, "Missing Authorization header", "no session token")
			return
		}

		// Must start with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Error(w, http.StatusUnauthorized, "Invalid token format", "")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		s, err := m.Acquire(r.Context(), tokenStr)
		if err != nil {
			m.logger.Debug("rejected session token", zap.Error(err))
			response.Error(w, http.StatusUnauthorized, "Invalid or expired token", "")
			return
		}
		defer s.end()

		ctx := context.WithValue(r.Context(), sessionContextKey, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func SessionFromContext(r *http.Request) (*Session, bool) {
	s, ok := r.Context().Value(sessionContextKey).(*Session)
	return s, ok
}
