package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/postcraft/postcraft/backend-go/internal/httpx"
)

type contextKey string

// UserIDKey carries the authenticated user's id through request contexts.
const UserIDKey contextKey = "userID"

// RequireAuth rejects requests without a valid bearer token and stashes the
// token subject in the request context.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			httpx.Error(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := s.ValidateToken(token)
		if err != nil {
			httpx.Error(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user id, or "" outside
// RequireAuth.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}
