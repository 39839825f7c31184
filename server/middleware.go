package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/poiesic/docquery/auth"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
)

type contextKey int

const userContextKey contextKey = iota

// currentUser returns the authenticated user stored by requireAuth.
func currentUser(ctx context.Context) *core.User {
	user, _ := ctx.Value(userContextKey).(*core.User)
	return user
}

// requireAuth verifies the bearer token and loads the authenticated user
// into the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		userID, err := s.tokens.Verify(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				respondError(w, http.StatusUnauthorized, "Token expired")
				return
			}
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := s.users.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				respondError(w, http.StatusUnauthorized, "User not found")
				return
			}
			s.logger.Error("error loading user", "userID", userID, "err", err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
