package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/linkhub/internal/server/auth"
	"github.com/dmitrijs2005/linkhub/internal/server/models"
)

type ctxKey int

const identityKey ctxKey = iota

// withIdentity resolves the Authorization header into "current identity or
// none". A missing or invalid token is not an error here; protected routes
// decide with requireIdentity.
func (s *Server) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if userID, err := auth.GetUserIDFromToken(token, s.jwtSecret); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), identityKey, userID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireIdentity rejects requests that carry no authenticated identity.
func (s *Server) requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identityFromContext(r.Context()); !ok {
			writeJSON(w, http.StatusUnauthorized, errorBody{Message: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin gates the account management routes. Plain users are turned
// away; any elevated role passes. Runs inside requireIdentity, so the
// identity is always present here.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := identityFromContext(r.Context())

		caller, err := s.svc.Users.GetByID(r.Context(), userID)
		if err != nil {
			s.writeError(r.Context(), w, err, "user_id", userID)
			return
		}
		if caller.Role == models.RoleUser {
			writeJSON(w, http.StatusForbidden, errorBody{Message: "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(identityKey).(int64)
	return userID, ok
}
