package middleware

import (
	"context"
	"net/http"
	"strings"

	"ortofrutticola/internal/admin"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const sessionIDKey contextKey = "admin_session_id"

// AdminAuthMiddleware validates admin session tokens and puts the session id
// on the request context.
func AdminAuthMiddleware(sessions *admin.Sessions, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Debug("Malformed authorization header")
				RespondWithError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, err := sessions.ValidateToken(parts[1])
			if err != nil {
				logger.Debug("Rejected admin token", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionID extracts the admin session id from the request context.
func GetSessionID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(sessionIDKey).(uuid.UUID)
	return id, ok
}
