package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"moodlog/internal/apperr"
	"moodlog/internal/auth"
	"moodlog/internal/respond"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserID returns the authenticated user's id from a request context that
// passed RequireAuth.
func UserID(ctx context.Context) int {
	id, _ := ctx.Value(userIDKey).(int)
	return id
}

type AuthMiddleware struct {
	db        *sqlx.DB
	jwtSecret []byte
	logger    *zap.Logger
}

func NewAuthMiddleware(db *sqlx.DB, secret []byte, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{db: db, jwtSecret: secret, logger: logger}
}

// RequireAuth rejects requests lacking a valid bearer token, or whose token
// references a user that no longer exists. A store failure on the existence
// probe is a 500, not a 401: clients treat 401 as session invalidation, and
// a DB blip must not log anyone out.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			respond.Error(w, m.logger, apperr.Auth("missing token"))
			return
		}
		tokenStr := strings.TrimPrefix(authz, "Bearer ")

		userID, err := auth.Verify(m.jwtSecret, tokenStr)
		if err != nil {
			respond.Error(w, m.logger, err)
			return
		}

		var exists bool
		if err := m.db.QueryRowx(`SELECT EXISTS (SELECT 1 FROM users WHERE id=$1)`, userID).Scan(&exists); err != nil {
			respond.Error(w, m.logger, apperr.Store(err))
			return
		}
		if !exists {
			respond.Error(w, m.logger, apperr.Auth("invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
