package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"moodlog/internal/apperr"
	"moodlog/internal/middleware"
	"moodlog/internal/models"
	"moodlog/internal/respond"
)

type UserHandler struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserHandler(db *sqlx.DB, logger *zap.Logger) *UserHandler {
	return &UserHandler{db: db, logger: logger}
}

// GetMe returns the current user's profile.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var u models.User
	err := h.db.Get(&u, `SELECT id, username, password_hash, created_at FROM users WHERE id=$1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respond.Error(w, h.logger, apperr.NotFound("user not found"))
			return
		}
		respond.Error(w, h.logger, apperr.Store(err))
		return
	}
	respond.JSON(w, http.StatusOK, u)
}
