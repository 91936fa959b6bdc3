package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"moodlog/internal/apperr"
	"moodlog/internal/auth"
	"moodlog/internal/models"
	"moodlog/internal/respond"
)

const uniqueViolation = "23505"

type AuthHandler struct {
	db        *sqlx.DB
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthHandler(db *sqlx.DB, jwtSecret []byte, tokenTTL time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body credentials true "Username and password"
// @Success 201 {object} tokenResponse
// @Failure 400 {string} string "Validation failure"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respond.Error(w, h.logger, apperr.Validation("invalid body"))
		return
	}
	c.Username = strings.TrimSpace(strings.ToLower(c.Username))
	if c.Username == "" || c.Password == "" {
		respond.Error(w, h.logger, apperr.Validation("username and password required"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Error(w, h.logger, apperr.Store(err))
		return
	}

	var user models.User
	err = h.db.QueryRowx(`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id, username, password_hash, created_at`, c.Username, string(hashed)).StructScan(&user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			respond.Error(w, h.logger, apperr.Validation("username already taken"))
			return
		}
		respond.Error(w, h.logger, apperr.Store(err))
		return
	}

	token, err := auth.Issue(h.jwtSecret, user.ID, h.tokenTTL)
	if err != nil {
		respond.Error(w, h.logger, apperr.Store(err))
		return
	}
	respond.JSON(w, http.StatusCreated, tokenResponse{Token: token, Username: user.Username})
}

// Login exchanges credentials for a token. Unknown usernames and wrong
// passwords produce the same response, so callers cannot enumerate users.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respond.Error(w, h.logger, apperr.Validation("invalid body"))
		return
	}
	c.Username = strings.TrimSpace(strings.ToLower(c.Username))
	if c.Username == "" || c.Password == "" {
		respond.Error(w, h.logger, apperr.Validation("username and password required"))
		return
	}

	var user models.User
	err := h.db.Get(&user, `SELECT id, username, password_hash, created_at FROM users WHERE username=$1`, c.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respond.Error(w, h.logger, apperr.Auth("invalid credentials"))
			return
		}
		respond.Error(w, h.logger, apperr.Store(err))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(c.Password)) != nil {
		respond.Error(w, h.logger, apperr.Auth("invalid credentials"))
		return
	}

	token, err := auth.Issue(h.jwtSecret, user.ID, h.tokenTTL)
	if err != nil {
		respond.Error(w, h.logger, apperr.Store(err))
		return
	}
	respond.JSON(w, http.StatusOK, tokenResponse{Token: token, Username: user.Username})
}
