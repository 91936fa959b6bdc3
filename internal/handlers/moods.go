package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"moodlog/internal/apperr"
	"moodlog/internal/crypto"
	"moodlog/internal/middleware"
	"moodlog/internal/models"
	"moodlog/internal/respond"
)

type MoodHandler struct {
	db     *sqlx.DB
	cipher *crypto.Cipher // nil when at-rest encryption is disabled
	logger *zap.Logger
}

func NewMoodHandler(db *sqlx.DB, cipher *crypto.Cipher, logger *zap.Logger) *MoodHandler {
	return &MoodHandler{db: db, cipher: cipher, logger: logger}
}

type createMoodRequest struct {
	Mood    models.Mood `json:"mood"`
	Journal string      `json:"journal"`
	Date    *time.Time  `json:"date"`
}

// Create persists a mood entry for the authenticated user. The date defaults
// to submission time; duplicate entries on the same day are allowed.
func (h *MoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req createMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.logger, apperr.Validation("invalid body"))
		return
	}
	if !req.Mood.Valid() {
		respond.Error(w, h.logger, apperr.Validation("mood must be one of: happy, good, neutral, sad, upset"))
		return
	}
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	journal := req.Journal
	if h.cipher != nil {
		var err error
		if journal, err = h.cipher.Encrypt(journal); err != nil {
			respond.Error(w, h.logger, apperr.Store(err))
			return
		}
	}

	var entry models.MoodEntry
	err := h.db.QueryRowx(`INSERT INTO mood_entries (user_id, mood, journal, date)
	                        VALUES ($1, $2, $3, $4)
	                        RETURNING id, user_id, mood, journal, date, created_at, updated_at`,
		userID, req.Mood, journal, date).StructScan(&entry)
	if err != nil {
		respond.Error(w, h.logger, apperr.Store(err))
		return
	}
	entry.Journal = req.Journal
	respond.JSON(w, http.StatusCreated, entry)
}

// List returns the user's entries newest-first. The id tiebreak keeps the
// order stable when several entries share a timestamp.
func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	entries := []models.MoodEntry{}
	err := h.db.Select(&entries, `SELECT id, user_id, mood, journal, date, created_at, updated_at
	                               FROM mood_entries WHERE user_id=$1
	                               ORDER BY date DESC, id DESC`, userID)
	if err != nil {
		respond.Error(w, h.logger, apperr.Store(err))
		return
	}
	if h.cipher != nil {
		for i := range entries {
			plain, err := h.cipher.Decrypt(entries[i].Journal)
			if err != nil {
				respond.Error(w, h.logger, apperr.Store(err))
				return
			}
			entries[i].Journal = plain
		}
	}
	respond.JSON(w, http.StatusOK, entries)
}
