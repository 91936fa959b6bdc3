package handlers

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"moodlog/internal/apperr"
	"moodlog/internal/middleware"
	"moodlog/internal/respond"
	"moodlog/internal/stats"
)

type StatsHandler struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStatsHandler(db *sqlx.DB, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{db: db, logger: logger}
}

type statsResponse struct {
	TotalPoints   int `json:"total_points"`
	CurrentStreak int `json:"current_streak"`
	EntryCount    int `json:"entry_count"`
}

// Get computes points and the current daily streak for the authenticated
// user. Accepts optional query param local_date=YYYY-MM-DD to use as the
// user's "today".
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	today := time.Now()
	if refDateStr := r.URL.Query().Get("local_date"); refDateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", refDateStr, time.Local)
		if err != nil {
			respond.Error(w, h.logger, apperr.Validation("invalid local_date format; expected YYYY-MM-DD"))
			return
		}
		today = parsed
	}

	rows, err := h.db.Queryx(`SELECT date FROM mood_entries WHERE user_id=$1`, userID)
	if err != nil {
		respond.Error(w, h.logger, apperr.Store(err))
		return
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			respond.Error(w, h.logger, apperr.Store(err))
			return
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		respond.Error(w, h.logger, apperr.Store(err))
		return
	}

	respond.JSON(w, http.StatusOK, statsResponse{
		TotalPoints:   stats.Points(len(dates)),
		CurrentStreak: stats.Streak(dates, today),
		EntryCount:    len(dates),
	})
}
