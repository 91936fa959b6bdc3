package handlers

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"moodlog/internal/auth"
	"moodlog/internal/middleware"
)

var testSecret = []byte("test-secret")

// newTestServer wires the real router, middleware and handlers over a
// sqlmock-backed sqlx.DB, so request tests exercise the same chain the
// server runs.
func newTestServer(t *testing.T) (*chi.Mux, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	db := sqlx.NewDb(mockDB, "sqlmock")

	logger := zap.NewNop()
	authHandler := NewAuthHandler(db, testSecret, time.Hour, logger)
	moodHandler := NewMoodHandler(db, nil, logger)
	statsHandler := NewStatsHandler(db, logger)
	userHandler := NewUserHandler(db, logger)
	authMW := middleware.NewAuthMiddleware(db, testSecret, logger)

	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", authHandler.Register)
		api.Post("/auth/login", authHandler.Login)
		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			pr.Post("/moods", moodHandler.Create)
			pr.Get("/moods", moodHandler.List)
			pr.Get("/stats", statsHandler.Get)
			pr.Get("/users/me", userHandler.GetMe)
		})
	})
	return r, mock
}

func issueTestToken(t *testing.T, userID int) string {
	t.Helper()
	token, err := auth.Issue(testSecret, userID, time.Hour)
	if err != nil {
		t.Fatalf("auth.Issue: %v", err)
	}
	return token
}

// expectUserExists queues the auth middleware's user-existence probe.
func expectUserExists(mock sqlmock.Sqlmock, userID int) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users WHERE id=$1)`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
}
