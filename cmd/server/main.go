package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"moodlog/internal/config"
	"moodlog/internal/crypto"
	"moodlog/internal/db"
	"moodlog/internal/handlers"
	mw "moodlog/internal/middleware"
)

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet; config failures go straight to stderr.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}
	if err := db.RunMigrations(dbConn); err != nil {
		logger.Fatal("failed migrations", zap.Error(err))
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.RequestLogger(logger))

	var cipher *crypto.Cipher
	if len(cfg.EncryptionKey) > 0 {
		cipher, err = crypto.New(cfg.EncryptionKey)
		if err != nil {
			logger.Fatal("failed to init encryption", zap.Error(err))
		}
	}

	authHandler := handlers.NewAuthHandler(dbConn, cfg.JWTSecret, cfg.TokenTTL, logger)
	moodHandler := handlers.NewMoodHandler(dbConn, cipher, logger)
	statsHandler := handlers.NewStatsHandler(dbConn, logger)
	userHandler := handlers.NewUserHandler(dbConn, logger)
	authMW := mw.NewAuthMiddleware(dbConn, cfg.JWTSecret, logger)

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

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info("server stopped")
}
