package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "dng-api/internal/config"
	intdb "dng-api/internal/db"
	router "dng-api/internal/http"
	"dng-api/internal/http/handlers"
	"dng-api/internal/repositories"
	"dng-api/internal/services"
	"dng-api/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logger, err := utils.NewLogger(env.GinMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := intconfig.OpenDB(context.Background(), env.DB)
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()
	logger.Info("connected to MySQL", zap.String("db", env.DB.Name), zap.Int("pool_size", env.DB.PoolSize))

	if env.AutoMigrate {
		if err := intdb.EnsureSchema(context.Background(), db); err != nil {
			logger.Fatal("schema bootstrap failed", zap.Error(err))
		}
	}

	repo := repositories.BookingRepository{DB: db}
	auth := services.AuthService{
		Username:     env.AdminUser,
		PasswordHash: env.AdminPasswordHash,
		Secret:       []byte(env.JWTSecret),
		TTL:          env.JWTTTL,
	}
	if !auth.Enabled() {
		logger.Warn("JWT_SECRET not set; admin routes are unauthenticated")
	}

	hd := &handlers.Handler{
		DB:       db,
		Bookings: services.BookingService{Repo: repo, Log: logger},
		Admin:    services.AdminService{Repo: repo, Log: logger},
		Docs:     services.DocsService{Repo: repo, Log: logger},
		Auth:     auth,
		Log:      logger,
	}
	r := router.NewRouter(env, hd, logger)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return
	}

	logger.Info("server stopped")
}
