package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"venue-status-backend/config"
	"venue-status-backend/internal/api"
	"venue-status-backend/internal/auth"
	"venue-status-backend/internal/db"
	"venue-status-backend/internal/logger"
	"venue-status-backend/internal/notification"
	"venue-status-backend/internal/projector"
	"venue-status-backend/internal/store"
	"venue-status-backend/internal/venue"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	zlog, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	zlog.Info("configuration loaded", zap.String("path", configPath))

	if cfg.Auth.JWTSecret == "" {
		zlog.Warn("jwt secret is not configured; set it via config or JWT_SECRET")
		cfg.Auth.JWTSecret = "insecure-dev-secret"
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)

	seeded, err := db.SeedIfEmpty(ctx, appStore)
	if err != nil {
		zlog.Fatal("failed to seed venues", zap.Error(err))
	}
	if seeded {
		zlog.Info("seeded initial venue list")
	}

	// Auth gate: single seeded principal, signed time-bounded tokens.
	identities, err := auth.NewStaticIdentityStore(cfg.Auth.Username, cfg.Auth.PasswordHash)
	if err != nil {
		zlog.Fatal("failed to initialize identity store", zap.Error(err))
	}
	gate := auth.NewGate(identities, auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))

	venueSvc := venue.NewService(appStore, zlog)

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	// Notification worker pool, fed by the projector on closed->open flips.
	workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, &webpushOptions, zlog)
	workerPool.Start(ctx)

	projSvc := projector.NewService(&cfg.Projector, appStore, workerPool, zlog)
	go projSvc.Run(ctx)

	// Initialize router
	router := api.NewRouter(&cfg.Server, appStore, venueSvc, gate, projSvc, &webpushOptions, zlog)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		zlog.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP server ListenAndServe", zap.Error(err))
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	zlog.Info("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("HTTP server shutdown", zap.Error(err))
	}

	zlog.Info("server gracefully stopped")
}
