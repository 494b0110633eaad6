package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-midea/feed/internal/router"
	"github.com/anonto42/nano-midea/feed/pkg/config"
	"github.com/anonto42/nano-midea/feed/pkg/firebase"
	"github.com/anonto42/nano-midea/feed/pkg/media"
	"github.com/anonto42/nano-midea/feed/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

// run owns every resource it opens, so deferred cleanup runs on all exits
func run(cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize databases: %w", err)
	}
	defer db.CloseDB()

	ctx := context.Background()

	store, err := newMediaStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize media store: %w", err)
	}

	var firebaseAuth *auth.Client
	if cfg.AuthProvider == config.AuthFirebase {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return fmt.Errorf("failed to initialize Firebase: %w", err)
		}
		firebaseAuth = firebaseApp.AuthClient
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e, logger)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, router.Dependencies{
		Config:       cfg,
		DB:           db,
		Media:        store,
		FirebaseAuth: firebaseAuth,
		Logger:       logger,
	}); err != nil {
		return fmt.Errorf("failed to configure routes: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()
	logger.Info("Server started", slog.String("port", cfg.Port), slog.String("env", cfg.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-quit:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func newMediaStore(ctx context.Context, cfg *config.Config) (media.Store, error) {
	switch cfg.MediaProvider {
	case config.MediaS3:
		return media.NewS3Store(ctx, media.S3Config{
			Bucket:          cfg.AWSBucketName,
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			Folder:          cfg.S3Folder,
		})
	default:
		if cfg.CloudinaryURL != "" {
			return media.NewCloudinaryStore(cfg.CloudinaryURL)
		}
		return media.NewCloudinaryStoreFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	}
}
