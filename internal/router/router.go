package router

import (
	"fmt"
	"log/slog"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-midea/feed/internal/handlers"
	"github.com/anonto42/nano-midea/feed/internal/middleware"
	"github.com/anonto42/nano-midea/feed/internal/models"
	"github.com/anonto42/nano-midea/feed/internal/repositories"
	"github.com/anonto42/nano-midea/feed/internal/services"
	"github.com/anonto42/nano-midea/feed/pkg/config"
	"github.com/anonto42/nano-midea/feed/pkg/media"
	"github.com/labstack/echo/v4"
)

// Dependencies are the process-level collaborators the routes are built from
type Dependencies struct {
	Config       *config.Config
	DB           *config.DB
	Media        media.Store
	FirebaseAuth *auth.Client // only when AUTH_PROVIDER=firebase
	Logger       *slog.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	cfg := deps.Config
	logger := deps.Logger

	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := deps.DB.Mongo.Database(cfg.MongoDatabase)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	userRepo := repositories.NewMongoUserRepository(mongoDB)

	var notificationRepo repositories.NotificationRepository
	switch cfg.NotificationStore {
	case config.NotificationsPostgres:
		if err := deps.DB.Postgres.AutoMigrate(&models.NotificationRecord{}); err != nil {
			return fmt.Errorf("failed to auto migrate notifications: %w", err)
		}
		logger.Info("PostgreSQL auto-migrations completed for notifications.")
		notificationRepo = repositories.NewPostgresNotificationRepository(deps.DB.Postgres)
	default:
		notificationRepo = repositories.NewMongoNotificationRepository(mongoDB)
	}

	var tx repositories.Transactor = repositories.SequentialTransactor{}
	if cfg.MongoTransactions {
		tx = repositories.NewMongoTransactor(deps.DB.Mongo)
		logger.Info("Like toggles run inside MongoDB transactions.")
	}

	// --- Initialize Services ---
	feedService := services.NewFeedService(postRepo, userRepo)
	postService := services.NewPostService(postRepo, userRepo, deps.Media, logger)
	likeService := services.NewLikeService(postRepo, userRepo, notificationRepo, tx)

	// --- Protected routes ---
	protect, err := authMiddleware(deps, userRepo)
	if err != nil {
		return err
	}
	posts := e.Group("/posts", protect)
	logger.Info("Authentication middleware applied to /posts group.", slog.String("provider", cfg.AuthProvider))

	postHandler := handlers.NewPostHandler(feedService, postService, likeService, logger)
	postHandler.RegisterPostRoutes(posts)
	logger.Info("Post routes configured.")

	return nil
}

func authMiddleware(deps Dependencies, users repositories.UserRepository) (echo.MiddlewareFunc, error) {
	switch deps.Config.AuthProvider {
	case config.AuthFirebase:
		if deps.FirebaseAuth == nil {
			return nil, fmt.Errorf("firebase auth client not initialized")
		}
		return middleware.FirebaseAuthMiddleware(deps.FirebaseAuth, users), nil
	case config.AuthJWT:
		return middleware.JWTAuthMiddleware(deps.Config.JWTSecret, users), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", deps.Config.AuthProvider)
	}
}
