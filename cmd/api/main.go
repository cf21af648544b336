// Package main is the entry point for the stores API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/flyosprey/Store-REST-API/internal/config"
	"github.com/flyosprey/Store-REST-API/internal/database"
	"github.com/flyosprey/Store-REST-API/internal/handlers"
	"github.com/flyosprey/Store-REST-API/internal/logging"
	"github.com/flyosprey/Store-REST-API/internal/metrics"
	"github.com/flyosprey/Store-REST-API/internal/middleware"
	"github.com/flyosprey/Store-REST-API/internal/notification"
	"github.com/flyosprey/Store-REST-API/internal/repository"
	"github.com/flyosprey/Store-REST-API/internal/routes"
	"github.com/flyosprey/Store-REST-API/internal/service"
	"github.com/flyosprey/Store-REST-API/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// @title Stores REST API
// @version 1.0
// @description Stores, items and tags behind JWT authentication
// @host localhost:5001
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := run(); err != nil {
		slog.Error("stores api stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.Setup("stores-api", cfg.LogFormat, cfg.LogLevel, nil)
	slog.SetDefault(logger)

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL, database.Options{})
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(context.Background(), cfg.RedisURL)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsCollector := metrics.New(registry)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	itemRepo := repository.NewItemRepository(db)
	tagRepo := repository.NewTagRepository(db)

	// Initialize services
	hasher, err := service.NewPasswordHasher(cfg.PasswordRounds)
	if err != nil {
		return err
	}
	jwtService, err := service.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	if err != nil {
		return err
	}
	blocklist := service.NewBlocklist()
	metricsCollector.RegisterRevokedTokens(blocklist.Len)
	dispatcher := notification.NewRedisDispatcher(redisClient, cfg.EmailQueue, metricsCollector)

	authService := service.NewAuthService(userRepo, hasher, jwtService, blocklist, dispatcher)
	userService := service.NewUserService(userRepo)
	storeService := service.NewStoreService(storeRepo)
	itemService := service.NewItemService(itemRepo, storeRepo)
	tagService := service.NewTagService(tagRepo, itemRepo, storeRepo)

	// Initialize handlers
	h := routes.Handlers{
		Auth:   handlers.NewAuthHandler(authService),
		User:   handlers.NewUserHandler(userService),
		Store:  handlers.NewStoreHandler(storeService),
		Item:   handlers.NewItemHandler(itemService),
		Tag:    handlers.NewTagHandler(tagService),
		Health: handlers.NewHealthHandler(pingDB(db)),
	}

	// Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), metricsCollector.Middleware())

	authenticator := middleware.NewAuthenticator(jwtService, blocklist, metricsCollector)
	routes.Setup(router, h, authenticator, registry)

	// Start server
	logger.Info("starting stores api", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func pingDB(db *gorm.DB) handlers.PingFunc {
	return func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}
}
