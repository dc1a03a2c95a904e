package main

import (
	"context"
	stderrors "errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/mroshb/shooty_game/internal/config"
	"github.com/mroshb/shooty_game/internal/database"
	"github.com/mroshb/shooty_game/internal/handlers"
	"github.com/mroshb/shooty_game/internal/middleware"
	"github.com/mroshb/shooty_game/internal/repositories"
	"github.com/mroshb/shooty_game/internal/router"
	"github.com/mroshb/shooty_game/internal/services"
	"github.com/mroshb/shooty_game/pkg/logger"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.AppEnv)
	defer logger.Sync()

	logger.Info("Starting Shooty game API...", "env", cfg.AppEnv, "driver", cfg.DBDriver)

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if cfg.SeedFile != "" {
		data, err := database.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			logger.Fatal("Failed to load seed file", err)
		}
		if err := database.Seed(db, data, cfg.StartingMoney); err != nil {
			logger.Warn("Failed to seed database", "error", err)
		}
	}

	limiter, closeLimiter := newLimiter(cfg)
	defer closeLimiter()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           http.TimeoutHandler(router.SetupRouter(cfg, newHandlerManager(cfg, db), limiter), cfg.GetRequestTimeout(), `{"code":"INTERNAL_ERROR","message":"request timed out"}`),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("Server stopped")
}

func newHandlerManager(cfg *config.Config, db *gorm.DB) *handlers.HandlerManager {
	users := repositories.NewUserRepository(db)
	weapons := repositories.NewWeaponRepository(db)
	friendRequests := repositories.NewFriendRequestRepository(db)
	friendships := repositories.NewFriendshipRepository(db)
	scores := repositories.NewScoreRepository(db)

	return handlers.NewHandlerManager(
		cfg,
		db,
		services.NewUserService(db, users, cfg),
		services.NewFriendRequestService(db, friendRequests, friendships, users),
		services.NewFriendshipService(friendships, users),
		services.NewCatalogService(weapons),
		services.NewScoreService(db, scores, users),
	)
}

// newLimiter uses Redis when REDIS_ADDR is set and reachable, otherwise memory.
func newLimiter(cfg *config.Config) (middleware.Limiter, func()) {
	window := cfg.GetRateLimitWindow()

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := client.Ping(ctx).Err()
		if err == nil {
			logger.Info("Using Redis rate limiter", "addr", cfg.RedisAddr)
			return middleware.NewRedisRateLimiter(client, window), func() { client.Close() }
		}
		logger.Warn("Redis unavailable, falling back to in-memory rate limiter", "addr", cfg.RedisAddr, "error", err)
		client.Close()
	}

	rl := middleware.NewRateLimiter(window)
	return rl, rl.Stop
}
