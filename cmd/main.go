package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mihabgit/auth-service/config"
	"github.com/mihabgit/auth-service/db"
	"github.com/mihabgit/auth-service/internal/auth/handler"
	repo "github.com/mihabgit/auth-service/internal/auth/repository/postgres"
	"github.com/mihabgit/auth-service/internal/auth/repository/redisstore"
	"github.com/mihabgit/auth-service/internal/auth/service"
	"github.com/mihabgit/auth-service/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatal("postgres connection failed", zap.Error(err))
	}
	defer dbPool.Close()

	if err := db.Migrate(ctx, dbPool); err != nil {
		log.Fatal("schema migration failed", zap.Error(err))
	}

	redisClient, err := db.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	userRepo := repo.NewPostgresRepository(dbPool)
	blacklist := redisstore.NewTokenBlacklist(redisClient)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	lockout := service.NewLockoutTracker(cfg.LoginMaxAttempts, time.Duration(cfg.LoginLockMinutes)*time.Minute)
	userService := service.NewUserService(userRepo, tokenService, blacklist, lockout, log)
	authHandler := handler.NewAuthHandler(userService)

	go purgeLoop(ctx, userService, time.Duration(cfg.TokenPurgeIntervalM)*time.Minute, log)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	log.Info("starting auth service", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// purgeLoop deletes expired refresh-token rows on a fixed interval.
func purgeLoop(ctx context.Context, userService *service.UserService, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := userService.PurgeExpiredTokens(ctx); err != nil {
				log.Warn("refresh token purge failed", zap.Error(err))
			}
		}
	}
}
