package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"renthour-bot/internal/bot"
	"renthour-bot/internal/config"
	"renthour-bot/internal/storage"
	"renthour-bot/internal/storage/migrations"
	"renthour-bot/pkg/api"
	"renthour-bot/pkg/logger"
	"renthour-bot/pkg/redis"

	"go.uber.org/zap"
)

// ENTRY POINT

func main() {
	zapLogger, err := logger.New()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	redisClient := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	defer redisClient.Close()

	pgStorage, err := storage.NewPostgresStorage(ctx, cfg.Database, redisClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init PostgreSQL storage", zap.Error(err))
	}
	defer pgStorage.Close()

	if err := migrations.RunMigrations(ctx, pgStorage.DB(), "postgres"); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	apiClient := api.NewClient(cfg.API.BaseURL, cfg.API.Key, cfg.API.RequestTimeout, zapLogger)

	tgBot, err := bot.New(
		cfg.TelegramToken,
		apiClient,
		redisClient,
		pgStorage,
		zapLogger,
		cfg,
	)
	if err != nil {
		zapLogger.Fatal("Failed to create bot", zap.Error(err))
	}

	if err := tgBot.Start(ctx); err != nil {
		zapLogger.Fatal("Bot stopped with error", zap.Error(err))
	}

	zapLogger.Info("Bot shutdown gracefully")
}
