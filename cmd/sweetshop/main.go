package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/DimpleKundu/incubyte-sweet-shop/config"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger := bootstrap.InitLogger(os.Stdout, cfg.IsDev)
	logStartupInfo(ctx, logger, &cfg)

	var redisClient redis.UniversalClient
	if cfg.UsesRedis() {
		redisClient, err = bootstrap.ConnectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.Run(ctx, &bootstrap.RunConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting sweet shop storefront",
		"addr", cfg.HTTP.Addr,
		"base_url", cfg.HTTP.BaseURL,
		"shop_api", cfg.ShopAPI.BaseURL,
		"session_store", cfg.Session.Store,
		"dev", cfg.IsDev)
}
