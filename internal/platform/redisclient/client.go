package redisclient

import (
	"context"
	"fmt"
	"time"

	"myapp_backend/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewClient connects to Redis when REDIS_ADDR is set. It returns a nil
// client (and no error) when Redis is not configured. The cleanup closes
// the client.
func NewClient(cfg *config.Config, logger *zap.Logger) (*redis.Client, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, Redis disabled")
		return nil, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}

	logger.Info("Redis connection successful", zap.String("address", cfg.RedisAddr))
	cleanup := func() {
		if err := rdb.Close(); err != nil {
			logger.Error("Failed to close Redis client", zap.Error(err))
		}
	}
	return rdb, cleanup, nil
}
