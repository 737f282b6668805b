package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TokenBlocklistService records revoked session token ids until the token
// would have expired anyway.
type TokenBlocklistService interface {
	AddToBlocklist(ctx context.Context, jti string, expiresAt time.Time) error
	IsBlocklisted(ctx context.Context, jti string) (bool, error)
}

// NewBlocklist picks Redis when a client is configured, otherwise an
// in-process cache (revocations are then lost on restart).
func NewBlocklist(rdb *redis.Client, logger *zap.Logger) TokenBlocklistService {
	if rdb != nil {
		logger.Info("Using Redis token blocklist")
		return NewRedisBlocklistService(rdb, "blocklist:jti")
	}
	logger.Info("Using in-memory token blocklist")
	return NewInMemoryBlocklistService(InMemoryBlocklistConfig{
		DefaultExpiration: time.Hour,
		CleanupInterval:   10 * time.Minute,
	})
}

// InMemoryBlocklistService keeps revoked ids in a go-cache with per-item TTL.
type InMemoryBlocklistService struct {
	cache *cache.Cache
	now   func() time.Time
}

// InMemoryBlocklistConfig holds the configuration for the InMemoryBlocklistService.
type InMemoryBlocklistConfig struct {
	DefaultExpiration time.Duration
	CleanupInterval   time.Duration
}

func NewInMemoryBlocklistService(cfg InMemoryBlocklistConfig) *InMemoryBlocklistService {
	return &InMemoryBlocklistService{
		cache: cache.New(cfg.DefaultExpiration, cfg.CleanupInterval),
		now:   time.Now,
	}
}

func (s *InMemoryBlocklistService) AddToBlocklist(_ context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	s.cache.Set(jti, true, ttl)
	return nil
}

func (s *InMemoryBlocklistService) IsBlocklisted(_ context.Context, jti string) (bool, error) {
	_, found := s.cache.Get(jti)
	return found, nil
}

// RedisBlocklistService stores revoked ids as keys with a TTL.
type RedisBlocklistService struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisBlocklistService(client *redis.Client, prefix string) *RedisBlocklistService {
	return &RedisBlocklistService{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisBlocklistService) key(jti string) string {
	return fmt.Sprintf("%s:%s", s.prefix, jti)
}

func (s *RedisBlocklistService) AddToBlocklist(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("blocklist token: %w", err)
	}
	return nil
}

func (s *RedisBlocklistService) IsBlocklisted(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check blocklist: %w", err)
	}
	return n > 0, nil
}
