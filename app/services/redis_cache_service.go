package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "delivery_geo:"

// RedisCacheService cache service backed by Redis
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCacheService connects to redisURL and checks the connection
func NewRedisCacheService(redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisCacheServiceWithClient(client, ttl, logger), nil
}

// NewRedisCacheServiceWithClient wraps an existing client
func NewRedisCacheServiceWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCacheService{
		client: client,
		logger: logger,
		prefix: redisKeyPrefix,
		ttl:    ttl,
	}
}

// Get returns cached candidates
func (rcs *RedisCacheService) Get(ctx context.Context, key string) ([]string, bool, error) {
	cacheKey := rcs.prefix + key

	val, err := rcs.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		rcs.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		rcs.logger.Error("Redis get failed", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var candidates []string
	if err := json.Unmarshal(val, &candidates); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached candidates: %w", err)
	}

	rcs.hits.Add(1)
	rcs.logger.Debug("Redis cache hit", zap.String("key", key))
	return candidates, true, nil
}

// Set stores candidates with the configured TTL
func (rcs *RedisCacheService) Set(ctx context.Context, key string, candidates []string) error {
	cacheKey := rcs.prefix + key
	if candidates == nil {
		candidates = []string{}
	}

	data, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("marshal candidates: %w", err)
	}

	if err := rcs.client.Set(ctx, cacheKey, data, rcs.ttl).Err(); err != nil {
		rcs.logger.Error("Redis set failed", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

// Delete removes key
func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	return rcs.client.Del(ctx, rcs.prefix+key).Err()
}

// Clear removes every key under the service prefix
func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	keys, err := rcs.keys(ctx)
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := rcs.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("delete keys: %w", err)
		}
	}

	rcs.hits.Store(0)
	rcs.misses.Store(0)
	rcs.logger.Info("Cleared Redis cache", zap.Int("keys_deleted", len(keys)))
	return nil
}

// GetStats returns cache statistics
func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	keys, err := rcs.keys(ctx)
	if err != nil {
		return nil, err
	}

	hits, misses := rcs.hits.Load(), rcs.misses.Load()
	return &CacheStats{
		Backend:    "redis",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(len(keys)),
	}, nil
}

// GetTTL returns the remaining TTL of key
func (rcs *RedisCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return rcs.client.TTL(ctx, rcs.prefix+key).Result()
}

// Close closes the Redis connection
func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}

func (rcs *RedisCacheService) keys(ctx context.Context) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := rcs.client.Scan(ctx, cursor, rcs.prefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scan keys: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}
