package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/entity"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/service"
)

// RedisCache shares cached predictions between replicas
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

var _ service.PredictionCache = (*RedisCache)(nil)

// NewRedisCache creates a Redis-backed prediction cache
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached result for key. Redis errors count as a miss.
func (r *RedisCache) Get(ctx context.Context, key string) (entity.PredictionResult, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("Prediction cache read failed", zap.String("key", key), zap.Error(err))
		}
		return entity.PredictionResult{}, false
	}

	var result entity.PredictionResult
	if err := json.Unmarshal(data, &result); err != nil {
		r.logger.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return entity.PredictionResult{}, false
	}
	return result, true
}

// Set stores result under key with the configured TTL
func (r *RedisCache) Set(ctx context.Context, key string, result entity.PredictionResult) {
	data, err := json.Marshal(result)
	if err != nil {
		r.logger.Warn("Failed to encode cache entry", zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("Prediction cache write failed", zap.String("key", key), zap.Error(err))
	}
}
