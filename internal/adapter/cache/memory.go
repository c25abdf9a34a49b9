package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/entity"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/service"
)

// MemoryCache is an in-process prediction cache
type MemoryCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

var _ service.PredictionCache = (*MemoryCache)(nil)

// NewMemoryCache creates a cache holding up to maxEntries results
func NewMemoryCache(maxEntries int64, ttl time.Duration) (*MemoryCache, error) {
	if maxEntries < 1 {
		return nil, fmt.Errorf("max entries must be positive, got %d", maxEntries)
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	return &MemoryCache{cache: c, ttl: ttl}, nil
}

// Get returns the cached result for key
func (m *MemoryCache) Get(_ context.Context, key string) (entity.PredictionResult, bool) {
	v, ok := m.cache.Get(key)
	if !ok {
		return entity.PredictionResult{}, false
	}
	result, ok := v.(entity.PredictionResult)
	return result, ok
}

// Set stores result under key. Writes are applied asynchronously.
func (m *MemoryCache) Set(_ context.Context, key string, result entity.PredictionResult) {
	m.cache.SetWithTTL(key, result, 1, m.ttl)
}

// Wait blocks until buffered writes are applied
func (m *MemoryCache) Wait() {
	m.cache.Wait()
}

// Close stops the cache's background goroutines
func (m *MemoryCache) Close() error {
	m.cache.Close()
	return nil
}
