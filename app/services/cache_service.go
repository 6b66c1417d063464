package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultL1Size = 1000

// CacheService in-memory expiring LRU cache
type CacheService struct {
	cache *expirable.LRU[string, []string]
	ttl   time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheService creates an in-memory cache holding at most size keys
func NewCacheService(size int, ttl time.Duration) *CacheService {
	if size <= 0 {
		size = defaultL1Size
	}
	return &CacheService{
		cache: expirable.NewLRU[string, []string](size, nil, ttl),
		ttl:   ttl,
	}
}

// Get returns a copy of the cached candidates
func (cs *CacheService) Get(ctx context.Context, key string) ([]string, bool, error) {
	candidates, ok := cs.cache.Get(key)
	if !ok {
		cs.misses.Add(1)
		return nil, false, nil
	}
	cs.hits.Add(1)
	return append([]string(nil), candidates...), true, nil
}

// Set stores a copy of candidates
func (cs *CacheService) Set(ctx context.Context, key string, candidates []string) error {
	cs.cache.Add(key, append([]string{}, candidates...))
	return nil
}

// Delete removes key
func (cs *CacheService) Delete(ctx context.Context, key string) error {
	cs.cache.Remove(key)
	return nil
}

// Clear purges the cache and resets counters
func (cs *CacheService) Clear(ctx context.Context) error {
	cs.cache.Purge()
	cs.hits.Store(0)
	cs.misses.Store(0)
	return nil
}

// GetStats returns cache statistics
func (cs *CacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits, misses := cs.hits.Load(), cs.misses.Load()
	return &CacheStats{
		Backend:    "memory",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(cs.cache.Len()),
	}, nil
}

// Size returns the number of live keys
func (cs *CacheService) Size() int {
	return cs.cache.Len()
}

// Close is a no-op for the in-memory cache
func (cs *CacheService) Close() error {
	return nil
}
