package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// HybridCacheService two-level cache: a fast L1 (Redis) in front of a persistent L2 (MongoDB)
type HybridCacheService struct {
	l1     ICacheService
	l2     ICacheService
	logger *zap.Logger
}

// NewHybridCacheService creates a hybrid cache service
func NewHybridCacheService(l1, l2 ICacheService, logger *zap.Logger) *HybridCacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HybridCacheService{l1: l1, l2: l2, logger: logger}
}

// Get tries L1, then L2. An L2 hit is copied back into L1.
func (hcs *HybridCacheService) Get(ctx context.Context, key string) ([]string, bool, error) {
	candidates, found, err := hcs.l1.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("L1 cache failed, falling back to L2", zap.Error(err))
	} else if found {
		return candidates, true, nil
	}

	candidates, found, err = hcs.l2.Get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}

	if err := hcs.l1.Set(ctx, key, candidates); err != nil {
		hcs.logger.Warn("Cannot copy L2 hit into L1", zap.Error(err), zap.String("key", key))
	}
	return candidates, true, nil
}

// Set writes both levels
func (hcs *HybridCacheService) Set(ctx context.Context, key string, candidates []string) error {
	return errors.Join(hcs.l1.Set(ctx, key, candidates), hcs.l2.Set(ctx, key, candidates))
}

// Delete removes key from both levels
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	return errors.Join(hcs.l1.Delete(ctx, key), hcs.l2.Delete(ctx, key))
}

// Clear clears both levels
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	err := errors.Join(hcs.l1.Clear(ctx), hcs.l2.Clear(ctx))
	if err == nil {
		hcs.logger.Info("Cleared hybrid geocode cache")
	}
	return err
}

// GetStats combines the statistics of both levels
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	l1Stats, l1Err := hcs.l1.GetStats(ctx)
	l2Stats, l2Err := hcs.l2.GetStats(ctx)

	switch {
	case l1Err != nil && l2Err != nil:
		return nil, errors.Join(l1Err, l2Err)
	case l1Err != nil:
		return l2Stats, nil
	case l2Err != nil:
		return l1Stats, nil
	}

	hits := l1Stats.TotalHits + l2Stats.TotalHits
	// an L1 miss that hits L2 is not a miss overall
	misses := l2Stats.TotalMiss
	return &CacheStats{
		Backend:    "hybrid",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: l2Stats.TotalItems,
	}, nil
}

// Close closes both levels
func (hcs *HybridCacheService) Close() error {
	return errors.Join(hcs.l1.Close(), hcs.l2.Close())
}
