package services

import (
	"context"

	"github.com/flowers-delivery/internal/normalizer"
	"go.uber.org/zap"
)

// CachedCandidates memoizes geocoder candidates by normalized address.
// Cache failures are treated as misses; only successful lookups are stored.
type CachedCandidates struct {
	source CandidateSource
	cache  ICacheService
	logger *zap.Logger
}

func NewCachedCandidates(source CandidateSource, cache ICacheService, logger *zap.Logger) *CachedCandidates {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedCandidates{source: source, cache: cache, logger: logger}
}

// Candidates implements CandidateSource.
func (cc *CachedCandidates) Candidates(ctx context.Context, address string) ([]string, error) {
	key := normalizer.Normalize(address)
	if key == "" {
		return cc.source.Candidates(ctx, address)
	}

	candidates, found, err := cc.cache.Get(ctx, key)
	if err != nil {
		cc.logger.Warn("Geocode cache read failed", zap.String("address", address), zap.Error(err))
	} else if found {
		return candidates, nil
	}

	candidates, err = cc.source.Candidates(ctx, address)
	if err != nil {
		return nil, err
	}

	if err := cc.cache.Set(ctx, key, candidates); err != nil {
		cc.logger.Warn("Geocode cache write failed", zap.String("address", address), zap.Error(err))
	}
	return candidates, nil
}
