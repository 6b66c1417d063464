package services

import (
	"context"
)

// CacheStats cache statistics
type CacheStats struct {
	Backend    string  `json:"backend"`
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService stores geocoder candidates keyed by normalized address
type ICacheService interface {
	// Get returns cached candidates; found is false on a miss
	Get(ctx context.Context, key string) (candidates []string, found bool, err error)

	// Set stores candidates for key
	Set(ctx context.Context, key string, candidates []string) error

	// Delete removes one key
	Delete(ctx context.Context, key string) error

	// Clear removes every key
	Clear(ctx context.Context) error

	// GetStats returns hit/miss counters and the item count
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close releases connections, if any
	Close() error
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
