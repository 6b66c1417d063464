package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/flowers-delivery/internal/tariff"
	"go.uber.org/zap"
)

// ErrCacheDisabled is returned by cache operations when no cache backend is configured.
var ErrCacheDisabled = errors.New("geocode cache is disabled")

const defaultSuggestLimit = 5

// AdminService operator functions: tariff inspection, reload, validation and cache control
type AdminService struct {
	store     *tariff.Store
	cache     ICacheService
	logger    *zap.Logger
	startTime time.Time
}

// TariffListing describes the loaded tariff table
type TariffListing struct {
	Source   string         `json:"source"`
	Schema   string         `json:"schema"`
	LoadedAt time.Time      `json:"loaded_at"`
	Zones    int            `json:"zones"`
	Entries  []tariff.Entry `json:"entries"`
}

// SystemStats process statistics
type SystemStats struct {
	Uptime      string                 `json:"uptime"`
	Goroutines  int                    `json:"goroutines"`
	MemoryUsage map[string]interface{} `json:"memory_usage"`
	TariffZones int                    `json:"tariff_zones"`
	Cache       *CacheStats            `json:"cache,omitempty"`
}

// NewAdminService creates an AdminService; cache may be nil
func NewAdminService(store *tariff.Store, cache ICacheService, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		store:     store,
		cache:     cache,
		logger:    logger,
		startTime: time.Now(),
	}
}

// ListTariffs returns the current table
func (as *AdminService) ListTariffs() *TariffListing {
	return listing(as.store.Table())
}

// ReloadTariffs rebuilds the table from its source and publishes it
func (as *AdminService) ReloadTariffs() *TariffListing {
	t := as.store.Reload()
	as.logger.Info("Tariff table reloaded", zap.String("path", as.store.Path()), zap.Int("zones", t.Len()))
	return listing(t)
}

// ValidateTariffs checks an uploaded tariff source without loading it
func (as *AdminService) ValidateTariffs(r io.Reader, name string) (*tariff.Report, error) {
	report, err := tariff.Validate(r, name)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", name, err)
	}
	return report, nil
}

// SuggestZones lists zones whose aliases look like parts of address
func (as *AdminService) SuggestZones(address string, limit int) []tariff.Suggestion {
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	return tariff.Suggest(address, as.store.Table().Entries(), limit)
}

// ClearCache empties the geocode cache
func (as *AdminService) ClearCache(ctx context.Context) error {
	if as.cache == nil {
		return ErrCacheDisabled
	}
	if err := as.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear geocode cache: %w", err)
	}
	return nil
}

// GetSystemStats returns process and cache statistics
func (as *AdminService) GetSystemStats(ctx context.Context) *SystemStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := &SystemStats{
		Uptime:     time.Since(as.startTime).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
		MemoryUsage: map[string]interface{}{
			"alloc_mb":       bToMb(m.Alloc),
			"total_alloc_mb": bToMb(m.TotalAlloc),
			"sys_mb":         bToMb(m.Sys),
			"num_gc":         m.NumGC,
		},
		TariffZones: as.store.Table().Len(),
	}

	if as.cache != nil {
		cacheStats, err := as.cache.GetStats(ctx)
		if err != nil {
			as.logger.Warn("Cannot read cache stats", zap.Error(err))
		} else {
			stats.Cache = cacheStats
		}
	}
	return stats
}

func listing(t *tariff.Table) *TariffListing {
	return &TariffListing{
		Source:   t.Source(),
		Schema:   t.Schema().String(),
		LoadedAt: t.LoadedAt(),
		Zones:    t.Len(),
		Entries:  t.Entries(),
	}
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
