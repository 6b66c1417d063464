// Package bootstrap builds the service graph shared by the API server, the
// Telegram bot and the CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowers-delivery/app/config"
	"github.com/flowers-delivery/app/services"
	"github.com/flowers-delivery/internal/external"
	"github.com/flowers-delivery/internal/geocoder"
	"github.com/flowers-delivery/internal/tariff"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const mongoConnectTimeout = 10 * time.Second

// App holds the constructed services.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Tariffs  *tariff.Store
	Geocoder *geocoder.Client
	Cache    services.ICacheService
	Delivery *services.DeliveryService
	Admin    *services.AdminService

	mongoClient *mongo.Client
}

// NewLogger builds a production logger in production and a development
// logger otherwise.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	return zc.Build()
}

// New wires every service from cfg. The geocode cache is built only when a
// backend is configured, the taxi estimator only for the yandex provider.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		Config:  cfg,
		Logger:  logger,
		Tariffs: tariff.NewStore(tariff.NewLoader(cfg.Delivery.TariffsFile, logger.Named("tariff"))),
		Geocoder: geocoder.NewClient(geocoder.Config{
			APIKey:    cfg.Geocoder.APIKey,
			BaseURL:   cfg.Geocoder.URL,
			Timeout:   cfg.Geocoder.Timeout,
			StopWords: cfg.Geocoder.StopWords,
		}),
	}

	cache, err := app.newCache(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Cache = cache

	var candidates services.CandidateSource
	if app.Geocoder.Enabled() {
		candidates = app.Geocoder
		if cache != nil {
			candidates = services.NewCachedCandidates(app.Geocoder, cache, logger)
		}
	} else {
		logger.Info("Geocoder API key is not set, geocoding fallback is off")
	}

	var estimator external.EstimateProvider
	if cfg.Delivery.EstimationProvider == config.ProviderYandex {
		estimator = external.NewYandexTaxi(external.TaxiConfig{
			APIKey:  cfg.Taxi.APIKey,
			ClID:    cfg.Taxi.ClID,
			URL:     cfg.Taxi.URL,
			Timeout: cfg.Taxi.Timeout,
		}, app.Geocoder)
	}

	app.Delivery = services.NewDeliveryService(app.Tariffs, candidates, estimator, cfg.Delivery.Origin, logger.Named("delivery"))
	app.Admin = services.NewAdminService(app.Tariffs, cache, logger.Named("admin"))
	return app, nil
}

func (a *App) newCache(ctx context.Context) (services.ICacheService, error) {
	cfg := a.Config
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return services.NewCacheService(cfg.Cache.L1Size, cfg.Cache.TTL), nil
	case config.CacheRedis:
		redisCache, err := services.NewRedisCacheService(cfg.RedisURL, cfg.Cache.TTL, a.Logger)
		if err != nil {
			return nil, err
		}
		return redisCache, nil
	case config.CacheHybrid:
		redisCache, err := services.NewRedisCacheService(cfg.RedisURL, cfg.Cache.TTL, a.Logger)
		if err != nil {
			return nil, err
		}
		db, err := a.connectMongo(ctx)
		if err != nil {
			_ = redisCache.Close()
			return nil, err
		}
		mongoCache, err := services.NewMongoCacheService(db, cfg.Cache.L1Size, cfg.Cache.TTL, a.Logger)
		if err != nil {
			_ = redisCache.Close()
			return nil, err
		}
		return services.NewHybridCacheService(redisCache, mongoCache, a.Logger), nil
	default:
		return nil, nil
	}
}

func (a *App) connectMongo(ctx context.Context) (*mongo.Database, error) {
	cfg := a.Config.Mongo
	a.Logger.Info("Connecting to MongoDB", zap.String("database", cfg.Database))

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	a.mongoClient = client

	pingCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client.Database(cfg.Database), nil
}

// Close releases cache and database connections.
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.mongoClient != nil {
		errs = append(errs, a.mongoClient.Disconnect(context.Background()))
	}
	return errors.Join(errs...)
}
