package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderYandex = "yandex"
	ProviderManual = "manual"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheHybrid = "hybrid"
)

const defaultOrigin = "Трактовая улица, 78А, село Раевский, Альшеевский район, Республика Башкортостан, 452120"

type AppConfig struct {
	Env  string
	Port string
}

type DeliveryConfig struct {
	Origin             string
	TariffsFile        string
	EstimationProvider string
}

type GeocoderConfig struct {
	APIKey    string
	URL       string
	Timeout   time.Duration
	StopWords []string
}

type TaxiConfig struct {
	APIKey  string
	ClID    string
	URL     string
	Timeout time.Duration
}

type CacheConfig struct {
	Backend string
	L1Size  int
	TTL     time.Duration
}

type MongoConfig struct {
	URL      string
	Database string
}

// Config is the full service configuration.
type Config struct {
	App           AppConfig
	Delivery      DeliveryConfig
	Geocoder      GeocoderConfig
	Taxi          TaxiConfig
	Cache         CacheConfig
	RedisURL      string
	Mongo         MongoConfig
	TelegramToken string
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// envNames binds keys to the variable names used by existing deployments.
var envNames = map[string]string{
	"app.env":                      "APP_ENV",
	"app.port":                     "APP_PORT",
	"shop.origin_address":          "SHOP_ORIGIN_ADDRESS",
	"delivery.tariffs_file":        "DELIVERY_TARIFFS_FILE",
	"delivery.estimation_provider": "TAXI_DELIVERY_SERVICE",
	"geocoder.api_key":             "YANDEX_GEOCODER_API_KEY",
	"geocoder.url":                 "GEOCODER_URL",
	"geocoder.timeout":             "GEOCODER_TIMEOUT",
	"taxi.api_key":                 "YANDEX_TAXI_API_KEY",
	"taxi.clid":                    "YANDEX_TAXI_CLID",
	"taxi.url":                     "TAXI_URL",
	"taxi.timeout":                 "TAXI_TIMEOUT",
	"cache.backend":                "CACHE_BACKEND",
	"cache.l1_size":                "CACHE_L1_SIZE",
	"cache.ttl":                    "CACHE_TTL",
	"redis.url":                    "REDIS_URL",
	"mongo.url":                    "MONGO_URL",
	"mongo.database":               "MONGO_DATABASE",
	"telegram.token":               "TELEGRAM_BOT_TOKEN",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("shop.origin_address", defaultOrigin)
	v.SetDefault("delivery.tariffs_file", "data/delivery_tariffs.csv")
	v.SetDefault("delivery.estimation_provider", ProviderYandex)
	v.SetDefault("geocoder.url", "https://geocode-maps.yandex.ru/1.x/")
	v.SetDefault("geocoder.timeout", 5*time.Second)
	v.SetDefault("geocoder.stop_words", []string{"россия", "российская федерация", "республика башкортостан", "башкортостан"})
	v.SetDefault("taxi.url", "https://taxi-api.yandex.net/v1/estimate")
	v.SetDefault("taxi.timeout", 10*time.Second)
	v.SetDefault("cache.backend", CacheNone)
	v.SetDefault("cache.l1_size", 1000)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("mongo.url", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "flowers_delivery")
}

// Load reads .env (if present), the optional YAML file at path (or
// config/app.yaml when path is empty) and the environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("app")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for key, env := range envNames {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Delivery: DeliveryConfig{
			Origin:             v.GetString("shop.origin_address"),
			TariffsFile:        v.GetString("delivery.tariffs_file"),
			EstimationProvider: strings.ToLower(strings.TrimSpace(v.GetString("delivery.estimation_provider"))),
		},
		Geocoder: GeocoderConfig{
			APIKey:    v.GetString("geocoder.api_key"),
			URL:       v.GetString("geocoder.url"),
			Timeout:   v.GetDuration("geocoder.timeout"),
			StopWords: v.GetStringSlice("geocoder.stop_words"),
		},
		Taxi: TaxiConfig{
			APIKey:  v.GetString("taxi.api_key"),
			ClID:    v.GetString("taxi.clid"),
			URL:     v.GetString("taxi.url"),
			Timeout: v.GetDuration("taxi.timeout"),
		},
		Cache: CacheConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("cache.backend"))),
			L1Size:  v.GetInt("cache.l1_size"),
			TTL:     v.GetDuration("cache.ttl"),
		},
		RedisURL: v.GetString("redis.url"),
		Mongo: MongoConfig{
			URL:      v.GetString("mongo.url"),
			Database: v.GetString("mongo.database"),
		},
		TelegramToken: v.GetString("telegram.token"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Delivery.EstimationProvider {
	case ProviderYandex, ProviderManual:
	default:
		return fmt.Errorf("unknown estimation provider %q", c.Delivery.EstimationProvider)
	}

	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis, CacheHybrid:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}
