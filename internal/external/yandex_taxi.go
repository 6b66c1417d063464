package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flowers-delivery/internal/geocoder"
	"github.com/shopspring/decimal"
)

const (
	DefaultTaxiURL     = "https://taxi-api.yandex.net/v1/estimate"
	DefaultTaxiTimeout = 10 * time.Second

	// defaultDurationMinutes is used when an option carries no travel time.
	defaultDurationMinutes = 30
)

// ErrNotConfigured is returned when the provider has no credentials.
var ErrNotConfigured = errors.New("estimation provider is not configured")

// Estimate is a priced route offered by an external provider.
type Estimate struct {
	Cost            decimal.Decimal
	DurationMinutes int
	Service         string
}

// EstimateProvider prices a delivery route.
type EstimateProvider interface {
	Estimate(ctx context.Context, from, to string, weight float64) (Estimate, error)
}

// Locator resolves addresses to positions.
type Locator interface {
	Coordinates(ctx context.Context, address string) (geocoder.Point, error)
}

type TaxiConfig struct {
	APIKey  string
	ClID    string
	URL     string
	Timeout time.Duration
}

// YandexTaxi estimates delivery through the Yandex taxi cargo API.
type YandexTaxi struct {
	session *http.Client
	apiKey  string
	clid    string
	url     string
	locator Locator
}

func NewYandexTaxi(cfg TaxiConfig, locator Locator) *YandexTaxi {
	if cfg.URL == "" {
		cfg.URL = DefaultTaxiURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTaxiTimeout
	}
	return &YandexTaxi{
		session: &http.Client{Timeout: cfg.Timeout},
		apiKey:  strings.TrimSpace(cfg.APIKey),
		clid:    cfg.ClID,
		url:     cfg.URL,
		locator: locator,
	}
}

type routePoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type estimateRequest struct {
	Route        []routePoint `json:"route"`
	Requirements struct {
		CargoOptions struct {
			CargoType string  `json:"cargo_type"`
			Weight    float64 `json:"weight"`
		} `json:"cargo_options"`
	} `json:"requirements"`
}

type estimateResponse struct {
	Options []struct {
		Price struct {
			Total decimal.Decimal `json:"total"`
		} `json:"price"`
		Time struct {
			Minutes *int `json:"minutes"`
		} `json:"time"`
	} `json:"options"`
}

// Estimate geocodes both ends of the route and returns the cheapest option.
func (y *YandexTaxi) Estimate(ctx context.Context, from, to string, weight float64) (Estimate, error) {
	if y.apiKey == "" || y.locator == nil {
		return Estimate{}, ErrNotConfigured
	}

	origin, err := y.locator.Coordinates(ctx, from)
	if err != nil {
		return Estimate{}, fmt.Errorf("locate origin: %w", err)
	}
	destination, err := y.locator.Coordinates(ctx, to)
	if err != nil {
		return Estimate{}, fmt.Errorf("locate destination: %w", err)
	}

	var payload estimateRequest
	payload.Route = []routePoint{
		{Lat: origin.Lat, Lon: origin.Lon},
		{Lat: destination.Lat, Lon: destination.Lon},
	}
	payload.Requirements.CargoOptions.CargoType = "flowers"
	payload.Requirements.CargoOptions.Weight = weight

	body, err := json.Marshal(payload)
	if err != nil {
		return Estimate{}, fmt.Errorf("encode estimate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, y.url, bytes.NewReader(body))
	if err != nil {
		return Estimate{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+y.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if y.clid != "" {
		q := req.URL.Query()
		q.Set("clid", y.clid)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := y.session.Do(req)
	if err != nil {
		return Estimate{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Estimate{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded estimateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Estimate{}, fmt.Errorf("decode estimate response: %w", err)
	}
	if len(decoded.Options) == 0 {
		return Estimate{}, errors.New("no taxi options offered")
	}

	cheapest := 0
	for i, opt := range decoded.Options {
		if opt.Price.Total.LessThan(decoded.Options[cheapest].Price.Total) {
			cheapest = i
		}
	}

	opt := decoded.Options[cheapest]
	minutes := defaultDurationMinutes
	if opt.Time.Minutes != nil {
		minutes = *opt.Time.Minutes
	}

	return Estimate{
		Cost:            opt.Price.Total,
		DurationMinutes: minutes,
		Service:         "yandex_taxi",
	}, nil
}
