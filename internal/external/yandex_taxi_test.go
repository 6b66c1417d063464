package external

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flowers-delivery/internal/geocoder"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocator map[string]geocoder.Point

func (f fakeLocator) Coordinates(_ context.Context, address string) (geocoder.Point, error) {
	p, ok := f[address]
	if !ok {
		return geocoder.Point{}, geocoder.ErrNoResults
	}
	return p, nil
}

var locator = fakeLocator{
	"магазин": {Lat: 54.07, Lon: 54.08},
	"клиент":  {Lat: 54.73, Lon: 55.95},
}

func TestYandexTaxi_Estimate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "clid-1", r.URL.Query().Get("clid"))

		var body estimateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Route, 2)
		assert.Equal(t, 54.73, body.Route[1].Lat)
		assert.Equal(t, "flowers", body.Requirements.CargoOptions.CargoType)
		assert.Equal(t, 2.5, body.Requirements.CargoOptions.Weight)

		_, _ = w.Write([]byte(`{"options":[
			{"price":{"total":950},"time":{"minutes":55}},
			{"price":{"total":720.5},"time":{"minutes":70}},
			{"price":{"total":1200}}
		]}`))
	}))
	defer srv.Close()

	taxi := NewYandexTaxi(TaxiConfig{APIKey: "secret", ClID: "clid-1", URL: srv.URL}, locator)

	est, err := taxi.Estimate(context.Background(), "магазин", "клиент", 2.5)
	require.NoError(t, err)
	assert.True(t, est.Cost.Equal(decimal.RequireFromString("720.5")))
	assert.Equal(t, 70, est.DurationMinutes)
	assert.Equal(t, "yandex_taxi", est.Service)
}

func TestYandexTaxi_DefaultDuration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"options":[{"price":{"total":"500"}}]}`))
	}))
	defer srv.Close()

	est, err := NewYandexTaxi(TaxiConfig{APIKey: "k", URL: srv.URL}, locator).
		Estimate(context.Background(), "магазин", "клиент", 1)
	require.NoError(t, err)
	assert.Equal(t, defaultDurationMinutes, est.DurationMinutes)
}

func TestYandexTaxi_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("clid") {
		case "empty":
			_, _ = w.Write([]byte(`{"options":[]}`))
		default:
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	_, err := NewYandexTaxi(TaxiConfig{}, locator).Estimate(context.Background(), "магазин", "клиент", 1)
	assert.True(t, errors.Is(err, ErrNotConfigured))

	_, err = NewYandexTaxi(TaxiConfig{APIKey: "k", URL: srv.URL}, locator).
		Estimate(context.Background(), "магазин", "нигде", 1)
	assert.ErrorIs(t, err, geocoder.ErrNoResults)

	_, err = NewYandexTaxi(TaxiConfig{APIKey: "k", URL: srv.URL}, locator).
		Estimate(context.Background(), "магазин", "клиент", 1)
	assert.ErrorContains(t, err, "401")

	_, err = NewYandexTaxi(TaxiConfig{APIKey: "k", ClID: "empty", URL: srv.URL}, locator).
		Estimate(context.Background(), "магазин", "клиент", 1)
	assert.Error(t, err)
}
