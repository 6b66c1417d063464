package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://geocode-maps.yandex.ru/1.x/"
	DefaultTimeout = 5 * time.Second
)

var (
	// ErrDisabled is returned by every call when no API key is configured.
	ErrDisabled = errors.New("geocoder is not configured")
	// ErrNoResults means the geocoder answered but found nothing.
	ErrNoResults = errors.New("geocoder returned no results")
)

// DefaultStopWords are place names too broad to identify a delivery zone.
var DefaultStopWords = []string{
	"россия",
	"российская федерация",
	"республика башкортостан",
	"башкортостан",
}

// StatusError is returned for non-2xx geocoder responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("geocoder status %d: %s", e.Code, e.Body)
}

type Config struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	StopWords []string
}

// Client talks to the Yandex geocoder HTTP API. It is safe for concurrent use.
type Client struct {
	session   *http.Client
	apiKey    string
	baseURL   string
	stopWords []string
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.StopWords == nil {
		cfg.StopWords = DefaultStopWords
	}

	return &Client{
		session:   &http.Client{Timeout: cfg.Timeout},
		apiKey:    strings.TrimSpace(cfg.APIKey),
		baseURL:   cfg.BaseURL,
		stopWords: cfg.StopWords,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// lookup runs one geocoder query and returns the first feature.
func (c *Client) lookup(ctx context.Context, query string, extra map[string]string) (*geoObject, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("geocode", query)
	q.Set("format", "json")
	q.Set("apikey", c.apiKey)
	q.Set("results", "1")
	for k, v := range extra {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	members := decoded.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return nil, ErrNoResults
	}
	return &members[0].GeoObject, nil
}
