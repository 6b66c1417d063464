package routes

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/flowers-delivery/app/controllers"
	"github.com/flowers-delivery/app/services"
	"github.com/flowers-delivery/internal/tariff"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newRouter(t *testing.T, logger *zap.Logger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := tariff.NewStore(tariff.NewLoader(filepath.Join(t.TempDir(), "absent.csv"), nil))
	ds := services.NewDeliveryService(store, nil, nil, "село Раевский", nil)

	router := gin.New()
	SetupAllRoutes(router,
		controllers.NewDeliveryController(ds, nil, nil),
		controllers.NewAdminController(services.NewAdminService(store, nil, nil), nil),
		logger)
	return router
}

func TestRequestID(t *testing.T) {
	router := newRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err, "a request ID is generated")

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.Header.Set(RequestIDHeader, "order-42")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "order-42", w.Header().Get(RequestIDHeader))
}

func TestErrorCarriesRequestID(t *testing.T) {
	router := newRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/delivery/reverse?lat=1&lon=1", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"request_id":"req-1"`)
}

func TestRoutes(t *testing.T) {
	router := newRouter(t, nil)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/v1/health", http.StatusOK},
		{http.MethodGet, "/v1/admin/tariffs", http.StatusOK},
		{http.MethodGet, "/v1/admin/stats", http.StatusOK},
		{http.MethodPost, "/v1/admin/cache/clear", http.StatusConflict},
		{http.MethodGet, "/v1/delivery/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := newRouter(t, zap.New(core))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/health", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}
