package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/flowers-delivery/app/requests"
	"github.com/flowers-delivery/app/responses"
	"github.com/flowers-delivery/app/services"
	"github.com/flowers-delivery/internal/geocoder"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version of the HTTP API
const Version = "1.0.0"

// Reverser finds the address at a position
type Reverser interface {
	Reverse(ctx context.Context, lat, lon float64) (geocoder.ReverseResult, error)
}

// DeliveryController handles delivery quote requests
type DeliveryController struct {
	deliveryService *services.DeliveryService
	reverser        Reverser
	logger          *zap.Logger
	startTime       time.Time
}

// NewDeliveryController creates a DeliveryController; reverser may be nil
func NewDeliveryController(deliveryService *services.DeliveryService, reverser Reverser, logger *zap.Logger) *DeliveryController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeliveryController{
		deliveryService: deliveryService,
		reverser:        reverser,
		logger:          logger,
		startTime:       time.Now(),
	}
}

// Quote resolves the delivery cost from the shop to an address
func (dc *DeliveryController) Quote(c *gin.Context) {
	var req requests.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error())
		return
	}

	startTime := time.Now()
	decision := dc.deliveryService.Quote(c.Request.Context(), req.Address, req.Weight)

	c.JSON(http.StatusOK, responses.QuoteResponse{
		Decision:         decision,
		Message:          services.CustomerMessage(decision),
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// CreateOrder resolves the cost for an order and returns the pending delivery
func (dc *DeliveryController) CreateOrder(c *gin.Context) {
	var req requests.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error())
		return
	}

	order := dc.deliveryService.CreateDeliveryOrder(c.Request.Context(), req.OrderID, req.FromAddress, req.ToAddress, req.Weight)
	dc.logger.Info("Delivery order created",
		zap.String("order_id", order.OrderID),
		zap.String("service", order.Service),
		zap.Bool("requires_manual_price", order.RequiresManual))

	message := "Delivery created"
	if order.RequiresManual {
		message = "Delivery created, the price must be set manually"
	}
	c.JSON(http.StatusCreated, responses.OrderResponse{
		Order:   order,
		Message: message,
	})
}

// Reverse returns the address at a shared location
func (dc *DeliveryController) Reverse(c *gin.Context) {
	var req requests.ReverseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error())
		return
	}
	if dc.reverser == nil {
		abortWithError(c, http.StatusServiceUnavailable, "GEOCODER_DISABLED", "Geocoder is not configured")
		return
	}

	result, err := dc.reverser.Reverse(c.Request.Context(), *req.Lat, *req.Lon)
	switch {
	case errors.Is(err, geocoder.ErrDisabled):
		abortWithError(c, http.StatusServiceUnavailable, "GEOCODER_DISABLED", "Geocoder is not configured")
		return
	case errors.Is(err, geocoder.ErrNoResults):
		abortWithError(c, http.StatusNotFound, "ADDRESS_NOT_FOUND", "No address at this location")
		return
	case err != nil:
		dc.logger.Warn("Reverse geocoding failed", zap.Float64("lat", *req.Lat), zap.Float64("lon", *req.Lon), zap.Error(err))
		abortWithError(c, http.StatusBadGateway, "GEOCODER_ERROR", "Geocoder request failed")
		return
	}

	c.JSON(http.StatusOK, responses.ReverseResponse{
		Lat:    *req.Lat,
		Lon:    *req.Lon,
		Result: result,
	})
}

// HealthCheck reports service health
func (dc *DeliveryController) HealthCheck(c *gin.Context) {
	geocoderStatus := "disabled"
	if dc.reverser != nil {
		geocoderStatus = "enabled"
	}

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(dc.startTime).Round(time.Second).String(),
		Version:   Version,
		Services: map[string]string{
			"delivery": "healthy",
			"geocoder": geocoderStatus,
		},
	})
}
