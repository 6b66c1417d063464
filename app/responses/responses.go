package responses

import (
	"github.com/flowers-delivery/app/models"
	"github.com/flowers-delivery/internal/geocoder"
)

// QuoteResponse response with the delivery decision
type QuoteResponse struct {
	Decision         models.DeliveryDecision `json:"decision"`
	Message          string                  `json:"message"`            // Text shown to the customer
	ProcessingTimeMs int64                   `json:"processing_time_ms"` // Resolution time (ms)
}

// OrderResponse response with the created delivery
type OrderResponse struct {
	Order   models.DeliveryOrder `json:"order"`
	Message string               `json:"message"`
}

// ReverseResponse response with the address at a location
type ReverseResponse struct {
	Lat    float64                `json:"lat"`
	Lon    float64                `json:"lon"`
	Result geocoder.ReverseResult `json:"result"`
}

// ErrorResponse error response
type ErrorResponse struct {
	Error     string      `json:"error"`                // Error code
	Message   string      `json:"message"`              // Error message
	Details   interface{} `json:"details,omitempty"`    // Error details
	Timestamp string      `json:"timestamp"`            // Time of the error
	RequestID string      `json:"request_id,omitempty"` // Request ID
}

// SuccessResponse success response
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// HealthCheckResponse health response
type HealthCheckResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"` // Status of each dependency
}
