package models

import (
	"github.com/shopspring/decimal"
)

const DeliveryStatusPending = "pending"

// DeliveryOrder is the delivery request handed to the courier side of an order
type DeliveryOrder struct {
	OrderID           string          `json:"order_id"`
	DeliveryCost      decimal.Decimal `json:"delivery_cost"`
	EstimatedDuration int             `json:"estimated_duration"` // Minutes
	Status            string          `json:"status"`
	Service           string          `json:"service"`
	RequiresManual    bool            `json:"requires_manual_price"`
	Note              string          `json:"note,omitempty"`
}
