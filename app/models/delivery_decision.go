package models

import (
	"github.com/shopspring/decimal"
)

// Source labels of a DeliveryDecision
const (
	SourceFixedTariff = "fixed-tariff"
	SourceGeocoded    = "geocoded"
	SourceManual      = "manual"
	SourceTaxi        = "yandex_taxi"
)

// FixedTariffDurationMinutes is the delivery estimate for any matched tariff.
const FixedTariffDurationMinutes = 30

// DeliveryDecision is the outcome of one delivery cost query
type DeliveryDecision struct {
	Cost                decimal.Decimal `json:"cost"`                  // Zero when unresolved
	DurationMinutes     int             `json:"duration_minutes"`      // Zero when unresolved
	Available           bool            `json:"available"`             // A concrete cost was determined
	RequiresManualPrice bool            `json:"requires_manual_price"` // An operator must set the price
	SourceLabel         string          `json:"source_label"`          // Strategy that produced the decision
	TariffLabel         string          `json:"tariff_label,omitempty"`
	Note                string          `json:"note"`
}

const manualNote = "Не получилось рассчитать стоимость доставки - введите стоимость сами"

// ManualDecision is the terminal "price it by hand" decision.
func ManualDecision() DeliveryDecision {
	return DeliveryDecision{
		Cost:                decimal.Zero,
		RequiresManualPrice: true,
		SourceLabel:         SourceManual,
		Note:                manualNote,
	}
}
