package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flowers-delivery/app/models"
	"github.com/flowers-delivery/internal/external"
	"github.com/flowers-delivery/internal/geocoder"
	"github.com/flowers-delivery/internal/tariff"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultWeight is the weight of a typical bouquet, in kg.
const DefaultWeight = 1.0

// TableSource provides the current tariff table.
type TableSource interface {
	Table() *tariff.Table
}

// CandidateSource turns a free-text address into place names to match.
type CandidateSource interface {
	Candidates(ctx context.Context, address string) ([]string, error)
}

// DeliveryService resolves delivery costs. It is safe for concurrent use and
// keeps no state of its own between queries.
type DeliveryService struct {
	tariffs    TableSource
	candidates CandidateSource
	estimator  external.EstimateProvider
	origin     string
	logger     *zap.Logger
}

// NewDeliveryService creates a DeliveryService. candidates and estimator may
// be nil, which disables geocoding and external estimation respectively.
func NewDeliveryService(tariffs TableSource, candidates CandidateSource, estimator external.EstimateProvider, origin string, logger *zap.Logger) *DeliveryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeliveryService{
		tariffs:    tariffs,
		candidates: candidates,
		estimator:  estimator,
		origin:     origin,
		logger:     logger,
	}
}

// Origin returns the shop address deliveries start from.
func (ds *DeliveryService) Origin() string {
	return ds.origin
}

// ResolveDeliveryCost decides the delivery cost from fromAddress to
// toAddress. It always returns a decision; failures of any data source
// degrade to the next strategy and finally to a manual-price decision.
func (ds *DeliveryService) ResolveDeliveryCost(ctx context.Context, fromAddress, toAddress string, weight float64) (decision models.DeliveryDecision) {
	defer func() {
		if r := recover(); r != nil {
			ds.logger.Error("Delivery cost resolution panicked", zap.Any("panic", r), zap.String("address", toAddress))
			decision = models.ManualDecision()
		}
	}()

	decision = ds.resolve(ctx, fromAddress, toAddress, weight)
	ds.logger.Debug("Resolved delivery cost",
		zap.String("address", toAddress),
		zap.String("source_label", decision.SourceLabel),
		zap.String("cost", decision.Cost.String()))
	return decision
}

func (ds *DeliveryService) resolve(ctx context.Context, fromAddress, toAddress string, weight float64) models.DeliveryDecision {
	table := ds.table()

	if d, ok := decide(table, toAddress); ok {
		return d
	}

	for _, candidate := range ds.geocode(ctx, toAddress) {
		d, ok := decide(table, candidate)
		if !ok {
			continue
		}
		if d.SourceLabel == models.SourceFixedTariff {
			d.SourceLabel = models.SourceGeocoded
		}
		d.Note += fmt.Sprintf(" (по данным геокодера: %s)", candidate)
		return d
	}

	// a loaded table is authoritative: unmatched addresses are never estimated
	if table != nil && table.Len() > 0 {
		return models.ManualDecision()
	}
	return ds.estimate(ctx, fromAddress, toAddress, weight)
}

func (ds *DeliveryService) table() *tariff.Table {
	if ds.tariffs == nil {
		return nil
	}
	return ds.tariffs.Table()
}

// decide turns a tariff match into a decision.
func decide(table *tariff.Table, address string) (models.DeliveryDecision, bool) {
	if table == nil {
		return models.DeliveryDecision{}, false
	}
	entry, ok := table.Match(address)
	if !ok {
		return models.DeliveryDecision{}, false
	}

	if !entry.Cost.Valid {
		return models.DeliveryDecision{
			Cost:                decimal.Zero,
			RequiresManualPrice: true,
			SourceLabel:         models.SourceManual,
			TariffLabel:         entry.Label,
			Note:                fmt.Sprintf("Не получилось рассчитать стоимость доставки автоматически (%s)", entry.Label),
		}, true
	}

	return models.DeliveryDecision{
		Cost:            entry.Cost.Decimal,
		DurationMinutes: models.FixedTariffDurationMinutes,
		Available:       true,
		SourceLabel:     models.SourceFixedTariff,
		TariffLabel:     entry.Label,
		Note:            fmt.Sprintf("Применен фиксированный тариф: %s", entry.Label),
	}, true
}

func (ds *DeliveryService) geocode(ctx context.Context, address string) []string {
	if ds.candidates == nil || strings.TrimSpace(address) == "" {
		return nil
	}

	candidates, err := ds.candidates.Candidates(ctx, address)
	switch {
	case errors.Is(err, geocoder.ErrDisabled):
		return nil
	case err != nil:
		ds.logger.Warn("Geocoding failed, skipping geocoded match", zap.String("address", address), zap.Error(err))
		return nil
	}
	return candidates
}

func (ds *DeliveryService) estimate(ctx context.Context, fromAddress, toAddress string, weight float64) models.DeliveryDecision {
	if ds.estimator == nil {
		return models.ManualDecision()
	}

	est, err := ds.estimator.Estimate(ctx, fromAddress, toAddress, weight)
	if err != nil {
		if errors.Is(err, external.ErrNotConfigured) {
			ds.logger.Warn("Estimation provider is not configured")
		} else {
			ds.logger.Warn("External delivery estimate failed", zap.String("address", toAddress), zap.Error(err))
		}
		return models.ManualDecision()
	}

	return models.DeliveryDecision{
		Cost:            est.Cost,
		DurationMinutes: est.DurationMinutes,
		Available:       true,
		SourceLabel:     est.Service,
		Note:            "Стоимость рассчитана сервисом такси",
	}
}

// Quote resolves the cost of delivering from the shop to toAddress.
func (ds *DeliveryService) Quote(ctx context.Context, toAddress string, weight float64) models.DeliveryDecision {
	if weight <= 0 {
		weight = DefaultWeight
	}
	return ds.ResolveDeliveryCost(ctx, ds.origin, toAddress, weight)
}

// CreateDeliveryOrder resolves the cost for an order and returns the pending
// delivery request.
func (ds *DeliveryService) CreateDeliveryOrder(ctx context.Context, orderID, fromAddress, toAddress string, weight float64) models.DeliveryOrder {
	if fromAddress == "" {
		fromAddress = ds.origin
	}
	if weight <= 0 {
		weight = DefaultWeight
	}

	d := ds.ResolveDeliveryCost(ctx, fromAddress, toAddress, weight)
	return models.DeliveryOrder{
		OrderID:           orderID,
		DeliveryCost:      d.Cost,
		EstimatedDuration: d.DurationMinutes,
		Status:            models.DeliveryStatusPending,
		Service:           d.SourceLabel,
		RequiresManual:    d.RequiresManualPrice,
		Note:              d.Note,
	}
}

// OrderTotal is the product price plus delivery.
func OrderTotal(productPrice decimal.Decimal, d models.DeliveryDecision) decimal.Decimal {
	return productPrice.Add(d.Cost)
}

// CustomerMessage renders the delivery part of a customer reply.
func CustomerMessage(d models.DeliveryDecision) string {
	if d.RequiresManualPrice || !d.Available {
		return "Стоимость доставки рассчитает менеджер. Мы свяжемся с вами для подтверждения."
	}
	return fmt.Sprintf("Доставка: %s ₽\nПримерное время доставки: %d минут", d.Cost.StringFixed(2), d.DurationMinutes)
}
