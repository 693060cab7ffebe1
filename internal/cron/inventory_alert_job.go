package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/internal/inventory"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/logger"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/metrics"
)

// InventoryAlertJobParams configure the daily inventory scan.
type InventoryAlertJobParams struct {
	Logger  *logger.Logger
	Lots    lotLister
	Options inventory.Options
	Gauges  *metrics.InventoryMetrics
}

type lotLister interface {
	List(ctx context.Context) ([]models.VaccineLot, error)
}

// NewInventoryAlertJob builds the job that classifies the whole inventory
// once per cycle, logs every lot needing attention, and refreshes the
// exported gauges.
func NewInventoryAlertJob(params InventoryAlertJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Lots == nil {
		return nil, fmt.Errorf("lot lister required")
	}
	return &inventoryAlertJob{
		logg:   params.Logger,
		lots:   params.Lots,
		opts:   params.Options,
		gauges: params.Gauges,
		now:    time.Now,
	}, nil
}

type inventoryAlertJob struct {
	logg   *logger.Logger
	lots   lotLister
	opts   inventory.Options
	gauges *metrics.InventoryMetrics
	now    func() time.Time
}

func (j *inventoryAlertJob) Name() string { return "inventory-alert" }

func (j *inventoryAlertJob) Run(ctx context.Context) error {
	lots, err := j.lots.List(ctx)
	if err != nil {
		return fmt.Errorf("inventory alert scan: %w", err)
	}

	m := inventory.Aggregate(lots, j.now(), j.opts)
	j.gauges.Record(m.TotalVaccines, m.TotalQuantity, m.ExpiredCount, m.ExpiringCount, m.LowStockCount)

	for _, lot := range m.ExpiredVaccines {
		j.logLot(ctx, lot, "expired lot on hand")
	}
	for _, lot := range m.ExpiringVaccines {
		j.logLot(ctx, lot, "lot expiring soon")
	}
	for _, lot := range m.LowStockVaccines {
		j.logLot(ctx, lot, "lot low on stock")
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"total_lots": m.TotalVaccines,
		"expired":    m.ExpiredCount,
		"expiring":   m.ExpiringCount,
		"low_stock":  m.LowStockCount,
	})
	j.logg.Info(logCtx, "inventory alert scan complete")
	return nil
}

func (j *inventoryAlertJob) logLot(ctx context.Context, lot models.VaccineLot, msg string) {
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"vaccine_id": lot.ID,
		"name":       lot.CommercialName,
		"lot_number": lot.LotNumber,
		"quantity":   lot.QuantityOnHand,
	})
	j.logg.Warn(logCtx, msg)
}
