package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	pkgerrors "github.com/vaxtrackhq/vaxtrack-backend/pkg/errors"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/metrics"
)

// Service feeds the dashboard from the current inventory snapshot.
type Service interface {
	DashboardMetrics(ctx context.Context) (*Metrics, error)
	DashboardAlerts(ctx context.Context) (*AlertSummary, error)
	FamilyBreakdown(ctx context.Context) ([]FamilyGroup, error)
}

// lotLister is the read surface the dashboard needs. Satisfied by the
// vaccines repository.
type lotLister interface {
	List(ctx context.Context) ([]models.VaccineLot, error)
}

type service struct {
	lots  lotLister
	opts  Options
	gauge *metrics.InventoryMetrics
	now   func() time.Time
}

// NewService constructs the dashboard service. The gauge may be nil when
// metrics are not wired.
func NewService(lots lotLister, opts Options, gauge *metrics.InventoryMetrics) (Service, error) {
	if lots == nil {
		return nil, fmt.Errorf("lot lister required")
	}
	return &service{lots: lots, opts: opts, gauge: gauge, now: time.Now}, nil
}

// DashboardMetrics aggregates the snapshot and refreshes the exported
// gauges as a side effect, so the scrape endpoint tracks whatever the
// dashboard last saw.
func (s *service) DashboardMetrics(ctx context.Context) (*Metrics, error) {
	lots, err := s.lots.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list vaccine lots")
	}
	m := Aggregate(lots, s.now(), s.opts)
	s.gauge.Record(m.TotalVaccines, m.TotalQuantity, m.ExpiredCount, m.ExpiringCount, m.LowStockCount)
	return &m, nil
}

func (s *service) DashboardAlerts(ctx context.Context) (*AlertSummary, error) {
	m, err := s.DashboardMetrics(ctx)
	if err != nil {
		return nil, err
	}
	a := m.Alerts()
	return &a, nil
}

func (s *service) FamilyBreakdown(ctx context.Context) ([]FamilyGroup, error) {
	lots, err := s.lots.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list vaccine lots")
	}
	return GroupByFamily(lots), nil
}
