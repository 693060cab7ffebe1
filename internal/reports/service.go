package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/internal/inventory"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
	pkgerrors "github.com/vaxtrackhq/vaxtrack-backend/pkg/errors"
)

// ReportRow is one line of the inventory report, classification already
// applied.
type ReportRow struct {
	ID             uint                   `json:"id"`
	CommercialName string                 `json:"commercialName"`
	GenericName    string                 `json:"genericName"`
	FamilyName     string                 `json:"familyName"`
	LotNumber      string                 `json:"lotNumber"`
	ExpirationDate string                 `json:"expirationDate"`
	QuantityOnHand int                    `json:"quantityOnHand"`
	Status         enums.ExpirationStatus `json:"status"`
}

// ReportInput narrows the report. Zero values mean no constraint; the date
// range applies to expiration dates, both ends inclusive.
type ReportInput struct {
	Family    string
	Status    enums.StatusFilter
	StartDate time.Time
	EndDate   time.Time
}

// Export bundles the generated CSV with its download name.
type Export struct {
	Filename string
	Content  []byte
}

// Service builds inventory reports and their CSV export.
type Service interface {
	BuildReport(ctx context.Context, input ReportInput) ([]ReportRow, error)
	ExportCSV(ctx context.Context, input ReportInput) (*Export, error)
}

// lotLister is the read surface the report needs. Satisfied by the vaccines
// repository.
type lotLister interface {
	List(ctx context.Context) ([]models.VaccineLot, error)
}

type service struct {
	lots lotLister
	opts inventory.Options
	now  func() time.Time
}

// NewService constructs a report service.
func NewService(lots lotLister, opts inventory.Options) (Service, error) {
	if lots == nil {
		return nil, fmt.Errorf("lot lister required")
	}
	return &service{lots: lots, opts: opts, now: time.Now}, nil
}

// BuildReport applies the family, status, and expiration-range filters and
// classifies each surviving lot.
func (s *service) BuildReport(ctx context.Context, input ReportInput) ([]ReportRow, error) {
	lots, err := s.lots.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list vaccine lots")
	}
	today := s.now()

	family := strings.ToLower(strings.TrimSpace(input.Family))
	rows := make([]ReportRow, 0, len(lots))
	for _, lot := range lots {
		if family != "" && !strings.Contains(strings.ToLower(lot.GenericName), family) {
			continue
		}
		status := inventory.ClassifyExpiration(lot.ExpirationDate, today, s.opts)
		if !matchesStatus(lot, status, input.Status, s.opts) {
			continue
		}
		if !input.StartDate.IsZero() && lot.ExpirationDate.Before(input.StartDate) {
			continue
		}
		if !input.EndDate.IsZero() && lot.ExpirationDate.After(input.EndDate) {
			continue
		}

		row := ReportRow{
			ID:             lot.ID,
			CommercialName: lot.CommercialName,
			GenericName:    lot.GenericName,
			FamilyName:     enums.VaccineFamilyName(lot.GenericName),
			LotNumber:      lot.LotNumber,
			QuantityOnHand: lot.QuantityOnHand,
			Status:         status,
		}
		if !lot.ExpirationDate.IsZero() {
			row.ExpirationDate = inventory.FormatDate(lot.ExpirationDate)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ExportCSV renders the filtered report as a downloadable CSV.
func (s *service) ExportCSV(ctx context.Context, input ReportInput) (*Export, error) {
	rows, err := s.BuildReport(ctx, input)
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rendering csv export")
	}
	return &Export{
		Filename: Filename(s.now()),
		Content:  []byte(buf.String()),
	}, nil
}

func matchesStatus(lot models.VaccineLot, status enums.ExpirationStatus, filter enums.StatusFilter, opts inventory.Options) bool {
	switch filter {
	case enums.StatusFilterExpired:
		return status == enums.ExpirationStatusExpired
	case enums.StatusFilterExpiring:
		return status == enums.ExpirationStatusExpiring
	case enums.StatusFilterSafe:
		return status == enums.ExpirationStatusSafe
	case enums.StatusFilterLowStock:
		return inventory.ClassifyStock(lot.QuantityOnHand, opts) == enums.StockLevelLow
	default:
		return true
	}
}
