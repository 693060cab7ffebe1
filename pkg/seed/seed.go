// Package seed loads sample inventory into an empty store. The in-memory
// database starts blank on every boot, so a seeded snapshot is what makes
// the dashboard demonstrable out of the box.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/logger"
)

//go:embed data/*.json
var dataFS embed.FS

// Dates in the fixtures are day offsets from load time rather than fixed
// calendar dates, so the sample inventory always exercises every
// classification bucket no matter when the service boots. A lot without
// expiresInDays seeds with no expiration date.
type seedLot struct {
	CommercialName  string `json:"commercialName"`
	GenericName     string `json:"genericName"`
	LotNumber       string `json:"lotNumber"`
	ExpiresInDays   *int   `json:"expiresInDays"`
	QuantityOnHand  int    `json:"quantityOnHand"`
	ReceivedDaysAgo int    `json:"receivedDaysAgo"`
}

type seedShipment struct {
	CommercialName    string  `json:"commercialName"`
	GenericName       string  `json:"genericName"`
	LotNumber         string  `json:"lotNumber"`
	ExpiresInDays     *int    `json:"expiresInDays"`
	QuantitySent      int     `json:"quantitySent"`
	QuantityReceived  int     `json:"quantityReceived"`
	PassedInspection  int     `json:"passedInspection"`
	FailedInspection  int     `json:"failedInspection"`
	DiscrepancyReason *string `json:"discrepancyReason"`
	ReceivedDaysAgo   int     `json:"receivedDaysAgo"`
}

type seedAdjustment struct {
	VaccineIndex     int    `json:"vaccineIndex"` // 1-based position in vaccines.json
	AdjustmentAmount int    `json:"adjustmentAmount"`
	Reason           string `json:"reason"`
	DaysAgo          int    `json:"daysAgo"`
	PerformedBy      string `json:"performedBy"`
}

// Loader seeds an empty store from the embedded fixtures.
type Loader struct {
	client *db.Client
	logg   *logger.Logger
	now    func() time.Time
}

// NewLoader constructs a seed loader.
func NewLoader(client *db.Client, logg *logger.Logger) (*Loader, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &Loader{client: client, logg: logg, now: time.Now}, nil
}

// Run loads the fixtures unless the store already holds lots. All inserts
// happen in a single transaction; a partially seeded store is worse than an
// empty one.
func (l *Loader) Run(ctx context.Context) error {
	var existing int64
	if err := l.client.DB().WithContext(ctx).Model(&models.VaccineLot{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("checking store state: %w", err)
	}
	if existing > 0 {
		if l.logg != nil {
			l.logg.Info(ctx, "seed skipped, store already populated")
		}
		return nil
	}

	lots, shipments, adjustments, err := l.parseFixtures()
	if err != nil {
		return err
	}

	now := l.now()
	err = l.client.WithTx(ctx, func(tx *gorm.DB) error {
		lotIDs := make([]uint, 0, len(lots))
		for _, s := range lots {
			lot := models.VaccineLot{
				CommercialName: s.CommercialName,
				GenericName:    s.GenericName,
				LotNumber:      s.LotNumber,
				QuantityOnHand: s.QuantityOnHand,
				ReceivedDate:   now.AddDate(0, 0, -s.ReceivedDaysAgo),
				LastUpdated:    now,
			}
			if s.ExpiresInDays != nil {
				lot.ExpirationDate = now.AddDate(0, 0, *s.ExpiresInDays)
			}
			if err := tx.Create(&lot).Error; err != nil {
				return fmt.Errorf("seeding lot %s: %w", s.LotNumber, err)
			}
			lotIDs = append(lotIDs, lot.ID)
		}

		for _, s := range shipments {
			rec := models.ShipmentRecord{
				CommercialName:    s.CommercialName,
				GenericName:       s.GenericName,
				LotNumber:         s.LotNumber,
				QuantitySent:      s.QuantitySent,
				QuantityReceived:  s.QuantityReceived,
				PassedInspection:  s.PassedInspection,
				FailedInspection:  s.FailedInspection,
				DiscrepancyReason: s.DiscrepancyReason,
				ReceivedDate:      now.AddDate(0, 0, -s.ReceivedDaysAgo),
			}
			if s.ExpiresInDays != nil {
				rec.ExpirationDate = now.AddDate(0, 0, *s.ExpiresInDays)
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("seeding shipment %s: %w", s.LotNumber, err)
			}
		}

		for _, s := range adjustments {
			if s.VaccineIndex < 1 || s.VaccineIndex > len(lotIDs) {
				return fmt.Errorf("seed adjustment references lot index %d of %d", s.VaccineIndex, len(lotIDs))
			}
			rec := models.AdjustmentRecord{
				VaccineID:        lotIDs[s.VaccineIndex-1],
				AdjustmentAmount: s.AdjustmentAmount,
				Reason:           enums.AdjustmentReason(s.Reason),
				Date:             now.AddDate(0, 0, -s.DaysAgo),
				PerformedBy:      s.PerformedBy,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("seeding adjustment for lot index %d: %w", s.VaccineIndex, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if l.logg != nil {
		ctx = l.logg.WithFields(ctx, map[string]any{
			"lots":        len(lots),
			"shipments":   len(shipments),
			"adjustments": len(adjustments),
		})
		l.logg.Info(ctx, "seed data loaded")
	}
	return nil
}

// parseFixtures decodes all three fixture files, collecting every decode
// failure instead of stopping at the first.
func (l *Loader) parseFixtures() ([]seedLot, []seedShipment, []seedAdjustment, error) {
	var (
		lots        []seedLot
		shipments   []seedShipment
		adjustments []seedAdjustment
		errs        error
	)
	errs = multierr.Append(errs, parseFile("data/vaccines.json", &lots))
	errs = multierr.Append(errs, parseFile("data/shipments.json", &shipments))
	errs = multierr.Append(errs, parseFile("data/adjustments.json", &adjustments))
	if errs != nil {
		return nil, nil, nil, errs
	}
	return lots, shipments, adjustments, nil
}

func parseFile(name string, out interface{}) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}
